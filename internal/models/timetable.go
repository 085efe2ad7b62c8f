package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TimetableKind tells whether a stored timetable belongs to a class or a faculty member.
type TimetableKind string

const (
	TimetableKindClass   TimetableKind = "class"
	TimetableKindFaculty TimetableKind = "faculty"
)

// TimetableRecord is a persisted timetable. Periods is the JSON encoded period list.
type TimetableRecord struct {
	ID            string         `db:"id" json:"id"`
	Kind          TimetableKind  `db:"kind" json:"kind"`
	ReferenceID   string         `db:"reference_id" json:"reference_id"`
	ReferenceName string         `db:"reference_name" json:"reference_name"`
	Periods       types.JSONText `db:"periods" json:"periods"`
	GeneratedAt   time.Time      `db:"generated_at" json:"generated_at"`
}
