package models

import (
	"time"

	"github.com/lib/pq"
)

// Class represents a class or section that receives a weekly timetable.
type Class struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Size      int       `db:"size" json:"size"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClassSubjectAssignment is a subject taken by a class together with its subject attributes.
// Only the first faculty id is used when scheduling.
type ClassSubjectAssignment struct {
	ClassID         string         `db:"class_id" json:"class_id"`
	SubjectID       string         `db:"subject_id" json:"subject_id"`
	SubjectName     string         `db:"subject_name" json:"subject_name"`
	SubjectCode     string         `db:"subject_code" json:"subject_code"`
	Kind            SubjectKind    `db:"kind" json:"kind"`
	SessionsPerWeek int            `db:"sessions_per_week" json:"sessions_per_week"`
	LabLength       int            `db:"lab_length" json:"lab_length"`
	FacultyIDs      pq.StringArray `db:"faculty_ids" json:"faculty_ids"`
}
