package models

import "github.com/jmoiron/sqlx/types"

// RoomKind classifies rooms.
type RoomKind string

const (
	RoomKindClassroom RoomKind = "classroom"
	RoomKindLab       RoomKind = "lab"
)

// Room is a classroom or a lab. An empty availability object means the room is always open.
type Room struct {
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Kind         RoomKind       `db:"kind" json:"kind"`
	Capacity     int            `db:"capacity" json:"capacity"`
	Availability types.JSONText `db:"availability" json:"availability"`
}
