package models

// SubjectKind distinguishes lectures from lab sessions.
type SubjectKind string

const (
	SubjectKindLecture SubjectKind = "lecture"
	SubjectKindLab     SubjectKind = "lab"
)

// Subject represents an academic subject.
type Subject struct {
	ID              string      `db:"id" json:"id"`
	Code            string      `db:"code" json:"code"`
	Name            string      `db:"name" json:"name"`
	Kind            SubjectKind `db:"kind" json:"kind"`
	SessionsPerWeek int         `db:"sessions_per_week" json:"sessions_per_week"`
	LabLength       int         `db:"lab_length" json:"lab_length"`
}
