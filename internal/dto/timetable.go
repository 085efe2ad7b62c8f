package dto

import (
	"time"

	"github.com/noah-isme/schedulo-api/internal/scheduler"
)

// GenerateTimetableRequest optionally overrides the configured days and periods for one run.
type GenerateTimetableRequest struct {
	Days          []string `json:"days" validate:"omitempty,max=7,unique,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	PeriodsPerDay int      `json:"periodsPerDay" validate:"omitempty,min=1,max=12"`
}

// GenerateTimetableResponse is returned after a successful generation run.
type GenerateTimetableResponse struct {
	ClassTimetables   []scheduler.Timetable `json:"classTimetables"`
	FacultyTimetables []scheduler.Timetable `json:"facultyTimetables"`
	Stats             GenerationStats       `json:"stats"`
}

// GenerationStats summarises the search that produced the timetables.
type GenerationStats struct {
	TotalTasks       int   `json:"totalTasks"`
	LabTasks         int   `json:"labTasks"`
	Attempts         int   `json:"attempts"`
	ElapsedMs        int64 `json:"elapsedTime"`
	UnroomedLectures int   `json:"unroomedLectures"`
}

// TimetableResponse is a stored class or faculty timetable.
type TimetableResponse struct {
	ID            string             `json:"id"`
	Kind          string             `json:"kind"`
	ReferenceID   string             `json:"referenceId"`
	ReferenceName string             `json:"referenceName"`
	Periods       []scheduler.Period `json:"periods"`
	GeneratedAt   time.Time          `json:"generatedAt"`
}

// ExportTimetableRequest selects the export format.
type ExportTimetableRequest struct {
	Kind        string `validate:"required,oneof=class faculty"`
	ReferenceID string `validate:"required"`
	Format      string `validate:"required,oneof=csv pdf"`
}

// ExportFile is a rendered timetable ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// DataSummary describes the scheduling inputs currently stored.
type DataSummary struct {
	ClassCount   int                  `json:"classCount"`
	SubjectCount int                  `json:"subjectCount"`
	FacultyCount int                  `json:"facultyCount"`
	RoomCount    int                  `json:"roomCount"`
	Classes      []ClassSummary       `json:"classes"`
	Faculty      []FacultySummaryItem `json:"faculty"`
}

// ClassSummary lists the subjects attached to a class.
type ClassSummary struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	SubjectCount int                  `json:"subjectCount"`
	Subjects     []ClassSubjectDetail `json:"subjects"`
}

// ClassSubjectDetail is one subject of a class in a data summary.
type ClassSubjectDetail struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Code            string   `json:"code"`
	Kind            string   `json:"kind"`
	SessionsPerWeek int      `json:"sessionsPerWeek"`
	FacultyAssigned int      `json:"facultyAssigned"`
	FacultyIDs      []string `json:"facultyIds"`
}

// FacultySummaryItem reports a faculty member's limits in a data summary.
type FacultySummaryItem struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	WeeklyLoadLimit  int    `json:"weeklyLoadLimit"`
	MaxPeriodsPerDay int    `json:"maxPeriodsPerDay"`
	AvailableDays    int    `json:"availableDays"`
	SubjectCount     int    `json:"subjectCount"`
}
