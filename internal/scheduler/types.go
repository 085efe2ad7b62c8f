package scheduler

import (
	"slices"
	"time"
)

// SubjectKind distinguishes lectures from lab sessions.
type SubjectKind string

const (
	SubjectLecture SubjectKind = "lecture"
	SubjectLab     SubjectKind = "lab"
)

// RoomKind classifies rooms.
type RoomKind string

const (
	RoomClassroom RoomKind = "classroom"
	RoomLab       RoomKind = "lab"
)

// SlotOrder selects the order in which candidate slots are tried for a task.
type SlotOrder string

const (
	SlotOrderAscending SlotOrder = "ascending"
	SlotOrderRandom    SlotOrder = "random"
)

// Defaults applied when the institute configuration leaves a value unset.
const (
	DefaultPeriodsPerDay         = 8
	DefaultPeriodDurationMinutes = 50
	DefaultMaxConsecutive        = 3
	DefaultInstituteStartTime    = "09:45"
	DefaultLabLength             = 2
	DefaultMaxPeriodsPerDay      = 4
	DefaultWeeklyLoadLimit       = 20
	DefaultMaxAttempts           = 50000
	DefaultTimeout               = 5 * time.Second
)

var (
	DefaultWorkingDays      = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	DefaultLabAllowedStarts = []int{1, 3, 5, 7}
)

// Availability maps a working day name to the 1-based periods that are allowed on that day.
type Availability map[string][]int

func (a Availability) allows(day string, period int) bool {
	return slices.Contains(a[day], period)
}

// Subject is a subject attached to a class. Only the first entry of FacultyIDs is used.
type Subject struct {
	ID              string
	Name            string
	Code            string
	Kind            SubjectKind
	SessionsPerWeek int
	LabLength       int
	FacultyIDs      []string
}

// Class is a class/section together with the subjects it takes.
type Class struct {
	ID       string
	Name     string
	Size     int
	Subjects []Subject
}

// Faculty is a teaching staff member. Availability is an allow-list: days or periods
// missing from it are unavailable.
type Faculty struct {
	ID               string
	Name             string
	Availability     Availability
	MaxPeriodsPerDay int
	WeeklyLoadLimit  int
}

// Room is a classroom or lab. An empty availability (for the room or for a day) means always available.
type Room struct {
	ID           string
	Name         string
	Kind         RoomKind
	Capacity     int
	Availability Availability
}

// Break is an institute break inserted after a 1-based period.
type Break struct {
	Name            string
	AfterPeriod     int
	DurationMinutes int
}

// Config is the institute-wide scheduling configuration plus the search policy.
type Config struct {
	WorkingDays                     []string
	PeriodsPerDay                   int
	PeriodDurationMinutes           int
	Breaks                          []Break
	LabAllowedStartPeriods          []int
	MaxConsecutivePeriodsForFaculty int
	InstituteStartTime              string

	SlotOrder   SlotOrder
	Seed        int64
	MaxAttempts int
	Timeout     time.Duration
}

// Snapshot is the read-only input of a single scheduling run.
type Snapshot struct {
	Classes []Class
	Faculty []Faculty
	Rooms   []Room
	Config  Config
}

// Overrides replace configured days and periods for one run.
type Overrides struct {
	Days          []string
	PeriodsPerDay int
}

func (c Config) withDefaults() Config {
	if len(c.WorkingDays) == 0 {
		c.WorkingDays = slices.Clone(DefaultWorkingDays)
	}
	if c.PeriodsPerDay <= 0 {
		c.PeriodsPerDay = DefaultPeriodsPerDay
	}
	if c.PeriodDurationMinutes <= 0 {
		c.PeriodDurationMinutes = DefaultPeriodDurationMinutes
	}
	if len(c.LabAllowedStartPeriods) == 0 {
		c.LabAllowedStartPeriods = slices.Clone(DefaultLabAllowedStarts)
	}
	if c.MaxConsecutivePeriodsForFaculty <= 0 {
		c.MaxConsecutivePeriodsForFaculty = DefaultMaxConsecutive
	}
	if c.InstituteStartTime == "" {
		c.InstituteStartTime = DefaultInstituteStartTime
	}
	if c.SlotOrder != SlotOrderRandom {
		c.SlotOrder = SlotOrderAscending
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func (c Config) apply(o Overrides) Config {
	if len(o.Days) > 0 {
		c.WorkingDays = slices.Clone(o.Days)
	}
	if o.PeriodsPerDay > 0 {
		c.PeriodsPerDay = o.PeriodsPerDay
	}
	return c
}
