package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// InstituteBreak is a break inserted after a 1-based period.
type InstituteBreak struct {
	Name            string `json:"name"`
	AfterPeriod     int    `json:"afterPeriod"`
	DurationMinutes int    `json:"durationMinutes"`
}

// InstituteConfig is the single institute-wide scheduling configuration row.
type InstituteConfig struct {
	ID                     string         `db:"id" json:"id"`
	WorkingDays            pq.StringArray `db:"working_days" json:"working_days"`
	PeriodsPerDay          int            `db:"periods_per_day" json:"periods_per_day"`
	PeriodDurationMinutes  int            `db:"period_duration_minutes" json:"period_duration_minutes"`
	Breaks                 types.JSONText `db:"breaks" json:"breaks"`
	LabAllowedStartPeriods pq.Int64Array  `db:"lab_allowed_start_periods" json:"lab_allowed_start_periods"`
	MaxConsecutivePeriods  int            `db:"max_consecutive_periods" json:"max_consecutive_periods"`
	InstituteStartTime     string         `db:"institute_start_time" json:"institute_start_time"`
	UpdatedAt              time.Time      `db:"updated_at" json:"updated_at"`
}
