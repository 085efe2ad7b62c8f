package models

import "github.com/jmoiron/sqlx/types"

// Faculty is a teaching staff member. Availability holds a JSON object of day name to 1-based periods.
type Faculty struct {
	ID               string         `db:"id" json:"id"`
	Name             string         `db:"name" json:"name"`
	MaxPeriodsPerDay int            `db:"max_periods_per_day" json:"max_periods_per_day"`
	WeeklyLoadLimit  int            `db:"weekly_load_limit" json:"weekly_load_limit"`
	Availability     types.JSONText `db:"availability" json:"availability"`
}
