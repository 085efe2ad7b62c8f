package scheduler

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNoClasses(t *testing.T) {
	result, err := Generate(Snapshot{}, Overrides{})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoClassesFound)
}

func TestGenerateSingleLectureSubject(t *testing.T) {
	cfg := Config{}.withDefaults()
	result, err := Generate(Snapshot{
		Classes: []Class{{ID: "c1", Name: "X-A", Subjects: []Subject{lecture("math", "f1", 3)}}},
		Faculty: []Faculty{lecturer("f1", cfg)},
	}, Overrides{})
	require.NoError(t, err)

	require.Len(t, result.ClassTimetables, 1)
	periods := result.ClassTimetables[0].Periods
	require.Len(t, periods, 3)
	seen := map[[2]any]bool{}
	for _, period := range periods {
		key := [2]any{period.Day, period.PeriodIndex}
		assert.False(t, seen[key], "duplicate cell %v", key)
		seen[key] = true
	}
	require.Len(t, result.FacultyTimetables, 1)
	assert.Len(t, result.FacultyTimetables[0].Periods, 3)
	assert.Equal(t, 3, result.Stats.TotalTasks)
}

func TestGenerateLabStartsOnAllowedPeriod(t *testing.T) {
	cfg := Config{PeriodsPerDay: 8, LabAllowedStartPeriods: []int{1, 3, 5, 7}}.withDefaults()
	result, err := Generate(Snapshot{
		Classes: []Class{{ID: "c1", Subjects: []Subject{lab("chem", "f1", 2)}}},
		Faculty: []Faculty{lecturer("f1", cfg)},
		Rooms:   []Room{{ID: "lab-1", Name: "Chem Lab", Kind: RoomLab}},
		Config:  cfg,
	}, Overrides{})
	require.NoError(t, err)

	periods := result.ClassTimetables[0].Periods
	require.Len(t, periods, 2)
	assert.Contains(t, []int{0, 2, 4, 6}, periods[0].PeriodIndex)
	assert.Equal(t, periods[0].Day, periods[1].Day)
	assert.Equal(t, periods[0].PeriodIndex+1, periods[1].PeriodIndex)
	for _, period := range periods {
		assert.True(t, period.IsLab)
		assert.Equal(t, "lab-1", period.RoomID)
		assert.Equal(t, "Chem Lab", period.RoomName)
	}
}

func TestGenerateLabSkipsStartCrossingBreak(t *testing.T) {
	cfg := smallConfig(1, 8)
	cfg.Breaks = []Break{{AfterPeriod: 1, DurationMinutes: 10}}
	result, err := Generate(Snapshot{
		Classes: []Class{{ID: "c1", Subjects: []Subject{lab("chem", "", 2)}}},
		Rooms:   []Room{{ID: "lab-1", Kind: RoomLab}},
		Config:  cfg,
	}, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ClassTimetables[0].Periods[0].PeriodIndex)
}

func TestGenerateWeeklyLimitUnsatisfiable(t *testing.T) {
	cfg := smallConfig(1, 4)
	f := lecturer("f1", cfg)
	f.WeeklyLoadLimit = 2

	_, err := Generate(Snapshot{
		Classes: []Class{{ID: "c1", Subjects: []Subject{lecture("math", "f1", 3)}}},
		Faculty: []Faculty{f},
		Config:  cfg,
	}, Overrides{})

	var unsat *UnsatisfiableError
	require.True(t, errors.As(err, &unsat))
	diag := unsat.Diagnostics
	assert.Equal(t, 3, diag.TotalTasks)
	assert.False(t, diag.BudgetExhausted)
	require.Len(t, diag.FacultyStatus, 1)
	status := diag.FacultyStatus[0]
	assert.Equal(t, 3, status.RequiredSlots)
	assert.Equal(t, 2, status.AvailableSlots)
	assert.Equal(t, 4, status.GridSlots)
	assert.True(t, status.Overloaded)
	assert.Equal(t, remediation, diag.Suggestion)
}

func TestGenerateSharedFacultyOverloaded(t *testing.T) {
	cfg := smallConfig(1, 8)
	_, err := Generate(Snapshot{
		Classes: []Class{
			{ID: "c1", Subjects: []Subject{lecture("math", "f1", 3)}},
			{ID: "c2", Subjects: []Subject{lecture("math", "f1", 3)}},
		},
		Faculty: []Faculty{lecturer("f1", cfg), lecturer("f2", cfg)},
		Config:  cfg,
	}, Overrides{})

	var unsat *UnsatisfiableError
	require.ErrorAs(t, err, &unsat)
	overloaded := unsat.Diagnostics.OverloadedFaculty()
	require.Len(t, overloaded, 1)
	assert.Equal(t, "f1", overloaded[0].FacultyID)
	assert.Equal(t, 6, overloaded[0].RequiredSlots)
	assert.Equal(t, 4, overloaded[0].AvailableSlots)
	assert.Contains(t, unsat.Error(), "scheduling failed after")
}

func TestGenerateNeverDoubleBooks(t *testing.T) {
	cfg := smallConfig(5, 8)
	cfg.Breaks = []Break{{AfterPeriod: 4, DurationMinutes: 30}}
	result, err := Generate(Snapshot{
		Classes: []Class{
			{ID: "c1", Subjects: []Subject{lecture("math", "f1", 5), lab("chem", "f2", 2), lecture("eng", "f3", 4)}},
			{ID: "c2", Subjects: []Subject{lecture("math", "f1", 5), lab("chem", "f2", 2), lecture("art", "", 3)}},
			{ID: "c3", Subjects: []Subject{lecture("eng", "f3", 4), lab("phys", "f2", 2)}},
		},
		Faculty: []Faculty{lecturer("f1", cfg), lecturer("f2", cfg), lecturer("f3", cfg)},
		Rooms:   []Room{{ID: "lab-1", Kind: RoomLab}, {ID: "lab-2", Kind: RoomLab}},
		Config:  cfg,
	}, Overrides{})
	require.NoError(t, err)

	for _, timetables := range [][]Timetable{result.ClassTimetables, result.FacultyTimetables} {
		for _, tt := range timetables {
			seen := map[[2]any]bool{}
			for _, period := range tt.Periods {
				key := [2]any{period.Day, period.PeriodIndex}
				assert.False(t, seen[key], "%s %s double-booked at %v", tt.Kind, tt.ReferenceID, key)
				seen[key] = true
			}
		}
	}

	labCells := map[[3]any]bool{}
	for _, tt := range result.ClassTimetables {
		for i, period := range tt.Periods {
			if !period.IsLab {
				continue
			}
			key := [3]any{period.RoomID, period.Day, period.PeriodIndex}
			assert.False(t, labCells[key], "lab room shared at %v", key)
			labCells[key] = true
			startsBlock := i == 0 || !tt.Periods[i-1].IsLab || tt.Periods[i-1].Day != period.Day ||
				tt.Periods[i-1].PeriodIndex != period.PeriodIndex-1 || tt.Periods[i-1].SubjectID != period.SubjectID
			if startsBlock {
				assert.True(t, slices.Contains(DefaultLabAllowedStarts, period.PeriodIndex+1))
			}
		}
	}

	for _, tt := range result.FacultyTimetables {
		run, last, day := 0, -2, ""
		for _, period := range tt.Periods {
			if period.Day == day && period.PeriodIndex == last+1 {
				run++
			} else {
				run = 1
			}
			day, last = period.Day, period.PeriodIndex
			assert.LessOrEqual(t, run, DefaultMaxConsecutive)
		}
	}
}
