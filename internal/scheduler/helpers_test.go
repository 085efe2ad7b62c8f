package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func allPeriods(days []string, periods int) Availability {
	a := make(Availability, len(days))
	for _, day := range days {
		for p := 1; p <= periods; p++ {
			a[day] = append(a[day], p)
		}
	}
	return a
}

func lecture(id, facultyID string, sessions int) Subject {
	s := Subject{ID: id, Name: strings.ToUpper(id), Code: id, Kind: SubjectLecture, SessionsPerWeek: sessions}
	if facultyID != "" {
		s.FacultyIDs = []string{facultyID}
	}
	return s
}

func lab(id, facultyID string, length int) Subject {
	s := lecture(id, facultyID, 1)
	s.Kind = SubjectLab
	s.LabLength = length
	return s
}

func lecturer(id string, cfg Config) Faculty {
	return Faculty{ID: id, Name: "Lecturer " + id, Availability: allPeriods(cfg.WorkingDays, cfg.PeriodsPerDay)}
}

func smallConfig(days int, periods int) Config {
	return Config{
		WorkingDays:   []string{"Mon", "Tue", "Wed", "Thu", "Fri"}[:days],
		PeriodsPerDay: periods,
	}
}

func mustBuild(t *testing.T, snapshot Snapshot) *Problem {
	t.Helper()
	p, err := Build(snapshot, Overrides{})
	require.NoError(t, err)
	return p
}

// fingerprint renders every mutable part of the search state in a stable form.
func fingerprint(s *SearchState) string {
	var b strings.Builder
	classIDs := make([]string, 0, len(s.classGrids))
	for id := range s.classGrids {
		classIDs = append(classIDs, id)
	}
	sort.Strings(classIDs)
	for _, id := range classIDs {
		fmt.Fprintf(&b, "class %s:", id)
		for _, day := range s.classGrids[id] {
			for _, cell := range day {
				if cell == nil {
					b.WriteString(" .")
					continue
				}
				fmt.Fprintf(&b, " %s", cell.TaskID)
			}
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
	facultyIDs := make([]string, 0, len(s.faculty))
	for id := range s.faculty {
		facultyIDs = append(facultyIDs, id)
	}
	sort.Strings(facultyIDs)
	for _, id := range facultyIDs {
		f := s.faculty[id]
		fmt.Fprintf(&b, "faculty %s: daily=%v weekly=%d last=%v busy=%v\n", id, f.DailyLoad, f.WeeklyLoad, f.LastPlaced, f.busy)
	}
	for _, r := range s.rooms {
		fmt.Fprintf(&b, "room %s: %q\n", r.ID, r.grid)
	}
	fmt.Fprintf(&b, "frames=%d\n", len(s.frames))
	return b.String()
}

func taskByID(t *testing.T, p *Problem, id string) Task {
	t.Helper()
	task, ok := p.tasksByID[id]
	require.True(t, ok, "task %s not built", id)
	return task
}
