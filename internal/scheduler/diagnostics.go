package scheduler

import (
	"fmt"

	"github.com/samber/lo"
)

// ProblemTaskLimit caps how many unplaceable tasks a report lists.
const ProblemTaskLimit = 10

const remediation = "Check if: (1) Faculty have availability set for all days, (2) Load limits are sufficient, (3) Subjects have reasonable sessions count"

// ProblemTask is a task that has no feasible slot anywhere in the week.
type ProblemTask struct {
	TaskID      string `json:"taskId"`
	ClassID     string `json:"classId"`
	ClassName   string `json:"className"`
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	FacultyID   string `json:"facultyId,omitempty"`
	FacultyName string `json:"facultyName"`
	Length      int    `json:"length"`
	IsLab       bool   `json:"isLab"`
	Reason      string `json:"reason"`
}

// FacultyLoad compares the periods a faculty member must teach with what the week can offer them.
// GridSlots is days x periods; AvailableSlots additionally honours availability, the daily cap and
// the weekly limit, and drives Overloaded.
type FacultyLoad struct {
	FacultyID        string       `json:"facultyId"`
	Name             string       `json:"name"`
	RequiredSlots    int          `json:"requiredSlots"`
	AvailableSlots   int          `json:"availableSlots"`
	GridSlots        int          `json:"gridSlots"`
	WeeklyLoadLimit  int          `json:"weeklyLoadLimit"`
	MaxPeriodsPerDay int          `json:"maxPeriodsPerDay"`
	Availability     Availability `json:"availability"`
	Overloaded       bool         `json:"overloaded"`
}

// Diagnostics is the report produced when a search fails.
type Diagnostics struct {
	TotalTasks       int           `json:"totalTasks"`
	LabTasks         int           `json:"labTasks"`
	Attempts         int           `json:"attempts"`
	MaxAttempts      int           `json:"maxAttempts"`
	BudgetExhausted  bool          `json:"budgetExhausted"`
	ElapsedMs        int64         `json:"elapsedTime"`
	ProblematicTasks []ProblemTask `json:"problematicTasks"`
	FacultyStatus    []FacultyLoad `json:"facultyStatus"`
	Suggestion       string        `json:"suggestion"`
}

// OverloadedFaculty returns the faculty entries flagged as overloaded.
func (d Diagnostics) OverloadedFaculty() []FacultyLoad {
	return lo.Filter(d.FacultyStatus, func(f FacultyLoad, _ int) bool { return f.Overloaded })
}

// Diagnose inspects the state left by a failed search. It never retries or repairs anything.
func Diagnose(p *Problem, outcome Outcome) Diagnostics {
	diag := Diagnostics{
		TotalTasks:       len(p.Tasks),
		LabTasks:         p.LabTaskCount(),
		Attempts:         outcome.Attempts,
		MaxAttempts:      outcome.MaxAttempts,
		BudgetExhausted:  outcome.BudgetExhausted,
		ElapsedMs:        outcome.Elapsed.Milliseconds(),
		ProblematicTasks: make([]ProblemTask, 0),
		Suggestion:       remediation,
	}

	for _, task := range p.Tasks {
		if len(feasibleSlots(p.State, task)) > 0 {
			continue
		}
		diag.ProblematicTasks = append(diag.ProblematicTasks, ProblemTask{
			TaskID:      task.ID,
			ClassID:     task.ClassID,
			ClassName:   task.ClassName,
			SubjectID:   task.SubjectID,
			SubjectName: task.SubjectName,
			FacultyID:   task.FacultyID,
			FacultyName: task.FacultyName,
			Length:      task.Length,
			IsLab:       task.IsLab,
			Reason:      p.explain(task),
		})
	}
	if len(diag.ProblematicTasks) > ProblemTaskLimit {
		diag.ProblematicTasks = diag.ProblematicTasks[:ProblemTaskLimit]
	}

	gridSlots := len(p.Config.WorkingDays) * p.Config.PeriodsPerDay
	diag.FacultyStatus = lo.Map(p.Faculty, func(f Faculty, _ int) FacultyLoad {
		required := lo.SumBy(p.Tasks, func(t Task) int {
			if t.FacultyID != f.ID {
				return 0
			}
			return t.Length
		})
		state, _ := p.State.Faculty(f.ID)
		available := p.capacity(state)
		return FacultyLoad{
			FacultyID:        f.ID,
			Name:             f.Name,
			RequiredSlots:    required,
			AvailableSlots:   available,
			GridSlots:        gridSlots,
			WeeklyLoadLimit:  state.WeeklyLoadLimit,
			MaxPeriodsPerDay: state.MaxPeriodsPerDay,
			Availability:     f.Availability,
			Overloaded:       required > available,
		}
	})
	return diag
}

// capacity is the number of periods a faculty member could teach in an otherwise empty week.
func (p *Problem) capacity(f *FacultyState) int {
	total := 0
	for d := range f.available {
		open := lo.CountBy(f.available[d], func(ok bool) bool { return ok })
		total += min(open, f.MaxPeriodsPerDay)
	}
	return min(total, f.WeeklyLoadLimit)
}

// explain names the most likely reason a task cannot be placed anywhere.
func (p *Problem) explain(task Task) string {
	cfg := p.Config
	if task.Length > cfg.PeriodsPerDay {
		return fmt.Sprintf("block of %d periods does not fit in a %d-period day", task.Length, cfg.PeriodsPerDay)
	}
	if task.IsLab {
		if len(p.State.labRooms) == 0 {
			return "no lab rooms are configured"
		}
		legal := lo.SomeBy(cfg.LabAllowedStartPeriods, func(start int) bool {
			end := start + task.Length - 2
			return start >= 1 && end < cfg.PeriodsPerDay && !p.State.crossesBreak(start-1, end)
		})
		if !legal {
			return fmt.Sprintf("no allowed lab start period fits a %d-period block without crossing a break", task.Length)
		}
	}
	if task.HasFaculty() {
		f, ok := p.State.Faculty(task.FacultyID)
		if !ok {
			return fmt.Sprintf("assigned faculty %s does not exist", task.FacultyID)
		}
		if p.capacity(f) == 0 {
			return fmt.Sprintf("faculty %s has no available periods", task.FacultyName)
		}
		if task.Length > p.State.maxRun {
			return fmt.Sprintf("block of %d periods exceeds the faculty consecutive limit of %d", task.Length, p.State.maxRun)
		}
	}
	return "No valid placement found (check faculty availability, load limits, or constraints)"
}
