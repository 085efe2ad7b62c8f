package scheduler

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"
)

// TimetableKind tells whether a timetable belongs to a class or a faculty member.
type TimetableKind string

const (
	KindClass   TimetableKind = "class"
	KindFaculty TimetableKind = "faculty"
)

// Period is one occupied cell of a timetable. PeriodIndex is 0-based.
type Period struct {
	Day         string `json:"day"`
	PeriodIndex int    `json:"periodIndex"`
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	SubjectCode string `json:"subjectCode,omitempty"`
	FacultyID   string `json:"facultyId,omitempty"`
	FacultyName string `json:"facultyName,omitempty"`
	ClassID     string `json:"classId"`
	ClassName   string `json:"className"`
	RoomID      string `json:"roomId,omitempty"`
	RoomName    string `json:"roomName,omitempty"`
	IsLab       bool   `json:"isLab"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// Timetable is the ordered list of periods for a class or a faculty member.
type Timetable struct {
	Kind          TimetableKind `json:"kind"`
	ReferenceID   string        `json:"referenceId"`
	ReferenceName string        `json:"referenceName"`
	Periods       []Period      `json:"periods"`
}

// Stats summarises a successful run.
type Stats struct {
	TotalTasks       int           `json:"totalTasks"`
	LabTasks         int           `json:"labTasks"`
	Attempts         int           `json:"attempts"`
	Elapsed          time.Duration `json:"elapsed"`
	UnroomedLectures int           `json:"unroomedLectures"`
}

// Result holds the timetables of a successful run.
type Result struct {
	ClassTimetables   []Timetable `json:"classTimetables"`
	FacultyTimetables []Timetable `json:"facultyTimetables"`
	Stats             Stats       `json:"stats"`
}

// Materialize walks the committed grids and emits one timetable per class and one per faculty
// member holding at least one period.
func Materialize(p *Problem, outcome Outcome) (*Result, error) {
	rooms, err := assignClassrooms(p)
	if err != nil {
		return nil, err
	}
	roomNames := lo.SliceToMap(p.Rooms, func(r Room) (string, string) { return r.ID, r.Name })
	starts, ends := periodTimes(p.Config)

	result := &Result{
		ClassTimetables:   make([]Timetable, 0, len(p.Classes)),
		FacultyTimetables: make([]Timetable, 0),
		Stats: Stats{
			TotalTasks: len(p.Tasks),
			LabTasks:   p.LabTaskCount(),
			Attempts:   outcome.Attempts,
			Elapsed:    outcome.Elapsed,
		},
	}
	byFaculty := make(map[string][]Period)

	for _, class := range p.Classes {
		periods := make([]Period, 0)
		for d, day := range p.Config.WorkingDays {
			for i := 0; i < p.Config.PeriodsPerDay; i++ {
				cell := p.State.ClassCell(class.ID, d, i)
				if cell == nil {
					continue
				}
				task := p.tasksByID[cell.TaskID]
				period := Period{
					Day:         day,
					PeriodIndex: i,
					SubjectID:   cell.SubjectID,
					SubjectName: task.SubjectName,
					SubjectCode: task.SubjectCode,
					FacultyID:   cell.FacultyID,
					ClassID:     class.ID,
					ClassName:   class.Name,
					IsLab:       cell.IsLab,
					StartTime:   starts[i],
					EndTime:     ends[i],
				}
				if task.HasFaculty() {
					period.FacultyName = task.FacultyName
				}
				if cell.IsLab {
					period.RoomID = p.State.LabRoomOf(class.ID, d, i)
				} else {
					period.RoomID = rooms[cellKey{classID: class.ID, day: d, period: i}]
					if period.RoomID == "" {
						result.Stats.UnroomedLectures++
					}
				}
				period.RoomName = roomNames[period.RoomID]
				periods = append(periods, period)
				if cell.FacultyID != "" {
					byFaculty[cell.FacultyID] = append(byFaculty[cell.FacultyID], period)
				}
			}
		}
		result.ClassTimetables = append(result.ClassTimetables, Timetable{
			Kind:          KindClass,
			ReferenceID:   class.ID,
			ReferenceName: class.Name,
			Periods:       periods,
		})
	}

	dayIndex := lo.SliceToMap(p.Config.WorkingDays, func(day string) (string, int) {
		return day, lo.IndexOf(p.Config.WorkingDays, day)
	})
	for _, f := range p.Faculty {
		periods := byFaculty[f.ID]
		if len(periods) == 0 {
			continue
		}
		sortPeriods(periods, dayIndex)
		result.FacultyTimetables = append(result.FacultyTimetables, Timetable{
			Kind:          KindFaculty,
			ReferenceID:   f.ID,
			ReferenceName: f.Name,
			Periods:       periods,
		})
	}
	return result, nil
}

// sortPeriods orders periods by (day, period), keeping class order for equal cells.
func sortPeriods(periods []Period, dayIndex map[string]int) {
	slices.SortStableFunc(periods, func(a, b Period) int {
		if c := cmp.Compare(dayIndex[a.Day], dayIndex[b.Day]); c != 0 {
			return c
		}
		return cmp.Compare(a.PeriodIndex, b.PeriodIndex)
	})
}
