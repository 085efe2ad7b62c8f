package scheduler

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Task is one weekly occurrence of a subject for a class. Labs occupy Length contiguous periods.
type Task struct {
	ID          string
	ClassID     string
	ClassName   string
	SubjectID   string
	SubjectName string
	SubjectCode string
	FacultyID   string
	FacultyName string
	Length      int
	IsLab       bool
	RoomKind    RoomKind
}

// HasFaculty reports whether faculty constraints apply to the task.
func (t Task) HasFaculty() bool {
	return t.FacultyID != ""
}

// Problem is the solvable form of a snapshot: ordered tasks plus the search state they are placed into.
type Problem struct {
	Config  Config
	Tasks   []Task
	Classes []Class
	Faculty []Faculty
	Rooms   []Room
	State   *SearchState

	tasksByID map[string]Task
}

// Build converts a snapshot into a Problem. It fails fast when there is nothing to schedule.
func Build(snapshot Snapshot, overrides Overrides) (*Problem, error) {
	if len(snapshot.Classes) == 0 {
		return nil, ErrNoClassesFound
	}
	if !lo.SomeBy(snapshot.Classes, func(c Class) bool { return len(c.Subjects) > 0 }) {
		return nil, ErrNoSubjectsAssigned
	}

	cfg := snapshot.Config.withDefaults().apply(overrides)
	facultyNames := lo.SliceToMap(snapshot.Faculty, func(f Faculty) (string, string) {
		return f.ID, f.Name
	})

	tasks := make([]Task, 0)
	for _, class := range snapshot.Classes {
		for _, subject := range class.Subjects {
			isLab := subject.Kind == SubjectLab
			length, roomKind := 1, RoomClassroom
			if isLab {
				length, roomKind = subject.LabLength, RoomLab
				if length <= 0 {
					length = DefaultLabLength
				}
			}
			facultyID := firstFaculty(subject.FacultyIDs)
			facultyName := "Unassigned"
			if facultyID != "" {
				facultyName = lo.ValueOr(facultyNames, facultyID, facultyID)
			}
			for i := 0; i < subject.SessionsPerWeek; i++ {
				tasks = append(tasks, Task{
					ID:          fmt.Sprintf("%s_%s_%d", class.ID, subject.ID, i),
					ClassID:     class.ID,
					ClassName:   class.Name,
					SubjectID:   subject.ID,
					SubjectName: subject.Name,
					SubjectCode: subject.Code,
					FacultyID:   facultyID,
					FacultyName: facultyName,
					Length:      length,
					IsLab:       isLab,
					RoomKind:    roomKind,
				})
			}
		}
	}
	orderTasks(tasks)

	return &Problem{
		Config:    cfg,
		Tasks:     tasks,
		Classes:   snapshot.Classes,
		Faculty:   snapshot.Faculty,
		Rooms:     snapshot.Rooms,
		State:     newSearchState(cfg, snapshot.Classes, snapshot.Faculty, snapshot.Rooms),
		tasksByID: lo.KeyBy(tasks, func(t Task) string { return t.ID }),
	}, nil
}

// LabTaskCount returns how many tasks are lab blocks.
func (p *Problem) LabTaskCount() int {
	return lo.CountBy(p.Tasks, func(t Task) bool { return t.IsLab })
}

// orderTasks puts longer blocks first, then faculty-bound tasks. Ties keep their build order.
func orderTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Length != tasks[j].Length {
			return tasks[i].Length > tasks[j].Length
		}
		return tasks[i].HasFaculty() && !tasks[j].HasFaculty()
	})
}

func firstFaculty(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
