package scheduler

import "slices"

// Placement is the content of an occupied class grid cell.
type Placement struct {
	TaskID    string
	SubjectID string
	FacultyID string
	IsLab     bool
}

// FacultyState tracks a faculty member's limits and the load committed so far.
type FacultyState struct {
	ID               string
	MaxPeriodsPerDay int
	WeeklyLoadLimit  int
	DailyLoad        []int
	WeeklyLoad       int
	// LastPlaced holds, per day, the 0-based end of the most recent block placed that day or -1.
	LastPlaced []int

	available [][]bool
	busy      [][]bool
}

func (f *FacultyState) free(day, period int) bool {
	return f.available[day][period] && !f.busy[day][period]
}

// run returns the length of the contiguous busy run that a block [start, end] would join.
func (f *FacultyState) run(day, start, end int) int {
	length := end - start + 1
	for p := start - 1; p >= 0 && f.busy[day][p]; p-- {
		length++
	}
	for p := end + 1; p < len(f.busy[day]) && f.busy[day][p]; p++ {
		length++
	}
	return length
}

// RoomState is a room together with its week grid. Grid cells hold the occupying class id.
type RoomState struct {
	ID   string
	Kind RoomKind

	available [][]bool
	grid      [][]string
}

func (r *RoomState) freeBlock(day, start, length int) bool {
	for p := start; p < start+length; p++ {
		if !r.available[day][p] || r.grid[day][p] != "" {
			return false
		}
	}
	return true
}

type undoFrame struct {
	taskID   string
	day      int
	period   int
	roomID   string
	prevLast int
}

// SearchState owns every grid and counter mutated during one search. Days and periods are 0-based
// indexes; lab start periods, breaks and availability use 1-based period numbers.
type SearchState struct {
	days       []string
	periods    int
	maxRun     int
	labStarts  map[int]bool
	breakAfter map[int]bool

	classGrids map[string][][]*Placement
	faculty    map[string]*FacultyState
	rooms      []*RoomState
	labRooms   []*RoomState
	frames     []undoFrame
}

func newSearchState(cfg Config, classes []Class, faculty []Faculty, rooms []Room) *SearchState {
	s := &SearchState{
		days:       cfg.WorkingDays,
		periods:    cfg.PeriodsPerDay,
		maxRun:     cfg.MaxConsecutivePeriodsForFaculty,
		labStarts:  make(map[int]bool, len(cfg.LabAllowedStartPeriods)),
		breakAfter: make(map[int]bool, len(cfg.Breaks)),
		classGrids: make(map[string][][]*Placement, len(classes)),
		faculty:    make(map[string]*FacultyState, len(faculty)),
	}
	for _, p := range cfg.LabAllowedStartPeriods {
		s.labStarts[p] = true
	}
	for _, b := range cfg.Breaks {
		s.breakAfter[b.AfterPeriod] = true
	}
	for _, class := range classes {
		grid := make([][]*Placement, len(s.days))
		for d := range grid {
			grid[d] = make([]*Placement, s.periods)
		}
		s.classGrids[class.ID] = grid
	}
	for _, f := range faculty {
		state := &FacultyState{
			ID:               f.ID,
			MaxPeriodsPerDay: f.MaxPeriodsPerDay,
			WeeklyLoadLimit:  f.WeeklyLoadLimit,
			DailyLoad:        make([]int, len(s.days)),
			LastPlaced:       make([]int, len(s.days)),
			available:        s.matrix(func(day string, period int) bool { return f.Availability.allows(day, period) }),
			busy:             s.matrix(nil),
		}
		if state.MaxPeriodsPerDay <= 0 {
			state.MaxPeriodsPerDay = DefaultMaxPeriodsPerDay
		}
		if state.WeeklyLoadLimit <= 0 {
			state.WeeklyLoadLimit = DefaultWeeklyLoadLimit
		}
		for d := range state.LastPlaced {
			state.LastPlaced[d] = -1
		}
		s.faculty[f.ID] = state
	}
	for _, room := range rooms {
		state := &RoomState{
			ID:        room.ID,
			Kind:      room.Kind,
			available: s.matrix(func(day string, period int) bool { return roomAllows(room.Availability, day, period) }),
			grid:      make([][]string, len(s.days)),
		}
		for d := range state.grid {
			state.grid[d] = make([]string, s.periods)
		}
		s.rooms = append(s.rooms, state)
		if room.Kind == RoomLab {
			s.labRooms = append(s.labRooms, state)
		}
	}
	return s
}

// matrix builds a [day][period] table; allow receives the day name and a 1-based period.
func (s *SearchState) matrix(allow func(day string, period int) bool) [][]bool {
	m := make([][]bool, len(s.days))
	for d, day := range s.days {
		m[d] = make([]bool, s.periods)
		if allow == nil {
			continue
		}
		for p := range m[d] {
			m[d][p] = allow(day, p+1)
		}
	}
	return m
}

func roomAllows(a Availability, day string, period int) bool {
	allowed := a[day]
	return len(allowed) == 0 || slices.Contains(allowed, period)
}

// Feasible reports whether task can start at (day, period) without breaking any hard constraint.
func (s *SearchState) Feasible(task Task, day, period int) bool {
	end := period + task.Length - 1
	if day < 0 || day >= len(s.days) || period < 0 || end >= s.periods {
		return false
	}
	if task.Length > 1 && !s.labStarts[period+1] {
		return false
	}
	if s.crossesBreak(period, end) {
		return false
	}

	grid, ok := s.classGrids[task.ClassID]
	if !ok {
		return false
	}
	for p := period; p <= end; p++ {
		if grid[day][p] != nil {
			return false
		}
	}

	if task.HasFaculty() {
		f, ok := s.faculty[task.FacultyID]
		if !ok {
			return false
		}
		for p := period; p <= end; p++ {
			if !f.free(day, p) {
				return false
			}
		}
		if f.DailyLoad[day]+task.Length > f.MaxPeriodsPerDay || f.WeeklyLoad+task.Length > f.WeeklyLoadLimit {
			return false
		}
		if f.run(day, period, end) > s.maxRun {
			return false
		}
	}

	if task.IsLab && s.freeLabRoom(day, period, task.Length) == nil {
		return false
	}
	return true
}

// Commit places task at (day, period). The caller must have checked Feasible.
func (s *SearchState) Commit(task Task, day, period int) {
	frame := undoFrame{taskID: task.ID, day: day, period: period, prevLast: -1}
	grid := s.classGrids[task.ClassID]
	for p := period; p < period+task.Length; p++ {
		grid[day][p] = &Placement{
			TaskID:    task.ID,
			SubjectID: task.SubjectID,
			FacultyID: task.FacultyID,
			IsLab:     task.IsLab,
		}
	}

	if f, ok := s.faculty[task.FacultyID]; ok && task.HasFaculty() {
		for p := period; p < period+task.Length; p++ {
			f.busy[day][p] = true
		}
		f.DailyLoad[day] += task.Length
		f.WeeklyLoad += task.Length
		frame.prevLast = f.LastPlaced[day]
		f.LastPlaced[day] = period + task.Length - 1
	}

	if task.IsLab {
		if room := s.freeLabRoom(day, period, task.Length); room != nil {
			for p := period; p < period+task.Length; p++ {
				room.grid[day][p] = task.ClassID
			}
			frame.roomID = room.ID
		}
	}
	s.frames = append(s.frames, frame)
}

// Rollback undoes the Commit of task at (day, period).
func (s *SearchState) Rollback(task Task, day, period int) {
	idx := s.frameIndex(task.ID, day, period)
	if idx < 0 {
		return
	}
	frame := s.frames[idx]
	s.frames = slices.Delete(s.frames, idx, idx+1)

	grid := s.classGrids[task.ClassID]
	for p := period; p < period+task.Length; p++ {
		grid[day][p] = nil
	}

	if f, ok := s.faculty[task.FacultyID]; ok && task.HasFaculty() {
		for p := period; p < period+task.Length; p++ {
			f.busy[day][p] = false
		}
		f.DailyLoad[day] -= task.Length
		f.WeeklyLoad -= task.Length
		f.LastPlaced[day] = frame.prevLast
	}

	if frame.roomID != "" {
		for _, room := range s.rooms {
			if room.ID != frame.roomID {
				continue
			}
			for p := period; p < period+task.Length; p++ {
				room.grid[day][p] = ""
			}
			break
		}
	}
}

// Placed returns the number of committed placements.
func (s *SearchState) Placed() int {
	return len(s.frames)
}

// ClassCell returns the placement at a class grid cell or nil.
func (s *SearchState) ClassCell(classID string, day, period int) *Placement {
	grid, ok := s.classGrids[classID]
	if !ok {
		return nil
	}
	return grid[day][period]
}

// Faculty returns the runtime state of a faculty member.
func (s *SearchState) Faculty(id string) (*FacultyState, bool) {
	f, ok := s.faculty[id]
	return f, ok
}

// LabRoomOf returns the id of the lab room a class occupies at (day, period), if any.
func (s *SearchState) LabRoomOf(classID string, day, period int) string {
	for _, room := range s.labRooms {
		if room.grid[day][period] == classID {
			return room.ID
		}
	}
	return ""
}

func (s *SearchState) freeLabRoom(day, period, length int) *RoomState {
	for _, room := range s.labRooms {
		if room.freeBlock(day, period, length) {
			return room
		}
	}
	return nil
}

// crossesBreak reports whether the 0-based block [start, end] spans a break boundary.
func (s *SearchState) crossesBreak(start, end int) bool {
	for after := range s.breakAfter {
		if start+1 <= after && after < end+1 {
			return true
		}
	}
	return false
}

func (s *SearchState) frameIndex(taskID string, day, period int) int {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if f.taskID == taskID && f.day == day && f.period == period {
			return i
		}
	}
	return -1
}
