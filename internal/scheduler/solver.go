package scheduler

import (
	"math/rand"
	"time"
)

// Slot is a (day, period) coordinate, both 0-based.
type Slot struct {
	Day    int
	Period int
}

// Outcome summarises a finished search.
type Outcome struct {
	Solved bool
	// BudgetExhausted is set when the attempt cap or the deadline stopped the search.
	BudgetExhausted bool
	Attempts        int
	MaxAttempts     int
	Elapsed         time.Duration
}

type solver struct {
	state       *SearchState
	tasks       []Task
	order       SlotOrder
	rng         *rand.Rand
	maxAttempts int
	deadline    time.Time
	now         func() time.Time

	attempts int
	aborted  bool
}

// Solve runs chronological backtracking over the problem's tasks in their fixed order.
// On failure every commit has been rolled back, leaving the grids empty.
func Solve(p *Problem) Outcome {
	return solve(p, time.Now)
}

func solve(p *Problem, now func() time.Time) Outcome {
	start := now()
	s := &solver{
		state:       p.State,
		tasks:       p.Tasks,
		order:       p.Config.SlotOrder,
		maxAttempts: p.Config.MaxAttempts,
		deadline:    start.Add(p.Config.Timeout),
		now:         now,
	}
	if s.order == SlotOrderRandom {
		s.rng = rand.New(rand.NewSource(p.Config.Seed))
	}

	solved := s.backtrack(0)
	return Outcome{
		Solved:          solved,
		BudgetExhausted: s.aborted,
		Attempts:        s.attempts,
		MaxAttempts:     s.maxAttempts,
		Elapsed:         now().Sub(start),
	}
}

func (s *solver) backtrack(index int) bool {
	s.attempts++
	if s.attempts > s.maxAttempts || s.now().After(s.deadline) {
		s.aborted = true
		return false
	}
	if index >= len(s.tasks) {
		return true
	}

	task := s.tasks[index]
	for _, slot := range s.candidates(task) {
		s.state.Commit(task, slot.Day, slot.Period)
		if s.backtrack(index + 1) {
			return true
		}
		s.state.Rollback(task, slot.Day, slot.Period)
		if s.aborted {
			return false
		}
	}
	return false
}

// candidates lists the feasible slots for task in the configured trial order.
func (s *solver) candidates(task Task) []Slot {
	slots := feasibleSlots(s.state, task)
	if s.rng != nil {
		s.rng.Shuffle(len(slots), func(i, j int) {
			slots[i], slots[j] = slots[j], slots[i]
		})
	}
	return slots
}

func feasibleSlots(state *SearchState, task Task) []Slot {
	var slots []Slot
	for d := range state.days {
		for p := 0; p < state.periods; p++ {
			if state.Feasible(task, d, p) {
				slots = append(slots, Slot{Day: d, Period: p})
			}
		}
	}
	return slots
}
