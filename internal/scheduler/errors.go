package scheduler

import (
	"errors"
	"fmt"
)

var (
	// ErrNoClassesFound is returned before any search when the snapshot holds no classes.
	ErrNoClassesFound = errors.New("no classes found")
	// ErrNoSubjectsAssigned is returned before any search when no class carries a subject.
	ErrNoSubjectsAssigned = errors.New("no subjects assigned to any class")
)

// UnsatisfiableError reports a failed search together with its diagnostics.
type UnsatisfiableError struct {
	Diagnostics Diagnostics
}

// Error implements the error interface.
func (e *UnsatisfiableError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("scheduling failed after %d attempts in %dms", e.Diagnostics.Attempts, e.Diagnostics.ElapsedMs)
}
