package logic

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced at the request boundary.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrNoFeasibleAssignment = errors.New("no feasible assignment")
	ErrSolverTimeout        = errors.New("solver timeout")
	// ErrConflict is returned when a write races with another roster change.
	ErrConflict             = errors.New("conflict")
)

// AssignmentError reports an optimization that produced no usable assignment.
// It matches ErrNoFeasibleAssignment, and ErrSolverTimeout when TimedOut is set.
type AssignmentError struct {
	UnfilledSlots []string
	TimedOut      bool
}

func (e *AssignmentError) Error() string {
	msg := ErrNoFeasibleAssignment.Error()
	if e.TimedOut {
		msg = ErrSolverTimeout.Error() + " before any feasible assignment was found"
	}
	if len(e.UnfilledSlots) > 0 {
		msg += ": unfilled slots " + strings.Join(e.UnfilledSlots, ", ")
	}
	return msg
}

func (e *AssignmentError) Is(target error) bool {
	if target == ErrNoFeasibleAssignment {
		return true
	}
	return e.TimedOut && target == ErrSolverTimeout
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// ErrorKind names the error category for API responses.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrInvalidRequest):
		return "InvalidRequest"
	case errors.Is(err, ErrSolverTimeout):
		return "SolverTimeout"
	case errors.Is(err, ErrNoFeasibleAssignment):
		return "NoFeasibleAssignment"
	case errors.Is(err, ErrConflict):
		return "Conflict"
	default:
		return "Internal"
	}
}
