package orbel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidElements is returned when the orbital elements or the masses are outside
	// of their valid domain. No partial result accompanies it.
	ErrInvalidElements = errors.New("invalid elements")
	// ErrSolverNonConvergence flags a Kepler solution which hit the iteration cap.
	// It is a warning: the best estimate is still used.
	ErrSolverNonConvergence = errors.New("kepler solver did not converge")
	// ErrDegenerateGeometry flags an orbit whose line of nodes is undefined (sin i = 0).
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// InvalidElementsError details which input is out of its domain.
type InvalidElementsError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidElementsError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidElements, e.Field, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidElements).
func (e *InvalidElementsError) Unwrap() error {
	return ErrInvalidElements
}

func invalid(field string, value float64, reason string) error {
	return &InvalidElementsError{field, value, reason}
}
