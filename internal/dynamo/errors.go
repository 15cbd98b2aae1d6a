package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name the system does not have.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrDimensionMismatch indicates a state that does not fit the system.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrNotSeparable indicates a splitting method applied to a system
	// without a kinetic/potential split.
	ErrNotSeparable = errors.New("dynamo: system is not separable")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
