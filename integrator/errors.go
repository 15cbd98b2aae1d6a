package integrator

import "errors"

var (
	// ErrNotImplemented indicates a flow map without a step function.
	ErrNotImplemented = errors.New("integrator: step function not implemented")

	// ErrInvalidOperand indicates a nil flow map or a non-finite coefficient
	// passed to Compose or Scale.
	ErrInvalidOperand = errors.New("integrator: invalid operand")

	// ErrInvalidParameters indicates a run whose step count cannot be
	// computed from the total time and step size.
	ErrInvalidParameters = errors.New("integrator: invalid run parameters")
)
