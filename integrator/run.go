package integrator

import (
	"fmt"
	"iter"
	"math"
)

// Trajectory is the lazy sequence of states produced by repeatedly
// stepping a flow map. It is a single pass: each call to Next performs one
// step, and once exhausted it cannot be restarted.
//
// State returns exactly the value the last Step returned. When the flow
// map updates its input in place, that value is overwritten by the next
// call to Next; copy it before advancing if it must be kept.
type Trajectory[S any] struct {
	m     FlowMap[S]
	h     float64
	n     int
	k     int
	state S
	args  []any
}

// Run prepares round(totalTime/stepSize) steps of m starting from y. The
// extra args are passed to every Step call. No step is taken until the
// trajectory is advanced.
//
// Run fails with ErrInvalidOperand for a nil flow map and with
// ErrInvalidParameters when the step count is not a finite, non-negative
// integer.
func Run[S any](m FlowMap[S], totalTime, stepSize float64, y S, args ...any) (*Trajectory[S], error) {
	if isNil(m) {
		return nil, fmt.Errorf("%w: cannot run a nil flow map", ErrInvalidOperand)
	}
	n, err := StepCount(totalTime, stepSize)
	if err != nil {
		return nil, err
	}
	return &Trajectory[S]{
		m:     m,
		h:     stepSize,
		n:     n,
		state: y,
		args:  args,
	}, nil
}

// StepCount returns the number of steps of size stepSize covering
// totalTime, rounded to the nearest integer.
func StepCount(totalTime, stepSize float64) (int, error) {
	if stepSize == 0 || math.IsNaN(stepSize) || math.IsInf(stepSize, 0) {
		return 0, fmt.Errorf("%w: step size %v", ErrInvalidParameters, stepSize)
	}
	ratio := totalTime / stepSize
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, fmt.Errorf("%w: total time %v over step size %v is not finite", ErrInvalidParameters, totalTime, stepSize)
	}
	n := math.Round(ratio)
	if n < 0 {
		return 0, fmt.Errorf("%w: total time %v and step size %v have opposite signs", ErrInvalidParameters, totalTime, stepSize)
	}
	if n >= math.MaxInt {
		return 0, fmt.Errorf("%w: %v steps overflow", ErrInvalidParameters, n)
	}
	return int(n), nil
}

// Next takes one step and reports whether it did. It returns false once
// all steps have been taken.
func (t *Trajectory[S]) Next() bool {
	if t.k >= t.n {
		return false
	}
	t.state = t.m.Step(t.h, t.state, t.args...)
	t.k++
	return true
}

// State returns the state after the most recent step, or the initial
// state before the first one.
func (t *Trajectory[S]) State() S { return t.state }

// Index returns the number of steps taken so far.
func (t *Trajectory[S]) Index() int { return t.k }

// Time returns the elapsed time, Index()*stepSize.
func (t *Trajectory[S]) Time() float64 { return float64(t.k) * t.h }

// Len returns the total number of steps.
func (t *Trajectory[S]) Len() int { return t.n }

// StepSize returns the outer step size.
func (t *Trajectory[S]) StepSize() float64 { return t.h }

// Done reports whether every step has been taken.
func (t *Trajectory[S]) Done() bool { return t.k >= t.n }

// All ranges over the remaining steps, yielding the 1-based step index and
// the state after that step. Breaking out of the loop stops stepping; a
// later range resumes from where the previous one stopped.
func (t *Trajectory[S]) All() iter.Seq2[int, S] {
	return func(yield func(int, S) bool) {
		for t.Next() {
			if !yield(t.k, t.state) {
				return
			}
		}
	}
}

// Last takes all remaining steps and returns the final state.
func (t *Trajectory[S]) Last() S {
	for t.Next() {
	}
	return t.state
}
