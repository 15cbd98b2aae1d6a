package dynamo

import (
	"fmt"
	"math"
)

// State is a phase-space vector. Separable systems lay it out as
// positions followed by momenta: [q..., p...].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Split returns the position and momentum halves of s. Both alias s.
func (s State) Split() (q, p State) {
	half := len(s) / 2
	return s[:half:half], s[half:]
}

// System is an autonomous ODE dx/dt = f(x).
type System interface {
	Derive(x State) State
	StateDim() int
}

// Separable is a Hamiltonian system H(q, p) = T(p) + V(q).
type Separable interface {
	System
	// Velocity returns dq/dt = ∂T/∂p.
	Velocity(p State) State
	// Force returns dp/dt = -∂V/∂q.
	Force(q State) State
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// Metric accumulates a scalar summary of a trajectory.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// CheckDim returns ErrDimensionMismatch unless x fits sys.
func CheckDim(sys System, x State) error {
	if len(x) != sys.StateDim() {
		return fmt.Errorf("%w: state has %d components, system expects %d", ErrDimensionMismatch, len(x), sys.StateDim())
	}
	return nil
}
