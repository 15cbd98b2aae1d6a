package physics

import (
	"fmt"

	"github.com/san-kum/gni/internal/dynamo"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 10.0
)

// SpringChain is a line of masses joined by springs, with the outermost
// springs anchored to fixed walls. The state is [q₁..qₙ, p₁..pₙ].
type SpringChain struct {
	NumMasses int
	Masses    []float64
	Stiffness []float64
}

func NewSpringChain(n int) *SpringChain {
	masses := make([]float64, n)
	stiffness := make([]float64, n+1)

	for i := 0; i < n; i++ {
		masses[i] = DefaultMass
		stiffness[i] = DefaultStiffness
	}
	stiffness[n] = DefaultStiffness

	return &SpringChain{
		NumMasses: n,
		Masses:    masses,
		Stiffness: stiffness,
	}
}

func (s *SpringChain) StateDim() int { return s.NumMasses * 2 }

// DefaultState displaces the first mass by one unit.
func (s *SpringChain) DefaultState() dynamo.State {
	x := make(dynamo.State, s.StateDim())
	if s.NumMasses > 0 {
		x[0] = 1.0
	}
	return x
}

func (s *SpringChain) Derive(x dynamo.State) dynamo.State { return deriveSplit(s, x) }

func (s *SpringChain) Velocity(p dynamo.State) dynamo.State {
	v := make(dynamo.State, s.NumMasses)
	for i := range v {
		v[i] = p[i] / s.Masses[i]
	}
	return v
}

func (s *SpringChain) Force(q dynamo.State) dynamo.State {
	n := s.NumMasses
	f := make(dynamo.State, n)

	for i := 0; i < n; i++ {
		left, right := 0.0, 0.0
		if i > 0 {
			left = q[i-1]
		}
		if i < n-1 {
			right = q[i+1]
		}
		f[i] = -s.Stiffness[i]*(q[i]-left) + s.Stiffness[i+1]*(right-q[i])
	}

	return f
}

func (s *SpringChain) Energy(x dynamo.State) float64 {
	n := s.NumMasses
	energy := 0.0

	for i := 0; i < n; i++ {
		p := x[n+i]
		energy += 0.5 * p * p / s.Masses[i]
	}

	for i := 0; i <= n; i++ {
		left, right := 0.0, 0.0
		if i > 0 {
			left = x[i-1]
		}
		if i < n {
			right = x[i]
		}
		stretch := right - left
		energy += 0.5 * s.Stiffness[i] * stretch * stretch
	}

	return energy
}

// Params exposes the uniform mass and stiffness of the chain; SetParam
// applies a value to every mass or spring.
func (s *SpringChain) Params() map[string]float64 {
	params := map[string]float64{"masses": float64(s.NumMasses)}
	if s.NumMasses > 0 {
		params["mass"] = s.Masses[0]
		params["stiffness"] = s.Stiffness[0]
	}
	return params
}

func (s *SpringChain) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		if value <= 0 {
			return fmt.Errorf("%w: mass %v", dynamo.ErrParameterBounds, value)
		}
		for i := range s.Masses {
			s.Masses[i] = value
		}
	case "stiffness":
		for i := range s.Stiffness {
			s.Stiffness[i] = value
		}
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
