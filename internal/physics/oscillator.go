package physics

import (
	"fmt"

	"github.com/san-kum/gni/internal/dynamo"
)

// Oscillator is a unit-free harmonic oscillator, H = p²/2m + kq²/2.
type Oscillator struct {
	Mass      float64
	Stiffness float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Mass: 1.0, Stiffness: 1.0}
}

func (o *Oscillator) StateDim() int { return 2 }

func (o *Oscillator) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

func (o *Oscillator) Derive(x dynamo.State) dynamo.State { return deriveSplit(o, x) }

func (o *Oscillator) Velocity(p dynamo.State) dynamo.State {
	return dynamo.State{p[0] / o.Mass}
}

func (o *Oscillator) Force(q dynamo.State) dynamo.State {
	return dynamo.State{-o.Stiffness * q[0]}
}

func (o *Oscillator) Energy(x dynamo.State) float64 {
	q, p := x[0], x[1]
	return 0.5*p*p/o.Mass + 0.5*o.Stiffness*q*q
}

func (o *Oscillator) Params() map[string]float64 {
	return map[string]float64{"mass": o.Mass, "stiffness": o.Stiffness}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		if value <= 0 {
			return fmt.Errorf("%w: mass %v", dynamo.ErrParameterBounds, value)
		}
		o.Mass = value
	case "stiffness":
		o.Stiffness = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
