package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/gni/internal/dynamo"
)

// Pendulum is an undamped rigid pendulum in canonical coordinates
// (θ, p_θ) with p_θ = m L² ω.
type Pendulum struct {
	Mass    float64
	Length  float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Gravity: 9.81,
	}
}

func (p *Pendulum) StateDim() int {
	return 2
}

func (p *Pendulum) DefaultState() dynamo.State { return dynamo.State{0.5, 0.0} }

func (p *Pendulum) Derive(x dynamo.State) dynamo.State { return deriveSplit(p, x) }

func (p *Pendulum) Velocity(mom dynamo.State) dynamo.State {
	return dynamo.State{mom[0] / (p.Mass * p.Length * p.Length)}
}

func (p *Pendulum) Force(q dynamo.State) dynamo.State {
	return dynamo.State{-p.Mass * p.Gravity * p.Length * math.Sin(q[0])}
}

func (p *Pendulum) Energy(x dynamo.State) float64 {
	// KE = p²/(2 m L²)
	// PE = m g L (1 - cos θ)
	ke := 0.5 * x[1] * x[1] / (p.Mass * p.Length * p.Length)
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(x[0]))
	return ke + pe
}

func (p *Pendulum) Params() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		if value <= 0 {
			return fmt.Errorf("%w: mass %v", dynamo.ErrParameterBounds, value)
		}
		p.Mass = value
	case "length":
		if value <= 0 {
			return fmt.Errorf("%w: length %v", dynamo.ErrParameterBounds, value)
		}
		p.Length = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
