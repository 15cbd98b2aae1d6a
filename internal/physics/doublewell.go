package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/gni/internal/dynamo"
)

// DoubleWell models a particle in the bistable potential V = A(q² - B)².
type DoubleWell struct {
	A, B, Mass float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{1.0, 1.0, 1.0}
}

func (d *DoubleWell) StateDim() int { return 2 }

func (d *DoubleWell) DefaultState() dynamo.State { return dynamo.State{math.Sqrt(d.B) + 0.1, 0} }

func (d *DoubleWell) Derive(s dynamo.State) dynamo.State { return deriveSplit(d, s) }

func (d *DoubleWell) Velocity(p dynamo.State) dynamo.State {
	return dynamo.State{p[0] / d.Mass}
}

func (d *DoubleWell) Force(q dynamo.State) dynamo.State {
	x := q[0]
	return dynamo.State{-4 * d.A * x * (x*x - d.B)}
}

func (d *DoubleWell) Energy(s dynamo.State) float64 {
	x, p := s[0], s[1]
	return 0.5*p*p/d.Mass + d.A*math.Pow(x*x-d.B, 2)
}

func (d *DoubleWell) Params() map[string]float64 {
	return map[string]float64{"A": d.A, "B": d.B, "mass": d.Mass}
}

func (d *DoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "A":
		d.A = v
	case "B":
		d.B = v
	case "mass":
		if v <= 0 {
			return fmt.Errorf("%w: mass %v", dynamo.ErrParameterBounds, v)
		}
		d.Mass = v
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, n)
	}
	return nil
}
