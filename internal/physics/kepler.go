package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/gni/internal/dynamo"
)

// Kepler is the planar two-body problem in relative coordinates,
// H = |p|²/2 - μ/|q|. The state is [x, y, px, py].
type Kepler struct {
	Mu           float64
	Eccentricity float64
}

func NewKepler() *Kepler {
	return &Kepler{Mu: 1.0, Eccentricity: 0.5}
}

func (k *Kepler) StateDim() int { return 4 }

// DefaultState starts at pericentre of an orbit with semi-major axis 1.
func (k *Kepler) DefaultState() dynamo.State {
	e := k.Eccentricity
	return dynamo.State{1 - e, 0, 0, math.Sqrt(k.Mu * (1 + e) / (1 - e))}
}

func (k *Kepler) Derive(x dynamo.State) dynamo.State { return deriveSplit(k, x) }

func (k *Kepler) Velocity(p dynamo.State) dynamo.State {
	return dynamo.State{p[0], p[1]}
}

func (k *Kepler) Force(q dynamo.State) dynamo.State {
	r := math.Hypot(q[0], q[1])
	r3 := r * r * r
	return dynamo.State{-k.Mu * q[0] / r3, -k.Mu * q[1] / r3}
}

func (k *Kepler) Energy(x dynamo.State) float64 {
	return 0.5*(x[2]*x[2]+x[3]*x[3]) - k.Mu/math.Hypot(x[0], x[1])
}

// AngularMomentum returns q × p, conserved by the exact flow.
func (k *Kepler) AngularMomentum(x dynamo.State) float64 {
	return x[0]*x[3] - x[1]*x[2]
}

func (k *Kepler) Params() map[string]float64 {
	return map[string]float64{"mu": k.Mu, "eccentricity": k.Eccentricity}
}

func (k *Kepler) SetParam(name string, value float64) error {
	switch name {
	case "mu":
		if value <= 0 {
			return fmt.Errorf("%w: mu %v", dynamo.ErrParameterBounds, value)
		}
		k.Mu = value
	case "eccentricity":
		if value < 0 || value >= 1 {
			return fmt.Errorf("%w: eccentricity %v", dynamo.ErrParameterBounds, value)
		}
		k.Eccentricity = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
