package physics

import (
	"fmt"

	"github.com/san-kum/gni/internal/dynamo"
)

// Decay is the linear test equation y' = λy. It is not separable.
type Decay struct {
	Lambda float64
}

func NewDecay() *Decay { return &Decay{Lambda: -1.0} }

func (d *Decay) StateDim() int { return 1 }

func (d *Decay) DefaultState() dynamo.State { return dynamo.State{1.0} }

func (d *Decay) Derive(x dynamo.State) dynamo.State {
	return dynamo.State{d.Lambda * x[0]}
}

func (d *Decay) Params() map[string]float64 {
	return map[string]float64{"lambda": d.Lambda}
}

func (d *Decay) SetParam(name string, value float64) error {
	if name != "lambda" {
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	d.Lambda = value
	return nil
}
