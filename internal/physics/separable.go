package physics

import "github.com/san-kum/gni/internal/dynamo"

// splitField is the part of a separable system the shared derivative needs.
type splitField interface {
	Velocity(p dynamo.State) dynamo.State
	Force(q dynamo.State) dynamo.State
}

// deriveSplit assembles dx/dt = [∂T/∂p, -∂V/∂q] for a state laid out as
// [q..., p...].
func deriveSplit(f splitField, x dynamo.State) dynamo.State {
	q, p := x.Split()
	dx := make(dynamo.State, 0, len(x))
	dx = append(dx, f.Velocity(p)...)
	return append(dx, f.Force(q)...)
}
