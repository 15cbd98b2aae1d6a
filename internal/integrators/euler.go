package integrators

import "github.com/san-kum/gni/internal/dynamo"

// Euler is the explicit Euler method x' = x + h f(x).
type Euler struct {
	dyn dynamo.System
}

func NewEuler(dyn dynamo.System) *Euler {
	return &Euler{dyn: dyn}
}

func (e *Euler) Step(dt float64, x dynamo.State, _ ...any) dynamo.State {
	out := make(dynamo.State, len(x))
	axpy(out, x, dt, e.dyn.Derive(x))
	return out
}

func (e *Euler) String() string { return "euler" }

// Dahlquist steps y' = λy with explicit Euler, in place.
type Dahlquist struct {
	Lambda float64
}

func NewDahlquist(lambda float64) *Dahlquist {
	return &Dahlquist{Lambda: lambda}
}

func (d *Dahlquist) Step(dt float64, x dynamo.State, _ ...any) dynamo.State {
	f := 1.0 + dt*d.Lambda
	for i := range x {
		x[i] *= f
	}
	return x
}

func (d *Dahlquist) String() string { return "dahlquist" }
