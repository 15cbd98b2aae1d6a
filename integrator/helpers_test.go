package integrator_test

import (
	"github.com/san-kum/gni/integrator"
)

// phase is a one-dimensional oscillator state updated in place.
type phase struct {
	q, p float64
}

// drift advances the position: q += h p.
type drift struct{}

func (drift) Step(h float64, y *phase, _ ...any) *phase {
	y.q += h * y.p
	return y
}

func (drift) String() string { return "A" }

// kick advances the momentum of a unit oscillator: p -= h q.
type kick struct{}

func (kick) Step(h float64, y *phase, _ ...any) *phase {
	y.p -= h * y.q
	return y
}

func (kick) String() string { return "B" }

// leapfrog is Störmer–Verlet written out by hand.
type leapfrog struct{}

func (leapfrog) Step(h float64, y *phase, _ ...any) *phase {
	half := h / 2.0
	y.q += half * y.p
	y.p -= h * y.q
	y.q += half * y.p
	return y
}

// counting records every step size it receives.
type counting struct {
	name  string
	steps []float64
}

func (c *counting) Step(h float64, y []string, _ ...any) []string {
	c.steps = append(c.steps, h)
	return append(y, c.name)
}

func (c *counting) String() string { return c.name }

func dahlquist(lambda complex128) integrator.Func[complex128] {
	return func(h float64, y complex128, _ ...any) complex128 {
		return y * (1 + complex(h, 0)*lambda)
	}
}

func decay(lambda float64) integrator.Func[float64] {
	return func(h float64, y float64, _ ...any) float64 {
		return y * (1 + h*lambda)
	}
}

func identity[S any]() integrator.Func[S] {
	return func(_ float64, y S, _ ...any) S { return y }
}
