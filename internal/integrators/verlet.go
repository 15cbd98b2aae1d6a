package integrators

import "github.com/san-kum/gni/internal/dynamo"

// Drift is the exact flow of the kinetic part, q += h ∂T/∂p. It updates
// the state in place.
type Drift struct {
	dyn dynamo.Separable
}

func NewDrift(dyn dynamo.Separable) *Drift {
	return &Drift{dyn: dyn}
}

func (d *Drift) Step(dt float64, x dynamo.State, _ ...any) dynamo.State {
	q, p := x.Split()
	v := d.dyn.Velocity(p)
	for i := range q {
		q[i] += dt * v[i]
	}
	return x
}

func (d *Drift) String() string { return "drift" }

// Kick is the exact flow of the potential part, p += h F(q). It updates
// the state in place.
type Kick struct {
	dyn dynamo.Separable
}

func NewKick(dyn dynamo.Separable) *Kick {
	return &Kick{dyn: dyn}
}

func (k *Kick) Step(dt float64, x dynamo.State, _ ...any) dynamo.State {
	q, p := x.Split()
	f := k.dyn.Force(q)
	for i := range p {
		p[i] += dt * f[i]
	}
	return x
}

func (k *Kick) String() string { return "kick" }

// Leapfrog is Störmer–Verlet in drift-kick-drift form, written out as a
// single method.
type Leapfrog struct {
	dyn dynamo.Separable
}

func NewLeapfrog(dyn dynamo.Separable) *Leapfrog {
	return &Leapfrog{dyn: dyn}
}

func (l *Leapfrog) Step(dt float64, x dynamo.State, _ ...any) dynamo.State {
	q, p := x.Split()
	halfDt := dt / 2.0

	v := l.dyn.Velocity(p)
	for i := range q {
		q[i] += halfDt * v[i]
	}

	f := l.dyn.Force(q)
	for i := range p {
		p[i] += dt * f[i]
	}

	v = l.dyn.Velocity(p)
	for i := range q {
		q[i] += halfDt * v[i]
	}

	return x
}

func (l *Leapfrog) String() string { return "leapfrog" }

// Verlet is velocity Verlet, the kick-drift-kick form of Störmer–Verlet.
// Unlike Leapfrog it returns a fresh state.
type Verlet struct {
	dyn dynamo.Separable
}

// NewVerlet returns velocity Verlet for dyn.
func NewVerlet(dyn dynamo.Separable) *Verlet {
	return &Verlet{dyn: dyn}
}

func (v *Verlet) Step(dt float64, x dynamo.State, _ ...any) dynamo.State {
	result := x.Clone()
	q, p := result.Split()
	halfDt := 0.5 * dt

	f := v.dyn.Force(q)
	for i := range p {
		p[i] += halfDt * f[i]
	}

	vel := v.dyn.Velocity(p)
	for i := range q {
		q[i] += dt * vel[i]
	}

	f = v.dyn.Force(q)
	for i := range p {
		p[i] += halfDt * f[i]
	}

	return result
}

func (v *Verlet) String() string { return "velocity_verlet" }
