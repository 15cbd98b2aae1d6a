package integrators

import "github.com/san-kum/gni/internal/dynamo"

// rk4Nodes are the stage offsets of the classical tableau; the weights are
// 1/6, 2/6, 2/6, 1/6.
var rk4Nodes = [3]float64{0.5, 0.5, 1}

// RK4 is the classical fourth-order Runge–Kutta method. It keeps its stage
// vectors between steps, so one RK4 must not be stepped concurrently.
type RK4 struct {
	dyn     dynamo.System
	k       [4]dynamo.State
	scratch dynamo.State
}

func NewRK4(dyn dynamo.System) *RK4 {
	return &RK4{dyn: dyn}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.scratch) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.scratch = make(dynamo.State, n)
}

// Step returns a new state; x is left untouched.
func (r *RK4) Step(dt float64, x dynamo.State, _ ...any) dynamo.State {
	r.ensureScratch(len(x))
	k := r.k

	copy(k[0], r.dyn.Derive(x))
	for s, a := range rk4Nodes {
		axpy(r.scratch, x, a*dt, k[s])
		copy(k[s+1], r.dyn.Derive(r.scratch))
	}

	out := make(dynamo.State, len(x))
	w := dt / 6
	for i := range out {
		out[i] = x[i] + w*(k[0][i]+2*k[1][i]+2*k[2][i]+k[3][i])
	}
	return out
}

func (r *RK4) String() string { return "rk4" }

// axpy sets dst = x + a·y.
func axpy(dst, x dynamo.State, a float64, y dynamo.State) {
	for i := range dst {
		dst[i] = x[i] + a*y[i]
	}
}
