// Package integrators provides concrete flow maps over [dynamo.State].
//
// Each type implements integrator.FlowMap[dynamo.State]. Drift and Kick are
// the exact sub-flows of a separable Hamiltonian and are meant to be
// combined with the integrator algebra:
//
//	verlet, _ := integrator.Strang[dynamo.State](integrators.NewDrift(sys), integrators.NewKick(sys))
//
// Drift, Kick, Leapfrog and Dahlquist overwrite their input state. Euler,
// RK4 and Verlet return a new state on every step.
package integrators
