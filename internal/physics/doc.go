// Package physics provides the dynamical system models used by the CLI.
//
// Every model implements [dynamo.System]. The conservative ones also
// implement [dynamo.Separable], so they can be integrated by splitting into
// drift and kick flows, and [dynamo.Hamiltonian] for energy diagnostics:
//
//   - [Oscillator]: harmonic oscillator
//   - [Pendulum]: undamped rigid pendulum
//   - [DoubleWell]: bistable quartic potential
//   - [SpringChain]: masses between fixed walls
//   - [Kepler]: planar two-body problem
//   - [Decay]: the linear test equation y' = λy (not separable)
//
// All models implement [dynamo.Configurable] for parameter overrides.
package physics
