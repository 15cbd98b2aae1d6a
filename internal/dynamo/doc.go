// Package dynamo provides the vector state and system interfaces shared by
// the models, integrators and metrics:
//
//   - [State]: phase-space vector, laid out as [q..., p...] for separable systems
//   - [System]: autonomous ODE dx/dt = f(x)
//   - [Separable]: H(q, p) = T(p) + V(q), the input of splitting methods
//   - [Hamiltonian]: energy of a state
//   - [Metric]: per-step trajectory summary
//
// States are plain slices. Integrators in this module update them in place
// where they can, so code that keeps a state across steps must Clone it.
package dynamo
