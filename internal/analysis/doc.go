// Package analysis inspects recorded trajectories:
//
//   - [NewPhasePortrait]: 2D projection of phase space, rendered as ASCII
//   - [PoincareSection]: states where one component crosses a threshold
//   - [PowerSpectrum] and [DominantFrequency]: oscillation frequency of a
//     component, which exposes the frequency shift of a method
package analysis
