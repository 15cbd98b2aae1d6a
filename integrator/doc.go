// Package integrator provides a small algebra for building and running
// time-stepping methods for systems evolving under a discrete flow map.
//
// A flow map advances a state by one step of size h:
//
//	y' = Φ(h, y)
//
// Every stepping method implements [FlowMap]. Methods are values: they can
// be scaled, which stretches the step size they see, and composed, which
// chains them into a single method. The result is a [Composite] that is
// itself a [FlowMap], so splitting schemes are built purely by combining
// simple pieces:
//
//	half, _ := integrator.Scale(drift, 0.5)
//	verlet, _ := integrator.Compose(half, kick, half)
//	fourth, _ := integrator.TripleJump(verlet)
//
// Composites are always flat. Composing or scaling a composite reuses its
// list of (method, coefficient) terms instead of nesting it, so
// (A∘B)∘C and A∘(B∘C) have identical term lists.
//
// # Running
//
// [Run] turns a flow map into a lazy [Trajectory] of round(T/h) steps. Each
// call to [Trajectory.Next] performs exactly one step:
//
//	traj, err := integrator.Run(verlet, 10.0, 1e-3, x0)
//	if err != nil {
//		return err
//	}
//	for traj.Next() {
//		observe(traj.State())
//	}
//
// # State ownership
//
// The package never allocates, copies or inspects state. A flow map may
// overwrite its input and return it, so a state obtained from a trajectory
// may change on the next step. Copy it first if the value must be kept.
//
// # Thread Safety
//
// Composites are immutable and safe to share. A Trajectory is a single
// pass over caller-owned state and must be consumed from one goroutine.
package integrator
