package integrator

import (
	"fmt"
	"strings"
)

// FlowMap is a one-step method over states of type S.
//
// Step advances y by a step of size h and returns the new state. It may
// update y in place and return it, or return a different value; callers
// must always continue from the returned value. Extra arguments are
// passed through unchanged by [Composite] and [Trajectory].
//
// Step must not keep hidden state between calls beyond parameters that
// stay fixed for the duration of a run.
type FlowMap[S any] interface {
	Step(h float64, y S, args ...any) S
}

// Func adapts an ordinary function to the FlowMap interface.
type Func[S any] func(h float64, y S, args ...any) S

// Step calls f. A nil Func has no step function and panics with
// ErrNotImplemented.
func (f Func[S]) Step(h float64, y S, args ...any) S {
	if f == nil {
		panic(fmt.Errorf("%w: nil Func[%T]", ErrNotImplemented, y))
	}
	return f(h, y, args...)
}

type named[S any] struct {
	name string
	m    FlowMap[S]
}

// Named returns m labelled with name. The label is used when a composite
// containing m is rendered. Naming a composite does not hide its terms:
// Compose and Scale still splice them in, and the label is dropped.
func Named[S any](name string, m FlowMap[S]) FlowMap[S] {
	return &named[S]{name: name, m: m}
}

func (n *named[S]) Step(h float64, y S, args ...any) S {
	return n.m.Step(h, y, args...)
}

func (n *named[S]) String() string { return n.name }

// Label renders m for display: its String method when it has one,
// otherwise its type name without package path or type arguments.
func Label[S any](m FlowMap[S]) string {
	if s, ok := m.(fmt.Stringer); ok {
		return s.String()
	}
	name := strings.TrimLeft(fmt.Sprintf("%T", m), "*")
	name, _, _ = strings.Cut(name, "[")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// isNil reports whether m cannot be stepped: a nil interface, a nil
// composite or a nil Func.
func isNil[S any](m FlowMap[S]) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *Composite[S]:
		return v == nil
	case Func[S]:
		return v == nil
	case *named[S]:
		return v == nil || isNil(v.m)
	}
	return false
}
