package integrator

import (
	"fmt"
	"math"
)

// Strang returns the symmetric splitting a^½ ∘ b ∘ a^½. With a drift and a
// kick this is the Störmer–Verlet method.
func Strang[S any](a, b FlowMap[S]) (*Composite[S], error) {
	half, err := Scale(a, 0.5)
	if err != nil {
		return nil, err
	}
	return Compose[S](half, b, half)
}

// TripleJump returns m^γ1 ∘ m^γ0 ∘ m^γ1 with γ1 = 1/(2-∛2) and
// γ0 = -∛2/(2-∛2). Applied to a symmetric method of order 2 it yields a
// symmetric method of order 4.
func TripleJump[S any](m FlowMap[S]) (*Composite[S], error) {
	return TripleJumpOrder(m, 2)
}

// TripleJumpOrder lifts a symmetric method of even order p to order p+2.
// The coefficients satisfy 2γ1 + γ0 = 1 and 2γ1^(p+1) + γ0^(p+1) = 0.
func TripleJumpOrder[S any](m FlowMap[S], order int) (*Composite[S], error) {
	if order < 2 || order%2 != 0 {
		return nil, fmt.Errorf("%w: triple jump needs a positive even order, got %d", ErrInvalidOperand, order)
	}
	root := math.Pow(2.0, 1.0/float64(order+1))
	outer, err := Scale(m, 1.0/(2.0-root))
	if err != nil {
		return nil, err
	}
	middle, err := Scale(m, -root/(2.0-root))
	if err != nil {
		return nil, err
	}
	return Compose[S](outer, middle, outer)
}

// Repeat returns n substeps of m, each of size h/n.
func Repeat[S any](m FlowMap[S], n int) (*Composite[S], error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: repeat count %d", ErrInvalidOperand, n)
	}
	sub, err := Scale(m, 1.0/float64(n))
	if err != nil {
		return nil, err
	}
	rest := make([]FlowMap[S], n-1)
	for i := range rest {
		rest[i] = sub
	}
	return Compose[S](sub, rest...)
}
