package integrator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Term is one member of a composite: a flow map and the coefficient
// multiplying the step size it receives.
type Term[S any] struct {
	Map   FlowMap[S]
	Coeff float64
}

func (t Term[S]) String() string {
	if t.Coeff == 1.0 {
		return Label(t.Map)
	}
	return Label(t.Map) + "**" + strconv.FormatFloat(t.Coeff, 'g', -1, 64)
}

// Composite applies a fixed sequence of flow maps, each with its own step
// size coefficient. The term list is flat and never changes after
// construction.
type Composite[S any] struct {
	terms []Term[S]
}

// New builds a composite from explicit terms. Composite members are
// expanded in place with their coefficients multiplied by the term's
// coefficient, so the result is flat.
func New[S any](terms ...Term[S]) (*Composite[S], error) {
	flat := make([]Term[S], 0, len(terms))
	for i, t := range terms {
		if isNil(t.Map) {
			return nil, fmt.Errorf("%w: term %d has a nil flow map", ErrInvalidOperand, i)
		}
		if err := checkCoeff(t.Coeff); err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
		flat = appendScaled(flat, t.Map, t.Coeff)
	}
	return &Composite[S]{terms: flat}, nil
}

// Compose returns the method that applies first and then each of rest, in
// argument order, at every step:
//
//	Compose(a, b).Step(h, y) == b.Step(h, a.Step(h, y))
//
// Composite operands contribute their terms rather than being nested.
func Compose[S any](first FlowMap[S], rest ...FlowMap[S]) (*Composite[S], error) {
	if isNil(first) {
		return nil, fmt.Errorf("%w: operand 0 is not a flow map", ErrInvalidOperand)
	}
	n := termCount(first)
	for i, m := range rest {
		if isNil(m) {
			return nil, fmt.Errorf("%w: operand %d is not a flow map", ErrInvalidOperand, i+1)
		}
		n += termCount(m)
	}

	terms := make([]Term[S], 0, n)
	terms = appendScaled(terms, first, 1.0)
	for _, m := range rest {
		terms = appendScaled(terms, m, 1.0)
	}
	return &Composite[S]{terms: terms}, nil
}

// Scale returns m with its step size multiplied by coeff:
//
//	Scale(m, c).Step(h, y) == m.Step(c*h, y)
//
// For a composite every coefficient is multiplied by coeff.
func Scale[S any](m FlowMap[S], coeff float64) (*Composite[S], error) {
	if isNil(m) {
		return nil, fmt.Errorf("%w: operand is not a flow map", ErrInvalidOperand)
	}
	if err := checkCoeff(coeff); err != nil {
		return nil, err
	}
	return &Composite[S]{terms: appendScaled(make([]Term[S], 0, termCount(m)), m, coeff)}, nil
}

// Then is Compose(c, other).
func (c *Composite[S]) Then(other FlowMap[S]) (*Composite[S], error) {
	return Compose[S](c, other)
}

// Scale is Scale(c, coeff).
func (c *Composite[S]) Scale(coeff float64) (*Composite[S], error) {
	return Scale[S](c, coeff)
}

// Step applies every term in order, the i-th with step size Coeff_i*h,
// feeding each result into the next.
func (c *Composite[S]) Step(h float64, y S, args ...any) S {
	for _, t := range c.terms {
		y = t.Map.Step(t.Coeff*h, y, args...)
	}
	return y
}

// Terms returns a copy of the term list.
func (c *Composite[S]) Terms() []Term[S] {
	out := make([]Term[S], len(c.terms))
	copy(out, c.terms)
	return out
}

// Len returns the number of terms.
func (c *Composite[S]) Len() int { return len(c.terms) }

// Sum returns the sum of the coefficients. For repeated applications of
// one method it is the total step taken relative to the outer step.
func (c *Composite[S]) Sum() float64 {
	var sum float64
	for _, t := range c.terms {
		sum += t.Coeff
	}
	return sum
}

// String joins the term labels with " * ". Terms with a coefficient other
// than 1 render as label**coeff.
func (c *Composite[S]) String() string {
	if c == nil {
		return "<nil>"
	}
	parts := make([]string, len(c.terms))
	for i, t := range c.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " * ")
}

func checkCoeff(coeff float64) error {
	if math.IsNaN(coeff) || math.IsInf(coeff, 0) {
		return fmt.Errorf("%w: coefficient %v is not a finite real", ErrInvalidOperand, coeff)
	}
	return nil
}

// asComposite unwraps m to a composite, looking through Named.
func asComposite[S any](m FlowMap[S]) (*Composite[S], bool) {
	switch v := m.(type) {
	case *Composite[S]:
		return v, true
	case *named[S]:
		return asComposite(v.m)
	}
	return nil, false
}

func termCount[S any](m FlowMap[S]) int {
	if c, ok := asComposite(m); ok {
		return len(c.terms)
	}
	return 1
}

// appendScaled appends the terms of m, multiplied by coeff, to dst.
func appendScaled[S any](dst []Term[S], m FlowMap[S], coeff float64) []Term[S] {
	c, ok := asComposite(m)
	if !ok {
		return append(dst, Term[S]{Map: m, Coeff: coeff})
	}
	if coeff == 1.0 {
		return append(dst, c.terms...)
	}
	for _, t := range c.terms {
		dst = append(dst, Term[S]{Map: t.Map, Coeff: coeff * t.Coeff})
	}
	return dst
}
