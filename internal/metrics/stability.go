package metrics

import (
	"math"
	"slices"

	"github.com/san-kum/gni/internal/dynamo"
)

// Stability is the fraction of observed states inside the box |xᵢ| <= Bound.
// An explicit method run past its stability limit shows up here long before
// its states overflow.
type Stability struct {
	Bound float64

	inside  int
	total   int
	escaped float64
}

func NewStability(bound float64) *Stability {
	return &Stability{Bound: bound, escaped: math.NaN()}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.total++
	outside := slices.ContainsFunc(x, func(v float64) bool { return math.Abs(v) > s.Bound })
	if !outside {
		s.inside++
		return
	}
	if math.IsNaN(s.escaped) {
		s.escaped = t
	}
}

func (s *Stability) Value() float64 {
	if s.total == 0 {
		return 1.0
	}
	return float64(s.inside) / float64(s.total)
}

// Escaped returns the time of the first state outside the box.
func (s *Stability) Escaped() (float64, bool) {
	return s.escaped, !math.IsNaN(s.escaped)
}

func (s *Stability) Reset() {
	s.inside = 0
	s.total = 0
	s.escaped = math.NaN()
}
