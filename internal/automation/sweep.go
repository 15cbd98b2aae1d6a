package automation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gni/internal/config"
	"github.com/san-kum/gni/internal/experiment"
)

// ErrTooFewPoints is returned when a fit has fewer than two usable points.
var ErrTooFewPoints = errors.New("automation: need at least two positive measurements")

// StepSweep runs one configuration at several step sizes.
type StepSweep struct {
	Base   *config.Config
	Dts    []float64
	Metric string
}

// SweepPoint is the metric measured at one step size.
type SweepPoint struct {
	Dt    float64
	Value float64
	Err   error
}

// Run measures every step size concurrently. A failing run is recorded in
// its point and does not stop the sweep.
func (s *StepSweep) Run(ctx context.Context, ens *experiment.Ensemble) ([]SweepPoint, error) {
	if len(s.Dts) == 0 {
		return nil, fmt.Errorf("%w: no step sizes", config.ErrInvalidConfig)
	}

	cfgs := make([]*config.Config, len(s.Dts))
	for i, dt := range s.Dts {
		cfg := *s.Base
		cfg.Dt = dt
		cfgs[i] = &cfg
	}

	results, errs := ens.RunEach(ctx, cfgs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(s.Dts))
	for i, dt := range s.Dts {
		points[i] = SweepPoint{Dt: dt, Value: math.NaN()}
		if errs[i] != nil {
			points[i].Err = fmt.Errorf("dt=%g: %w", dt, errs[i])
			continue
		}
		res := results[i]
		v, ok := res.Metrics[s.Metric]
		if !ok {
			points[i].Err = fmt.Errorf("dt=%g: no metric %s", dt, s.Metric)
			continue
		}
		points[i].Value = v
	}
	return points, nil
}

// FitOrder returns the least squares slope of log(value) against log(dt),
// the observed order of the error. Points with errors or non-positive
// values are skipped.
func FitOrder(points []SweepPoint) (float64, error) {
	var xs, ys []float64
	for _, p := range points {
		if p.Err != nil || !(p.Value > 0) || !(p.Dt > 0) || math.IsInf(p.Value, 0) {
			continue
		}
		xs = append(xs, math.Log(p.Dt))
		ys = append(ys, math.Log(p.Value))
	}
	if len(xs) < 2 {
		return 0, ErrTooFewPoints
	}

	n := float64(len(xs))
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n

	var sxy, sxx float64
	for i := range xs {
		sxy += (xs[i] - mx) * (ys[i] - my)
		sxx += (xs[i] - mx) * (xs[i] - mx)
	}
	if sxx == 0 {
		return 0, ErrTooFewPoints
	}
	return sxy / sxx, nil
}

// Halving returns n step sizes starting at dt0, each half the previous.
func Halving(dt0 float64, n int) []float64 {
	dts := make([]float64, n)
	for i := range dts {
		dts[i] = dt0 / math.Pow(2, float64(i))
	}
	return dts
}
