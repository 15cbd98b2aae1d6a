package experiment

import (
	"context"
	"log/slog"
	"sync"

	"github.com/san-kum/gni/internal/config"
)

// Ensemble runs several configurations concurrently. Every run gets its own
// model and method instances, so no state is shared between goroutines.
type Ensemble struct {
	reg    *Registry
	logger *slog.Logger
}

// NewEnsemble returns an ensemble over reg. A nil logger means slog.Default.
func NewEnsemble(reg *Registry, logger *slog.Logger) *Ensemble {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ensemble{reg: reg, logger: logger}
}

// Run returns one result per config, in the same order. The first error in
// config order is returned; results of runs that succeeded are kept.
func (e *Ensemble) Run(ctx context.Context, cfgs []*config.Config) ([]*Result, error) {
	results, errs := e.RunEach(ctx, cfgs)
	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// RunEach is Run with one error per config. A nil result means Setup
// failed; a run that aborted keeps its partial result next to its error.
func (e *Ensemble) RunEach(ctx context.Context, cfgs []*config.Config) ([]*Result, []error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, cfg *config.Config) {
			defer wg.Done()

			exp := New(cfg, WithLogger(e.logger))
			if err := exp.Setup(e.reg); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i, cfg)
	}

	wg.Wait()
	return results, errs
}
