package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/san-kum/gni/integrator"
	"github.com/san-kum/gni/internal/config"
	"github.com/san-kum/gni/internal/dynamo"
)

// ErrNotSetup is returned by Run before a successful Setup.
var ErrNotSetup = errors.New("experiment: not set up")

type defaultStater interface {
	DefaultState() dynamo.State
}

// Result holds the sampled trajectory and final metric values of one run.
type Result struct {
	Model       string
	Method      string
	Composition string
	Times       []float64
	States      []dynamo.State
	Metrics     map[string]float64
	Steps       int
	Elapsed     time.Duration
}

// Final returns the last recorded state.
func (r *Result) Final() dynamo.State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// MetricNames returns the metric names in sorted order.
func (r *Result) MetricNames() []string {
	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Experiment is one configured run of a method on a model.
type Experiment struct {
	cfg     *config.Config
	sys     dynamo.System
	method  Method
	x0      dynamo.State
	metrics []dynamo.Metric
	logger  *slog.Logger
}

// Option configures an Experiment.
type Option func(*Experiment)

// WithLogger sets the logger used for run progress.
func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

// WithMetrics replaces the default metrics of the model.
func WithMetrics(ms ...dynamo.Metric) Option {
	return func(e *Experiment) { e.metrics = append(e.metrics, ms...) }
}

// New returns an experiment for cfg. Call Setup before Run.
func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Setup validates the config, builds the model and method from reg and
// prepares the initial state. Default metrics are attached unless metrics
// were given as options.
func (e *Experiment) Setup(reg *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	sys, err := reg.GetModel(e.cfg.Model, e.cfg.Size)
	if err != nil {
		return err
	}
	if len(e.cfg.Params) > 0 {
		c, ok := sys.(dynamo.Configurable)
		if !ok {
			return fmt.Errorf("model %s has no parameters", e.cfg.Model)
		}
		for name, v := range e.cfg.Params {
			if err := c.SetParam(name, v); err != nil {
				return fmt.Errorf("model %s: %w", e.cfg.Model, err)
			}
		}
	}

	x0 := dynamo.State(e.cfg.InitState).Clone()
	if len(x0) == 0 {
		ds, ok := sys.(defaultStater)
		if !ok {
			return fmt.Errorf("model %s needs an initial state", e.cfg.Model)
		}
		x0 = ds.DefaultState()
	}
	if err := dynamo.CheckDim(sys, x0); err != nil {
		return err
	}

	method, err := reg.Build(e.cfg, sys)
	if err != nil {
		return err
	}

	e.sys = sys
	e.method = method
	e.x0 = x0
	if len(e.metrics) == 0 {
		e.metrics = reg.DefaultMetrics(sys)
	}
	return nil
}

func (e *Experiment) System() dynamo.System { return e.sys }

func (e *Experiment) Method() Method { return e.method }

// Run steps the method over the configured duration. Every sample-th state
// is copied into the result, as is the final one. A non-finite state aborts
// the run with a *dynamo.SimulationError; cancelling ctx stops stepping.
// The partial result is returned alongside either error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.method == nil {
		return nil, ErrNotSetup
	}

	x := e.x0.Clone()
	traj, err := integrator.Run(e.method, e.cfg.Duration, e.cfg.Dt, x)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Model:       e.cfg.Model,
		Method:      e.cfg.MethodLabel(),
		Composition: integrator.Label(e.method),
		Metrics:     make(map[string]float64),
	}
	capacity := traj.Len()/e.cfg.Sample + 2
	res.Times = make([]float64, 0, capacity)
	res.States = make([]dynamo.State, 0, capacity)

	for _, m := range e.metrics {
		m.Reset()
		m.Observe(x, 0)
	}
	res.Times = append(res.Times, 0)
	res.States = append(res.States, x.Clone())

	log := e.logger.With("model", res.Model, "method", res.Method)
	log.Info("run started", "steps", traj.Len(), "dt", e.cfg.Dt, "composition", res.Composition)
	start := time.Now()

	finish := func() {
		res.Steps = traj.Index()
		res.Elapsed = time.Since(start)
		for _, m := range e.metrics {
			res.Metrics[m.Name()] = m.Value()
		}
	}

	for {
		select {
		case <-ctx.Done():
			finish()
			log.Warn("run cancelled", "step", traj.Index())
			return res, ctx.Err()
		default:
		}

		if !traj.Next() {
			break
		}
		x = traj.State()
		t := traj.Time()

		if !x.IsValid() {
			finish()
			simErr := &dynamo.SimulationError{
				Step:    traj.Index(),
				Time:    t,
				State:   x.Clone(),
				Wrapped: dynamo.ErrInvalidState,
			}
			log.Error("run aborted", "err", simErr)
			return res, simErr
		}

		for _, m := range e.metrics {
			m.Observe(x, t)
		}
		if traj.Index()%e.cfg.Sample == 0 || traj.Done() {
			res.Times = append(res.Times, t)
			res.States = append(res.States, x.Clone())
		}
	}

	finish()
	log.Info("run completed", "steps", res.Steps, "elapsed", res.Elapsed)
	return res, nil
}
