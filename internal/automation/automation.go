package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gni/internal/config"
	"github.com/san-kum/gni/internal/experiment"
	"github.com/san-kum/gni/internal/storage"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one run of a scenario. Fields left empty take the
// config defaults.
type ScenarioRun struct {
	config.Config `yaml:",inline"`
	Save          bool `yaml:"save"`
}

// ScenarioResult pairs a finished run with its stored id, if saved.
type ScenarioResult struct {
	Result *experiment.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", config.ErrInvalidConfig, path, err)
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no runs", config.ErrInvalidConfig, scenario.Name)
	}

	for i := range scenario.Runs {
		applyDefaults(&scenario.Runs[i].Config)
		if err := scenario.Runs[i].Validate(); err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}
	}

	return &scenario, nil
}

func applyDefaults(c *config.Config) {
	if c.Method == "" && len(c.Recipe) == 0 {
		c.Method = config.DefaultMethod
	}
	if c.Dt == 0 {
		c.Dt = config.DefaultDt
	}
	if c.Duration == 0 {
		c.Duration = config.DefaultDuration
	}
	if c.Sample == 0 {
		c.Sample = config.DefaultSample
	}
	if c.Size == 0 {
		c.Size = config.DefaultSize
	}
}

// RunScenario executes the runs in order, saving those marked save to st.
// It stops at the first failing run and returns the results so far.
func RunScenario(ctx context.Context, scenario *Scenario, reg *experiment.Registry, st *storage.Store, logger *slog.Logger) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, 0, len(scenario.Runs))
	log := logger.With("scenario", scenario.Name)

	for i := range scenario.Runs {
		run := &scenario.Runs[i]
		log.Info("scenario step", "step", i+1, "of", len(scenario.Runs), "model", run.Model, "method", run.MethodLabel())

		exp := experiment.New(&run.Config, experiment.WithLogger(logger))
		if err := exp.Setup(reg); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := ScenarioResult{Result: result}
		if run.Save && st != nil {
			if sr.RunID, err = st.Save(&run.Config, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
