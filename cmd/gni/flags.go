package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/gni/internal/config"
)

// buildConfig layers defaults, the preset, the config file and explicitly
// set flags, in that order.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if loaded.Model != model {
			return nil, fmt.Errorf("config %s is for model %s, not %s", configFile, loaded.Model, model)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
		cfg.Recipe = nil
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("sample") {
		cfg.Sample = sample
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("init") {
		cfg.InitState = append([]float64(nil), initState...)
	}
	if flags.Changed("param") {
		parsed, err := parseParams(params)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(parsed))
		}
		for k, v := range parsed {
			cfg.Params[k] = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseParams(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for name, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func componentCaption(model string, idx, dim int) string {
	half := dim / 2
	switch model {
	case "pendulum":
		return []string{"theta (angle)", "p_theta (angular momentum)"}[idx]
	case "decay":
		return "y"
	case "oscillator", "double_well", "kepler", "spring_chain":
		if idx < half {
			return fmt.Sprintf("q%d vs time", idx)
		}
		return fmt.Sprintf("p%d vs time", idx-half)
	}
	return fmt.Sprintf("x%d vs time", idx)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
