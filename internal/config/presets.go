package config

import "sort"

func coeff(v float64) *float64 { return &v }

var Presets = map[string]map[string]*Config{
	"oscillator": {
		"verlet": {
			Model: "oscillator", Method: "verlet", Dt: 1e-3, Duration: 1.0, Sample: 1,
			InitState: []float64{1.0, 0.0},
		},
		"long": {
			Model: "oscillator", Method: "verlet", Dt: 0.1, Duration: 1000.0, Sample: 10,
			InitState: []float64{1.0, 0.0},
		},
		"euler": {
			Model: "oscillator", Method: "euler", Dt: 0.01, Duration: 20.0, Sample: 1,
			InitState: []float64{1.0, 0.0},
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Method: "verlet", Dt: 0.01, Duration: 20.0, Sample: 1,
			InitState: []float64{0.2, 0.0},
		},
		"large": {
			Model: "pendulum", Method: "triple_jump", Dt: 0.01, Duration: 20.0, Sample: 1,
			InitState: []float64{2.5, 0.0},
		},
		"spinning": {
			Model: "pendulum", Method: "triple_jump", Dt: 0.01, Duration: 30.0, Sample: 1,
			InitState: []float64{0.1, 8.0},
		},
	},
	"kepler": {
		"orbit": {
			Model: "kepler", Method: "verlet", Dt: 0.01, Duration: 100.0, Sample: 10,
			Params: map[string]float64{"eccentricity": 0.5},
		},
		"eccentric": {
			Model: "kepler", Method: "suzuki", Dt: 0.005, Duration: 50.0, Sample: 10,
			Params: map[string]float64{"eccentricity": 0.9},
		},
	},
	"spring_chain": {
		"wave": {
			Model: "spring_chain", Method: "verlet", Dt: 0.005, Duration: 20.0, Sample: 2, Size: 8,
		},
		"kdk": {
			Model: "spring_chain", Dt: 0.005, Duration: 20.0, Sample: 2, Size: 8,
			Recipe: []TermConfig{
				{Method: "kick", Coeff: coeff(0.5)},
				{Method: "drift"},
				{Method: "kick", Coeff: coeff(0.5)},
			},
		},
	},
	"double_well": {
		"hop": {
			Model: "double_well", Method: "triple_jump", Dt: 0.01, Duration: 30.0, Sample: 1,
			InitState: []float64{1.0, 1.5},
		},
	},
	"decay": {
		"dahlquist": {
			Model: "decay", Method: "dahlquist", Dt: 1e-3, Duration: 1.0, Sample: 1,
			InitState: []float64{1.0},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	c.Recipe = append([]TermConfig(nil), cfg.Recipe...)
	c.InitState = append([]float64(nil), cfg.InitState...)
	if cfg.Params != nil {
		c.Params = make(map[string]float64, len(cfg.Params))
		for k, v := range cfg.Params {
			c.Params[k] = v
		}
	}
	return &c
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
