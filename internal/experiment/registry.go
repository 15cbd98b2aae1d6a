package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/gni/integrator"
	"github.com/san-kum/gni/internal/config"
	"github.com/san-kum/gni/internal/dynamo"
	"github.com/san-kum/gni/internal/integrators"
	"github.com/san-kum/gni/internal/metrics"
	"github.com/san-kum/gni/internal/physics"
)

var (
	// ErrUnknownModel is returned for a model name the registry does not know.
	ErrUnknownModel = errors.New("experiment: unknown model")
	// ErrUnknownMethod is returned for a method name the registry does not know.
	ErrUnknownMethod = errors.New("experiment: unknown method")
	// ErrIncompatible is returned when a method cannot drive the chosen model.
	ErrIncompatible = errors.New("experiment: method does not apply to model")
)

type (
	// Method is a flow map over vector states.
	Method = integrator.FlowMap[dynamo.State]

	modelFactory  func(size int) dynamo.System
	methodFactory func(r *Registry, sys dynamo.System) (Method, error)
)

type methodEntry struct {
	build       methodFactory
	description string
}

// MethodInfo describes a registered method.
type MethodInfo struct {
	Name        string
	Description string
}

// Registry maps model and method names to factories.
type Registry struct {
	models  map[string]modelFactory
	methods map[string]methodEntry
}

// NewRegistry returns a registry holding every built-in model and method.
func NewRegistry() *Registry {
	r := &Registry{
		models:  make(map[string]modelFactory),
		methods: make(map[string]methodEntry),
	}

	r.models["oscillator"] = func(int) dynamo.System { return physics.NewOscillator() }
	r.models["pendulum"] = func(int) dynamo.System { return physics.NewPendulum() }
	r.models["double_well"] = func(int) dynamo.System { return physics.NewDoubleWell() }
	r.models["kepler"] = func(int) dynamo.System { return physics.NewKepler() }
	r.models["decay"] = func(int) dynamo.System { return physics.NewDecay() }
	r.models["spring_chain"] = func(n int) dynamo.System {
		if n <= 0 {
			n = config.DefaultSize
		}
		return physics.NewSpringChain(n)
	}

	r.methods["euler"] = methodEntry{
		description: "explicit Euler",
		build: func(_ *Registry, sys dynamo.System) (Method, error) {
			return integrators.NewEuler(sys), nil
		},
	}
	r.methods["rk4"] = methodEntry{
		description: "classical Runge-Kutta, order 4",
		build: func(_ *Registry, sys dynamo.System) (Method, error) {
			return integrators.NewRK4(sys), nil
		},
	}
	r.methods["dahlquist"] = methodEntry{
		description: "explicit Euler for y' = λy, in place",
		build: func(_ *Registry, sys dynamo.System) (Method, error) {
			d, ok := sys.(*physics.Decay)
			if !ok {
				return nil, fmt.Errorf("%w: dahlquist needs the decay model, got %T", ErrIncompatible, sys)
			}
			return integrators.NewDahlquist(d.Lambda), nil
		},
	}
	r.methods["drift"] = methodEntry{
		description: "kinetic flow q += h ∂T/∂p",
		build: func(_ *Registry, sys dynamo.System) (Method, error) {
			s, err := separable(sys)
			if err != nil {
				return nil, err
			}
			return integrators.NewDrift(s), nil
		},
	}
	r.methods["kick"] = methodEntry{
		description: "potential flow p += h F(q)",
		build: func(_ *Registry, sys dynamo.System) (Method, error) {
			s, err := separable(sys)
			if err != nil {
				return nil, err
			}
			return integrators.NewKick(s), nil
		},
	}
	r.methods["leapfrog"] = methodEntry{
		description: "Störmer-Verlet written as one method",
		build: func(_ *Registry, sys dynamo.System) (Method, error) {
			s, err := separable(sys)
			if err != nil {
				return nil, err
			}
			return integrators.NewLeapfrog(s), nil
		},
	}
	r.methods["velocity_verlet"] = methodEntry{
		description: "velocity Verlet (kick-drift-kick) written as one method",
		build: func(_ *Registry, sys dynamo.System) (Method, error) {
			s, err := separable(sys)
			if err != nil {
				return nil, err
			}
			return integrators.NewVerlet(s), nil
		},
	}
	r.methods["verlet"] = methodEntry{
		description: "Strang splitting drift/kick, order 2",
		build:       strang("drift", "kick"),
	}
	r.methods["verlet_kd"] = methodEntry{
		description: "Strang splitting kick/drift, order 2",
		build:       strang("kick", "drift"),
	}
	r.methods["triple_jump"] = methodEntry{
		description: "triple jump of verlet, order 4",
		build:       tripleJump("verlet", 2),
	}
	r.methods["suzuki"] = methodEntry{
		description: "triple jump of triple_jump, order 6",
		build:       tripleJump("triple_jump", 4),
	}

	return r
}

func strang(a, b string) methodFactory {
	return func(r *Registry, sys dynamo.System) (Method, error) {
		ma, err := r.GetMethod(a, sys)
		if err != nil {
			return nil, err
		}
		mb, err := r.GetMethod(b, sys)
		if err != nil {
			return nil, err
		}
		c, err := integrator.Strang(ma, mb)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func tripleJump(base string, order int) methodFactory {
	return func(r *Registry, sys dynamo.System) (Method, error) {
		m, err := r.GetMethod(base, sys)
		if err != nil {
			return nil, err
		}
		c, err := integrator.TripleJumpOrder(m, order)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func separable(sys dynamo.System) (dynamo.Separable, error) {
	s, ok := sys.(dynamo.Separable)
	if !ok {
		return nil, fmt.Errorf("%w: %T", dynamo.ErrNotSeparable, sys)
	}
	return s, nil
}

// GetModel returns a fresh instance of the named model. size is only used
// by models with a variable number of bodies.
func (r *Registry) GetModel(name string, size int) (dynamo.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return fn(size), nil
}

// GetMethod builds the named method for sys.
func (r *Registry) GetMethod(name string, sys dynamo.System) (Method, error) {
	entry, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	m, err := entry.build(r, sys)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", name, err)
	}
	return m, nil
}

// BuildRecipe composes the recipe terms in order, scaling each method by
// its coefficient.
func (r *Registry) BuildRecipe(recipe []config.TermConfig, sys dynamo.System) (*integrator.Composite[dynamo.State], error) {
	if len(recipe) == 0 {
		return nil, fmt.Errorf("%w: empty recipe", integrator.ErrInvalidOperand)
	}
	terms := make([]integrator.Term[dynamo.State], 0, len(recipe))
	for _, t := range recipe {
		m, err := r.GetMethod(t.Method, sys)
		if err != nil {
			return nil, err
		}
		terms = append(terms, integrator.Term[dynamo.State]{Map: m, Coeff: t.Coefficient()})
	}
	return integrator.New(terms...)
}

// Build returns the method a config asks for: its recipe when it has one,
// otherwise the named method.
func (r *Registry) Build(cfg *config.Config, sys dynamo.System) (Method, error) {
	if len(cfg.Recipe) > 0 {
		c, err := r.BuildRecipe(cfg.Recipe, sys)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return r.GetMethod(cfg.Method, sys)
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListMethods() []MethodInfo {
	infos := make([]MethodInfo, 0, len(r.methods))
	for name, entry := range r.methods {
		infos = append(infos, MethodInfo{Name: name, Description: entry.description})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// DefaultMetrics returns the metrics that apply to sys.
func (r *Registry) DefaultMetrics(sys dynamo.System) []dynamo.Metric {
	ms := []dynamo.Metric{
		metrics.NewNormDrift(),
		metrics.NewStability(1e6),
	}
	if ham, ok := sys.(dynamo.Hamiltonian); ok {
		ms = append(ms, metrics.NewEnergy(ham), metrics.NewEnergyDrift(ham))
	}
	return ms
}
