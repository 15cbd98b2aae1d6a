package metrics

import (
	"math"

	"github.com/san-kum/gni/internal/dynamo"
)

// Energy is the mean energy over all observed states.
type Energy struct {
	name        string
	ham         dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(ham dynamo.Hamiltonian) *Energy {
	return &Energy{
		name: "energy",
		ham:  ham,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	e.totalEnergy += e.ham.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation of the energy from its
// value at the first observed state.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	ham           dynamo.Hamiltonian
}

func NewEnergyDrift(ham dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		ham:  ham,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := e.ham.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	e.maxDrift = math.Max(e.maxDrift, relative(energy, e.initialEnergy))
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// NormDrift is the largest relative deviation of ‖x‖ from the first
// observed state. For a unit oscillator it measures the radius error.
type NormDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewNormDrift() *NormDrift { return &NormDrift{} }

func (n *NormDrift) Name() string { return "norm_drift" }

func (n *NormDrift) Observe(x dynamo.State, t float64) {
	norm := x.Norm()
	if n.samples == 0 {
		n.initial = norm
	}
	n.samples++
	n.maxDrift = math.Max(n.maxDrift, relative(norm, n.initial))
}

func (n *NormDrift) Value() float64 { return n.maxDrift }

func (n *NormDrift) Reset() {
	n.initial = 0
	n.maxDrift = 0
	n.samples = 0
}

// relative returns |v-ref|/|ref|, or the absolute deviation when ref is 0.
func relative(v, ref float64) float64 {
	if ref == 0 {
		return math.Abs(v)
	}
	return math.Abs(v-ref) / math.Abs(ref)
}
