package metrics

import (
	"math"

	"github.com/san-kum/quasar/internal/quasar"
)

// MeanEnergy returns the average specific orbital energy of the swarm using
// the same softened potential the integrator feels.
func MeanEnergy(v quasar.View, a quasar.Attractor, softeningR2 float32) float64 {
	if v.Len() == 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < v.Len(); i++ {
		p := v.At(i)
		ke := 0.5 * float64(p.Velocity.Len2())
		pe := float64(a.Potential(p.Position, softeningR2))
		total += ke + pe
	}
	return total / float64(v.Len())
}

type EnergyDrift struct {
	name          string
	attractor     quasar.Attractor
	softeningR2   float32
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(a quasar.Attractor, softeningR2 float32) *EnergyDrift {
	return &EnergyDrift{
		name:        "energy_drift",
		attractor:   a,
		softeningR2: softeningR2,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(v quasar.View, t float64) {
	energy := MeanEnergy(v, e.attractor, e.softeningR2)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

// Value is the largest relative drift seen since Reset.
func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Current() float64 {
	return e.currentEnergy
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
