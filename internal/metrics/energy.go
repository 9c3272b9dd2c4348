package metrics

import (
	"math"

	"github.com/oceanwave/hydrocore/internal/dynamo"
)

// HeaveEnergy tracks the linearized mechanical energy of a single body's
// heave decay: kinetic energy from the added-mass-augmented heave inertia
// plus potential energy from the linear hydrostatic restoring stiffness.
// It expects a two-element state [z, vz] (heave displacement, heave
// velocity), the slice a hostsim heave-decay harness projects out of its
// full rigid-body state before feeding this metric.
type HeaveEnergy struct {
	name        string
	inertia     float64 // mass + A_inf,33
	stiffness   float64 // rho*g*K_33
	samples     int
	totalEnergy float64
}

// NewHeaveEnergy builds a HeaveEnergy metric for a body with the given
// heave inertia (rigid mass plus infinite-frequency added mass) and
// linear restoring stiffness.
func NewHeaveEnergy(inertia, stiffness float64) *HeaveEnergy {
	return &HeaveEnergy{name: "heave_energy", inertia: inertia, stiffness: stiffness}
}

func (e *HeaveEnergy) Name() string { return e.name }

func (e *HeaveEnergy) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(x) < 2 {
		return
	}
	z, vz := x[0], x[1]
	ke := 0.5 * e.inertia * vz * vz
	pe := 0.5 * e.stiffness * z * z
	e.totalEnergy += ke + pe
	e.samples++
}

func (e *HeaveEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *HeaveEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	dyn           dynamo.System
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, u dynamo.Control, t float64) {
	ec, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := ec.Energy(x)

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

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
