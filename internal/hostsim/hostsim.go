// Package hostsim plays the minimal role of "a host" for the
// hydrodynamic force engine: it holds every body's state in one flat
// dynamo.State (per body: world position, orientation as Euler-123
// angles, and six-component velocity),
// a constant rigid-body mass diagonal, and wires HydroEngine.Step plus
// AddedMassContributor into a dynamo.System that internal/integrators can
// step forward. It does not attempt to be a general constrained
// multibody solver: no joints, no contact, one flat state vector.
package hostsim

import (
	"fmt"

	"github.com/oceanwave/hydrocore/internal/addedmass"
	"github.com/oceanwave/hydrocore/internal/config"
	"github.com/oceanwave/hydrocore/internal/dynamo"
	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"github.com/oceanwave/hydrocore/internal/hydroengine"
	"github.com/oceanwave/hydrocore/internal/integrators"
	"github.com/oceanwave/hydrocore/internal/metrics"
	"github.com/oceanwave/hydrocore/internal/wavemodel"
	"gonum.org/v1/gonum/mat"
)

// perBody is the width of one body's slice of the flat state vector:
// position (3) + Euler-123 orientation (3) + velocity (6).
const perBody = 12

// Host wires a HydroEngine and AddedMassContributor into a dynamo.System
// over the flat rigid-body state.
type Host struct {
	db        *hydrodb.DB
	engine    *hydroengine.Engine
	added     *addedmass.Contributor
	numBodies int
	dofs      int
	massDiag  []float64
}

// New builds a Host from a run configuration: loads the hydrodynamic
// database, constructs the configured wave model, and assembles the
// rigid-body mass diagonal from cfg.Bodies.
func New(cfg *config.Config) (*Host, error) {
	numBodies := cfg.NumBodies()
	db, err := hydrodb.Load(cfg.HydroDBPath, numBodies)
	if err != nil {
		return nil, err
	}

	wave, err := buildWave(cfg, db, numBodies)
	if err != nil {
		return nil, err
	}

	engine := hydroengine.New(db, numBodies, wave, cfg.Gravity)

	massDiag := make([]float64, 6*numBodies)
	for b, body := range cfg.Bodies {
		for i := 0; i < 6; i++ {
			massDiag[6*b+i] = body.Mass
		}
	}

	return &Host{
		db:        db,
		engine:    engine,
		added:     engine.AddedMass(),
		numBodies: numBodies,
		dofs:      6 * numBodies,
		massDiag:  massDiag,
	}, nil
}

func buildWave(cfg *config.Config, db *hydrodb.DB, numBodies int) (wavemodel.Model, error) {
	switch cfg.WaveMode {
	case config.ModeRegular:
		return wavemodel.NewRegular(db, numBodies, cfg.Regular.Amplitude, cfg.Regular.Omega)
	case config.ModeIrregular:
		spec := wavemodel.SpectrumRange{
			FMin: cfg.Irregular.SpectrumMin,
			FMax: cfg.Irregular.SpectrumMax,
			NF:   cfg.Irregular.SpectrumN,
		}
		params := wavemodel.IrregularParams{
			Hs:          cfg.Irregular.Hs,
			Tp:          cfg.Irregular.Tp,
			Seed:        cfg.Irregular.Seed,
			TRamp:       cfg.Irregular.RampDuration,
			SimDuration: cfg.Duration,
			SimDt:       cfg.Dt,
			Spectrum:    spec,
		}
		return wavemodel.NewIrregular(db, numBodies, params)
	default:
		return wavemodel.NewStill(numBodies * 6), nil
	}
}

func (h *Host) StateDim() int   { return perBody * h.numBodies }
func (h *Host) ControlDim() int { return 0 }

// BlockWidth reports the per-body state block width, satisfying
// dynamo.BlockStructured so Verlet/Leapfrog split each body's own
// position/velocity halves instead of the whole multi-body vector's.
func (h *Host) BlockWidth() int { return perBody }

// Engine exposes the underlying force orchestrator, e.g. for a live
// monitor that wants the last computed force breakdown.
func (h *Host) Engine() *hydroengine.Engine { return h.engine }

func (h *Host) bodyStates(x dynamo.State) []hydroengine.BodyState {
	states := make([]hydroengine.BodyState, h.numBodies)
	for b := 0; b < h.numBodies; b++ {
		off := b * perBody
		var st hydroengine.BodyState
		copy(st.Pos[:], x[off:off+3])
		copy(st.Euler[:], x[off+3:off+6])
		copy(st.Velocity[:], x[off+6:off+12])
		states[b] = st
	}
	return states
}

// Derive evaluates the rigid-body equations of motion: body velocity
// feeds the position/orientation kinematics directly (a small-angle
// Euler-rate approximation, no attitude-singularity handling — adequate
// for the decay and RAO demo scenarios, not a general attitude
// integrator), and (M_rigid + M_Ainf) a = F_hydro gives acceleration.
//
// engine.Step and SolveVec only fail on programmer errors (a body/dof
// index bug, or a singular mass matrix from a misconfigured body) rather
// than on any condition a caller can recover from mid-integration, so
// dynamo.System.Derive having no error return leaves panic as the only
// way to surface them instead of silently returning a zero derivative.
func (h *Host) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	states := h.bodyStates(x)

	force, err := h.engine.Step(t, states)
	if err != nil {
		panic(err)
	}

	total := mat.NewDense(h.dofs, h.dofs, nil)
	for i := 0; i < h.dofs; i++ {
		total.Set(i, i, h.massDiag[i])
	}
	total.Add(total, h.added.Matrix())

	var acc mat.VecDense
	rhs := mat.NewVecDense(h.dofs, force)
	if err := acc.SolveVec(total, rhs); err != nil {
		panic(fmt.Errorf("hostsim: singular mass matrix: %w", err))
	}

	dx := make(dynamo.State, len(x))
	for b := 0; b < h.numBodies; b++ {
		off := b * perBody
		copy(dx[off:off+6], x[off+6:off+12])
		for i := 0; i < 6; i++ {
			dx[off+6+i] = acc.AtVec(6*b + i)
		}
	}
	return dx
}

// Energy reports an approximate mechanical energy for the current state:
// kinetic energy from the added-mass-augmented mass matrix plus heave
// potential energy from each body's linear restoring stiffness.
// Off-diagonal and non-heave restoring terms are ignored, so this is a
// diagnostic drift estimate for metrics.EnergyDrift, not an exact
// Hamiltonian for a general multi-DOF body.
func (h *Host) Energy(x dynamo.State) float64 {
	vel := make([]float64, h.dofs)
	for b := 0; b < h.numBodies; b++ {
		off := b * perBody
		copy(vel[6*b:6*b+6], x[off+6:off+12])
	}

	total := mat.NewDense(h.dofs, h.dofs, nil)
	for i := 0; i < h.dofs; i++ {
		total.Set(i, i, h.massDiag[i])
	}
	total.Add(total, h.added.Matrix())

	v := mat.NewVecDense(h.dofs, vel)
	var mv mat.VecDense
	mv.MulVec(total, v)
	ke := 0.5 * mat.Dot(v, &mv)

	pe := 0.0
	for b := 0; b < h.numBodies; b++ {
		z := x[b*perBody+2]
		k33 := h.db.KScaled(b).At(2, 2)
		pe += 0.5 * k33 * z * z
	}

	return ke + pe
}

// HeaveEnergyMetric builds a metrics.HeaveEnergy tracker for 1-based body
// b, using its added-mass-augmented heave inertia and scaled heave
// restoring stiffness.
func (h *Host) HeaveEnergyMetric(b int) *metrics.HeaveEnergy {
	idx := b - 1
	inertia := h.massDiag[6*idx+2] + h.added.Matrix().At(6*idx+2, 6*idx+2)
	stiffness := h.db.KScaled(idx).At(2, 2)
	return metrics.NewHeaveEnergy(inertia, stiffness)
}

// InitialState builds the zero-velocity initial state for cfg's bodies at
// their configured positions, zero Euler angles.
func InitialState(cfg *config.Config) dynamo.State {
	x := make(dynamo.State, perBody*cfg.NumBodies())
	for b, body := range cfg.Bodies {
		off := b * perBody
		copy(x[off:off+3], body.Pos[:])
	}
	return x
}

// Integrator resolves an integrator by config name, defaulting to RK4.
func Integrator(name string) dynamo.Integrator {
	switch name {
	case "euler":
		return integrators.NewEuler()
	case "rk45":
		return integrators.NewRK45()
	case "verlet":
		return integrators.NewVerlet()
	case "leapfrog":
		return integrators.NewLeapfrog()
	default:
		return integrators.NewRK4()
	}
}

// Run integrates cfg's configured scenario for its full duration at its
// configured step, returning the state/time history as a dynamo.Result.
// Body 1's heave energy and the host's overall energy drift are tracked
// as diagnostic metrics alongside the trajectory.
func Run(cfg *config.Config) (*dynamo.Result, error) {
	host, err := New(cfg)
	if err != nil {
		return nil, err
	}
	integ := Integrator(cfg.Integrator)
	x := InitialState(cfg)

	heaveEnergy := host.HeaveEnergyMetric(1)
	energyDrift := metrics.NewEnergyDrift(host)

	steps := int(cfg.Duration / cfg.Dt)
	result := &dynamo.Result{
		States: make([]dynamo.State, 0, steps+1),
		Times:  make([]float64, 0, steps+1),
	}
	t := 0.0
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)
	heaveEnergy.Observe(BodyHeave(x, 1), nil, t)
	energyDrift.Observe(x, nil, t)

	for i := 0; i < steps; i++ {
		x = integ.Step(host, x, nil, t, cfg.Dt)
		t += cfg.Dt
		if !x.IsValid() {
			result.Errors = append(result.Errors, dynamo.SimError{Time: t, Step: i, Message: "state became invalid"})
			break
		}
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
		heaveEnergy.Observe(BodyHeave(x, 1), nil, t)
		energyDrift.Observe(x, nil, t)
	}
	result.StepsTaken = len(result.States) - 1
	result.EnergyDrift = energyDrift.Value()
	result.Metrics = map[string]float64{
		heaveEnergy.Name(): heaveEnergy.Value(),
		energyDrift.Name(): energyDrift.Value(),
	}
	return result, nil
}

// BodyPos extracts the current world-frame position of 1-based body b
// from a full state vector.
func BodyPos(x dynamo.State, b int) [3]float64 {
	off := (b - 1) * perBody
	var p [3]float64
	copy(p[:], x[off:off+3])
	return p
}

// BodyHeave extracts body b's heave displacement and heave velocity as
// the two-element state HeaveEnergy expects.
func BodyHeave(x dynamo.State, b int) dynamo.State {
	off := (b - 1) * perBody
	return dynamo.State{x[off+2], x[off+8]}
}
