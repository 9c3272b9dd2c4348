// Package hydroengine orchestrates the per-step hydrodynamic force
// computation: it caches the total force by simulation time, pushes body
// velocities into the radiation history, sums the hydrostatic, radiation,
// and excitation contributions, and exposes per-component callables the
// host wires as scalar force/torque sources.
package hydroengine

import (
	"github.com/oceanwave/hydrocore/internal/addedmass"
	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"github.com/oceanwave/hydrocore/internal/hydroerr"
	"github.com/oceanwave/hydrocore/internal/hydrostatic"
	"github.com/oceanwave/hydrocore/internal/radiation"
	"github.com/oceanwave/hydrocore/internal/velocity"
	"github.com/oceanwave/hydrocore/internal/wavemodel"
)

// BodyState is the per-body kinematic input the host supplies each step:
// world-frame position, orientation as Euler-123 angles, and world-frame
// linear+angular velocity (six components, surge..yaw order).
type BodyState struct {
	Pos      [3]float64
	Euler    [3]float64
	Velocity [6]float64
}

// Engine is the per-simulation hydrodynamic force orchestrator: one
// Engine owns one HydroDB reference, one VelocityHistory, one wave model,
// and a force cache keyed on simulation time.
type Engine struct {
	db        *hydrodb.DB
	numBodies int
	dofs      int

	wave  wavemodel.Model
	radc  *radiation.Convolver
	eqs   []hydrostatic.Equilibrium
	hist  *velocity.History
	added *addedmass.Contributor

	gravity [3]float64

	prevTime    float64
	initialized bool
	totalForce  []float64
}

// New builds an Engine for numBodies bodies backed by db, radiation
// history sized to the RIRF length of body 0 (all bodies share T_r per
// the shared-file convention), and the given wave model and gravity
// vector.
func New(db *hydrodb.DB, numBodies int, wave wavemodel.Model, gravity [3]float64) *Engine {
	dofs := 6 * numBodies
	tr := 0
	if numBodies > 0 {
		tr = len(db.Body(0).RIRFTime)
	}
	eqs := make([]hydrostatic.Equilibrium, numBodies)
	for b := 0; b < numBodies; b++ {
		eqs[b] = hydrostatic.NewEquilibrium(db, b)
	}
	return &Engine{
		db:        db,
		numBodies: numBodies,
		dofs:      dofs,
		wave:      wave,
		radc:      radiation.New(db, numBodies),
		eqs:       eqs,
		hist:      velocity.New(tr, dofs),
		added:     addedmass.New(db, numBodies),
		gravity:   gravity,
		prevTime:  -1,
	}
}

// AddedMass returns the engine's constant added-mass contributor, for
// installation into the host's mass matrix / Jacobian.
func (e *Engine) AddedMass() *addedmass.Contributor { return e.added }

// Step recomputes total_force for simulation time t if t differs from the
// cached prev_time, using the supplied per-body states. If t equals the
// cached time, states are ignored and the cached result is returned
// unchanged, per the ForceCache contract.
func (e *Engine) Step(t float64, states []BodyState) ([]float64, error) {
	if e.initialized && t == e.prevTime {
		return e.totalForce, nil
	}
	if len(states) != e.numBodies {
		return nil, hydroerr.ShapeMismatchf("hydroengine.Step states", []int{e.numBodies}, []int{len(states)})
	}

	vels := make([]float64, e.dofs)
	for b, st := range states {
		for i := 0; i < 6; i++ {
			vels[6*b+i] = st.Velocity[i]
		}
	}
	if err := e.hist.PushAll(vels); err != nil {
		return nil, err
	}

	fh := make([]float64, e.dofs)
	for b, st := range states {
		bf := hydrostatic.Force(e.db, b, st.Pos, st.Euler, e.eqs[b], e.gravity)
		copy(fh[6*b:6*b+6], bf)
	}

	fr, err := e.radc.Force(e.hist)
	if err != nil {
		return nil, err
	}

	fexc, err := e.wave.Excitation(t)
	if err != nil {
		return nil, err
	}

	total := make([]float64, e.dofs)
	for i := range total {
		total[i] = fh[i] - fr[i] + fexc[i]
	}

	e.prevTime = t
	e.initialized = true
	e.totalForce = total
	return total, nil
}

// ForceComponent returns total_force[6*(b-1)+i] for 1-based body b and
// dof i in [0,6), evaluated at time t against the given states. It does
// not recompute if t equals the cached simulation time.
func (e *Engine) ForceComponent(b int, i int, t float64, states []BodyState) (float64, error) {
	if b < 1 || b > e.numBodies {
		return 0, hydroerr.BodyOutOfRangef(b, e.numBodies)
	}
	if i < 0 || i >= 6 {
		return 0, hydroerr.DofOutOfRangef(b, i)
	}
	total, err := e.Step(t, states)
	if err != nil {
		return 0, err
	}
	return total[6*(b-1)+i], nil
}

// Callable is a copyable {engine, body, dof} record whose Value method
// re-evaluates the engine at call time; it survives copy because it holds
// only the engine pointer and two indices, never a snapshot of force.
type Callable struct {
	Engine *Engine
	Body   int // 1-based
	Dof    int // 0-5
}

// Value evaluates the underlying engine's force_component for this
// callable's fixed (body, dof), at time t against the given states.
func (c Callable) Value(t float64, states []BodyState) (float64, error) {
	return c.Engine.ForceComponent(c.Body, c.Dof, t, states)
}

// Callables returns the six force/torque callables for 1-based body b, in
// dof order 0..5 (0-2 force, 3-5 torque), for installation into the host.
func (e *Engine) Callables(b int) [6]Callable {
	var out [6]Callable
	for i := 0; i < 6; i++ {
		out[i] = Callable{Engine: e, Body: b, Dof: i}
	}
	return out
}
