package integrators

import (
	"math"
	"testing"

	"github.com/oceanwave/hydrocore/internal/dynamo"
)

func TestVerletHarmonicOscillator(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewVerlet()

	x := dynamo.State{1.0, 0.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	want := math.Cos(float64(steps) * dt)
	if math.Abs(x[0]-want) > 1e-4 {
		t.Errorf("position error too large: got %.6f, want %.6f", x[0], want)
	}
}

// twoOscillators packs two independent 1-D harmonic oscillators into one
// state as [pos1, vel1, pos2, vel2] and reports a BlockWidth of 2, so
// each oscillator occupies its own [position, velocity] block, matching
// hostsim's per-body layout.
type twoOscillators struct{}

func (o *twoOscillators) StateDim() int   { return 4 }
func (o *twoOscillators) ControlDim() int { return 0 }
func (o *twoOscillators) BlockWidth() int { return 2 }
func (o *twoOscillators) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0], x[3], -x[2]}
}

// TestVerletBlockStructuredMultiBody starts two independent oscillators
// out of phase (pos1=1,vel1=0 and pos2=0,vel2=1) and checks each evolves
// by its own analytic solution. Splitting the whole state vector at its
// midpoint instead of per-block would mix oscillator 2's position into
// oscillator 1's velocity slot and vice versa, which this test would
// catch as a large divergence from the closed-form trajectory.
func TestVerletBlockStructuredMultiBody(t *testing.T) {
	dyn := &twoOscillators{}
	integ := NewVerlet()

	x := dynamo.State{1.0, 0.0, 0.0, 1.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	tFinal := float64(steps) * dt
	want := []float64{math.Cos(tFinal), -math.Sin(tFinal), math.Sin(tFinal), math.Cos(tFinal)}
	for i, w := range want {
		if math.Abs(x[i]-w) > 1e-4 {
			t.Errorf("x[%d] = %.6f, want %.6f (block split must not cross oscillator boundaries)", i, x[i], w)
		}
	}
}

func TestLeapfrogBlockStructuredMultiBody(t *testing.T) {
	dyn := &twoOscillators{}
	integ := NewLeapfrog()

	x := dynamo.State{1.0, 0.0, 0.0, 1.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	tFinal := float64(steps) * dt
	want := []float64{math.Cos(tFinal), -math.Sin(tFinal), math.Sin(tFinal), math.Cos(tFinal)}
	for i, w := range want {
		if math.Abs(x[i]-w) > 1e-4 {
			t.Errorf("x[%d] = %.6f, want %.6f (block split must not cross oscillator boundaries)", i, x[i], w)
		}
	}
}
