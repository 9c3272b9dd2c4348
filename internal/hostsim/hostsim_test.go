package hostsim

import (
	"math"
	"testing"

	"github.com/oceanwave/hydrocore/internal/dynamo"
	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"github.com/oceanwave/hydrocore/internal/hydroengine"
	"github.com/oceanwave/hydrocore/internal/wavemodel"
	"gonum.org/v1/gonum/mat"
)

// buoyDB builds a single still-water body: heave stiffness K_33=stiffness,
// added mass A_inf,33=addedMass/rho, no radiation memory (RIRF all zero),
// centered at CG=CB=0 so hydrostatic reduces to a pure heave spring with
// zero gravity offset.
func buoyDB(stiffness, addedMass float64) *hydrodb.DB {
	kFlat := make([]float64, 36)
	kFlat[2*6+2] = stiffness
	aFlat := make([]float64, 36)
	aFlat[2*6+2] = addedMass
	rirfTime := []float64{0, 0.1, 0.2}
	hc := &hydrodb.HydroCoefficients{
		BodyNumber: 1,
		DispVol:    0,
		K:          mat.NewDense(6, 6, kFlat),
		Ainf:       mat.NewDense(6, 6, aFlat),
		RIRF:       hydrodb.NewTensor3(6, 6, len(rirfTime)),
		RIRFTime:   rirfTime,
	}
	return hydrodb.NewDB(1, 1, []float64{1, 2}, []*hydrodb.HydroCoefficients{hc})
}

func newTestHost(db *hydrodb.DB, numBodies int, masses []float64) *Host {
	engine := hydroengine.New(db, numBodies, wavemodel.NewStill(6*numBodies), [3]float64{0, 0, 0})
	massDiag := make([]float64, 6*numBodies)
	for b, m := range masses {
		for i := 0; i < 6; i++ {
			massDiag[6*b+i] = m
		}
	}
	return &Host{
		db:        db,
		engine:    engine,
		added:     engine.AddedMass(),
		numBodies: numBodies,
		dofs:      6 * numBodies,
		massDiag:  massDiag,
	}
}

// TestHeaveDecayIsRestoring checks the S1-style single-body decay setup:
// released from a heave offset with zero velocity, the very first
// derivative evaluation must produce a restoring (sign-opposite)
// acceleration, per Cummins' spring-mass-damper structure with no
// external excitation in still water.
func TestHeaveDecayIsRestoring(t *testing.T) {
	stiffness, addedMass, mass := 1000.0, 500.0, 1000.0
	db := buoyDB(stiffness, addedMass)
	host := newTestHost(db, 1, []float64{mass})

	x := make(dynamo.State, perBody)
	x[2] = 0.5 // heave offset

	dx := host.Derive(x, nil, 0.0)

	if dx[2] != x[8] {
		t.Errorf("dz/dt should equal heave velocity (0): got %v", dx[2])
	}
	if dx[8] >= 0 {
		t.Errorf("heave acceleration should be restoring (negative for positive offset), got %v", dx[8])
	}

	wantAccel := -stiffness * 0.5 / (mass + addedMass)
	if math.Abs(dx[8]-wantAccel) > 1e-9 {
		t.Errorf("heave acceleration = %v, want %v", dx[8], wantAccel)
	}
}

func TestThreeBodyStillWaterZeroInitialForce(t *testing.T) {
	numBodies := 3
	masses := []float64{1089825, 179250, 179250}
	bodies := make([]*hydrodb.HydroCoefficients, numBodies)
	for i := range bodies {
		bodies[i] = &hydrodb.HydroCoefficients{
			BodyNumber: i + 1,
			K:          mat.NewDense(6, 6, make([]float64, 36)),
			Ainf:       mat.NewDense(6, 6, make([]float64, 36)),
			RIRF:       hydrodb.NewTensor3(6, 18, 2),
			RIRFTime:   []float64{0, 0.1},
		}
	}
	db := hydrodb.NewDB(1000, 9.81, []float64{1, 2}, bodies)
	host := newTestHost(db, numBodies, masses)

	x := make(dynamo.State, perBody*numBodies)
	dx := host.Derive(x, nil, 0.0)

	for i, v := range dx {
		if v != 0 {
			t.Errorf("dx[%d] = %v, want 0 for a body released from rest with zero stiffness/excitation", i, v)
		}
	}
}

func TestAddedMassAssembledFromContributor(t *testing.T) {
	db := buoyDB(100, 50)
	host := newTestHost(db, 1, []float64{200})
	c := host.added
	if got := c.Matrix().At(2, 2); math.Abs(got-50) > 1e-9 {
		t.Errorf("added mass A33 = %v, want 50", got)
	}
}
