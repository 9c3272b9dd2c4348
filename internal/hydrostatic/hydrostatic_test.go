package hydrostatic

import (
	"math"
	"testing"

	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"gonum.org/v1/gonum/mat"
)

func fixtureDB(cg, cb [3]float64, dispVol float64) *hydrodb.DB {
	kFlat := make([]float64, 36)
	for i := 0; i < 6; i++ {
		kFlat[i*6+i] = float64(i + 1) // K_ii = i+1
	}
	hc := &hydrodb.HydroCoefficients{
		BodyNumber: 1,
		DispVol:    dispVol,
		CG:         cg,
		CB:         cb,
		K:          mat.NewDense(6, 6, kFlat),
		Ainf:       mat.NewDense(6, 6, make([]float64, 36)),
	}
	return hydrodb.NewDB(1000, 9.81, []float64{1, 2}, []*hydrodb.HydroCoefficients{hc})
}

func TestRestoringZeroAtEquilibrium(t *testing.T) {
	db := fixtureDB([3]float64{0, 0, 0}, [3]float64{0, 0, 0}, 10)
	eq := NewEquilibrium(db, 0)
	f := Force(db, 0, eq.Pos, eq.Euler, eq, [3]float64{0, 0, 0})
	for i, v := range f {
		if math.Abs(v) > 1e-12 {
			t.Errorf("f[%d] = %v, want 0 at equilibrium with zero gravity", i, v)
		}
	}
}

func TestRestoringLinearInDisplacement(t *testing.T) {
	db := fixtureDB([3]float64{0, 0, 0}, [3]float64{0, 0, 0}, 10)
	eq := NewEquilibrium(db, 0)
	pos := [3]float64{0, 0, 0.5} // heave displacement of 0.5m
	f := Force(db, 0, pos, eq.Euler, eq, [3]float64{0, 0, 0})

	// K_33 (0-indexed dof 2) = 3, restoring = -rho*g*K*dz.
	want := -db.Rho * db.G * 3.0 * 0.5
	if math.Abs(f[2]-want) > 1e-9 {
		t.Errorf("heave restoring = %v, want %v", f[2], want)
	}
	for i, v := range f {
		if i == 2 {
			continue
		}
		if math.Abs(v) > 1e-12 {
			t.Errorf("f[%d] = %v, want 0 (K is diagonal, displacement only in heave)", i, v)
		}
	}
}

func TestBuoyancyTorqueFromCBOffset(t *testing.T) {
	// CB offset from CG along x by 1m produces a torque about y when
	// buoyancy acts purely in z.
	db := fixtureDB([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, 10)
	eq := NewEquilibrium(db, 0)
	gravity := [3]float64{0, 0, -9.81}
	f := Force(db, 0, eq.Pos, eq.Euler, eq, gravity)

	fBuoyZ := db.Rho * 10 * 9.81
	if math.Abs(f[2]-fBuoyZ) > 1e-6 {
		t.Errorf("buoyant force f[2] = %v, want %v", f[2], fBuoyZ)
	}
	// torque = (CB-CG) x Fbuoy = (1,0,0) x (0,0,fBuoyZ) = (0*fBuoyZ-0*0, 0*0-1*fBuoyZ, 0) = (0,-fBuoyZ,0)
	wantTorqueY := -fBuoyZ
	if math.Abs(f[4]-wantTorqueY) > 1e-6 {
		t.Errorf("buoyancy torque f[4] = %v, want %v", f[4], wantTorqueY)
	}
}
