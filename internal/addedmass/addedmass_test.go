package addedmass

import (
	"math"
	"testing"

	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"gonum.org/v1/gonum/mat"
)

func twoBodyDB() *hydrodb.DB {
	a1 := make([]float64, 36)
	a2 := make([]float64, 36)
	for i := 0; i < 6; i++ {
		a1[i*6+i] = 10
		a2[i*6+i] = 20
	}
	hc1 := &hydrodb.HydroCoefficients{BodyNumber: 1, K: mat.NewDense(6, 6, make([]float64, 36)), Ainf: mat.NewDense(6, 6, a1)}
	hc2 := &hydrodb.HydroCoefficients{BodyNumber: 2, K: mat.NewDense(6, 6, make([]float64, 36)), Ainf: mat.NewDense(6, 6, a2)}
	return hydrodb.NewDB(1000, 9.81, []float64{1, 2}, []*hydrodb.HydroCoefficients{hc1, hc2})
}

func TestMatrixIsBlockDiagonal(t *testing.T) {
	db := twoBodyDB()
	c := New(db, 2)
	m := c.Matrix()

	r, cN := m.Dims()
	if r != 12 || cN != 12 {
		t.Fatalf("Matrix dims = %dx%d, want 12x12", r, cN)
	}

	// off-diagonal inter-body block should be exactly zero.
	for i := 0; i < 6; i++ {
		for j := 6; j < 12; j++ {
			if m.At(i, j) != 0 {
				t.Errorf("expected zero cross-body coupling at (%d,%d), got %v", i, j, m.At(i, j))
			}
		}
	}
	if got := m.At(0, 0); math.Abs(got-1000*10) > 1e-9 {
		t.Errorf("body1 diag = %v, want %v", got, 1000*10)
	}
	if got := m.At(6, 6); math.Abs(got-1000*20) > 1e-9 {
		t.Errorf("body2 diag = %v, want %v", got, 1000*20)
	}
}

func TestJacobianIsPurelyInertial(t *testing.T) {
	db := twoBodyDB()
	c := New(db, 2)
	dQdx, dQdv, dQdacc := c.Jacobian()

	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			if dQdx.At(i, j) != 0 {
				t.Fatalf("dQdx should be all zero, got nonzero at (%d,%d)", i, j)
			}
			if dQdv.At(i, j) != 0 {
				t.Fatalf("dQdv should be all zero, got nonzero at (%d,%d)", i, j)
			}
		}
	}
	if dQdacc.At(0, 0) != c.Matrix().At(0, 0) {
		t.Error("dQdacc should equal the assembled added-mass matrix")
	}
}

func TestResidualMv(t *testing.T) {
	db := twoBodyDB()
	c := New(db, 2)

	w := make([]float64, 12)
	w[0] = 2.0 // accel of 2 on body1 surge

	r := make([]float64, 12)
	c.ResidualMv(w, 1.0, r)

	want := 1000 * 10 * 2.0
	if math.Abs(r[0]-want) > 1e-6 {
		t.Errorf("r[0] = %v, want %v", r[0], want)
	}
	for i := 1; i < 12; i++ {
		if r[i] != 0 {
			t.Errorf("r[%d] = %v, want 0 (w is zero there)", i, r[i])
		}
	}

	// accumulation: calling again with cScale=-1 should cancel it out.
	c.ResidualMv(w, -1.0, r)
	if math.Abs(r[0]) > 1e-6 {
		t.Errorf("r[0] after cancel = %v, want 0", r[0])
	}
}
