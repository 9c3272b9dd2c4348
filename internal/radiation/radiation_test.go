package radiation

import (
	"math"
	"testing"

	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"github.com/oceanwave/hydrocore/internal/velocity"
	"gonum.org/v1/gonum/mat"
)

func fixtureDB() *hydrodb.DB {
	tr := 4
	rirfTime := []float64{0, 0.1, 0.2, 0.3}
	rirf := hydrodb.NewTensor3(6, 6, tr)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			for s := 0; s < tr; s++ {
				rirf.Set(i, j, s, float64(i+j+1)*math.Exp(-float64(s)))
			}
		}
	}
	hc := &hydrodb.HydroCoefficients{
		BodyNumber: 1,
		K:          mat.NewDense(6, 6, make([]float64, 36)),
		Ainf:       mat.NewDense(6, 6, make([]float64, 36)),
		RIRF:       rirf,
		RIRFTime:   rirfTime,
	}
	return hydrodb.NewDB(1000, 9.81, []float64{1, 2}, []*hydrodb.HydroCoefficients{hc})
}

func TestZeroVelocityHistoryGivesZeroForce(t *testing.T) {
	db := fixtureDB()
	conv := New(db, 1)
	hist := velocity.New(4, 6)

	fr, err := conv.Force(hist)
	if err != nil {
		t.Fatalf("Force: %v", err)
	}
	for i, v := range fr {
		if v != 0 {
			t.Errorf("fr[%d] = %v, want 0 for all-zero velocity history", i, v)
		}
	}
}

func TestNonzeroVelocityGivesNonzeroForce(t *testing.T) {
	db := fixtureDB()
	conv := New(db, 1)
	hist := velocity.New(4, 6)
	for s := 0; s < 4; s++ {
		vels := make([]float64, 6)
		for i := range vels {
			vels[i] = 1.0
		}
		if err := hist.PushAll(vels); err != nil {
			t.Fatalf("PushAll: %v", err)
		}
	}

	fr, err := conv.Force(hist)
	if err != nil {
		t.Fatalf("Force: %v", err)
	}
	allZero := true
	for _, v := range fr {
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Error("expected nonzero radiation force for constant unit velocity history")
	}
}
