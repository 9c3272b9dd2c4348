package excitation

import (
	"math"
	"testing"

	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"gonum.org/v1/gonum/mat"
)

func fixtureDB(t *testing.T) *hydrodb.DB {
	t.Helper()
	hc := &hydrodb.HydroCoefficients{
		BodyNumber: 1,
		K:          mat.NewDense(6, 6, make([]float64, 36)),
		Ainf:       mat.NewDense(6, 6, make([]float64, 36)),
	}
	hc.ExIRFTime = []float64{0, 0.5, 1.0, 1.5, 2.0}
	hc.ExIRF = hydrodb.NewTensor3(6, 1, 5)
	for dof := 0; dof < 6; dof++ {
		for k := range hc.ExIRFTime {
			hc.ExIRF.Set(dof, 0, k, 1.0)
		}
	}
	db := hydrodb.NewDB(1000, 9.81, []float64{1, 2}, []*hydrodb.HydroCoefficients{hc})
	if err := db.ResampleExcitationIRF(0, 0.5); err != nil {
		t.Fatalf("resample: %v", err)
	}
	return db
}

func TestForceZeroWhenEtaZero(t *testing.T) {
	db := fixtureDB(t)
	eta := make([]float64, 10) // all zero elevation
	conv := New(db, 1, 0.5, eta)

	f, err := conv.Force(0, 2, 5.0)
	if err != nil {
		t.Fatalf("Force: %v", err)
	}
	if f != 0 {
		t.Errorf("f = %v, want 0 for zero elevation history", f)
	}
}

func TestForceAccumulatesOverWindow(t *testing.T) {
	db := fixtureDB(t)
	eta := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	conv := New(db, 1, 0.5, eta)

	f, err := conv.Force(0, 0, 3.0)
	if err != nil {
		t.Fatalf("Force: %v", err)
	}
	if math.Abs(f) < 1e-9 {
		t.Error("expected nonzero excitation force for constant unit elevation and unit IRF")
	}
}

func TestForceAllShape(t *testing.T) {
	db := fixtureDB(t)
	eta := make([]float64, 10)
	conv := New(db, 1, 0.5, eta)

	out, err := conv.ForceAll(1.0)
	if err != nil {
		t.Fatalf("ForceAll: %v", err)
	}
	if len(out) != 6 {
		t.Fatalf("len(out) = %d, want 6", len(out))
	}
}
