package wavemodel

import (
	"math"
	"testing"

	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"gonum.org/v1/gonum/mat"
)

func fixtureDB() *hydrodb.DB {
	hc := &hydrodb.HydroCoefficients{
		BodyNumber: 1,
		K:          mat.NewDense(6, 6, make([]float64, 36)),
		Ainf:       mat.NewDense(6, 6, make([]float64, 36)),
	}
	hc.ExMag = hydrodb.NewTensor3(6, 1, 2)
	hc.ExPhase = hydrodb.NewTensor3(6, 1, 2)
	for dof := 0; dof < 6; dof++ {
		hc.ExMag.Set(dof, 0, 0, 1.0)
		hc.ExMag.Set(dof, 0, 1, 1.0)
		hc.ExPhase.Set(dof, 0, 0, 0)
		hc.ExPhase.Set(dof, 0, 1, 0)
	}
	return hydrodb.NewDB(1000, 9.81, []float64{1, 2}, []*hydrodb.HydroCoefficients{hc})
}

func TestStillModelAlwaysZero(t *testing.T) {
	m := NewStill(6)
	if m.Mode() != Still {
		t.Errorf("Mode() = %v, want Still", m.Mode())
	}
	f, err := m.Excitation(123.4)
	if err != nil {
		t.Fatalf("Excitation: %v", err)
	}
	for i, v := range f {
		if v != 0 {
			t.Errorf("f[%d] = %v, want 0", i, v)
		}
	}
}

func TestRegularModelCosineAtZeroPhase(t *testing.T) {
	db := fixtureDB()
	m, err := NewRegular(db, 1, 2.0, 1.5)
	if err != nil {
		t.Fatalf("NewRegular: %v", err)
	}
	if m.Mode() != Regular {
		t.Errorf("Mode() = %v, want Regular", m.Mode())
	}

	f, err := m.Excitation(0)
	if err != nil {
		t.Fatalf("Excitation: %v", err)
	}
	// mag=1 unscaled (const across freq), phase=0 everywhere ->
	// amp*rho*g*mag*cos(0) = amp*rho*g
	want := 2.0 * db.Rho * db.G
	for dof, v := range f {
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("f[%d](0) = %v, want %v", dof, v, want)
		}
	}

	f2, err := m.Excitation(math.Pi / (2 * 1.5))
	if err != nil {
		t.Fatalf("Excitation: %v", err)
	}
	for dof, v := range f2 {
		if math.Abs(v) > 1e-9 {
			t.Errorf("f[%d](quarter period) = %v, want ~0", dof, v)
		}
	}
}
