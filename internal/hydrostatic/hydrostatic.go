// Package hydrostatic computes the per-body linear restoring and
// buoyancy force from a body's displacement off its equilibrium pose.
package hydrostatic

import (
	"github.com/oceanwave/hydrocore/internal/hydrodb"
)

// Equilibrium is the pose a body's restoring force is measured against:
// translational part is the body's center of gravity, rotational part is
// zero, fixed once at construction.
type Equilibrium struct {
	Pos   [3]float64 // == CG
	Euler [3]float64 // zero
}

// NewEquilibrium builds the equilibrium vector for body idx from db.
func NewEquilibrium(db *hydrodb.DB, idx int) Equilibrium {
	return Equilibrium{Pos: db.Body(idx).CG}
}

// Force computes the six-component hydrostatic force (0-2 translational,
// 3-5 rotational) for body idx given its current world-frame position and
// orientation (as Euler-123 angles), and the host's gravity vector.
func Force(db *hydrodb.DB, idx int, pos, euler [3]float64, eq Equilibrium, gravity [3]float64) []float64 {
	hc := db.Body(idx)

	dx := [6]float64{
		pos[0] - eq.Pos[0],
		pos[1] - eq.Pos[1],
		pos[2] - eq.Pos[2],
		euler[0] - eq.Euler[0],
		euler[1] - eq.Euler[1],
		euler[2] - eq.Euler[2],
	}

	k := db.KScaled(idx)
	fh := make([]float64, 6)
	for i := 0; i < 6; i++ {
		sum := 0.0
		for j := 0; j < 6; j++ {
			sum += k.At(i, j) * dx[j]
		}
		fh[i] = -sum
	}

	fBuoy := [3]float64{
		db.Rho * hc.DispVol * -gravity[0],
		db.Rho * hc.DispVol * -gravity[1],
		db.Rho * hc.DispVol * -gravity[2],
	}
	for i := 0; i < 3; i++ {
		fh[i] += fBuoy[i]
	}

	offset := [3]float64{
		hc.CB[0] - hc.CG[0],
		hc.CB[1] - hc.CG[1],
		hc.CB[2] - hc.CG[2],
	}
	torque := cross(offset, fBuoy)
	for i := 0; i < 3; i++ {
		fh[3+i] += torque[i]
	}

	return fh
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
