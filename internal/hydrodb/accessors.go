package hydrodb

import (
	"math"

	"github.com/oceanwave/hydrocore/internal/hydroerr"
	"gonum.org/v1/gonum/mat"
)

// KScaled returns the dimensional hydrostatic stiffness matrix for body
// idx: K_scaled = rho * g * K.
func (db *DB) KScaled(idx int) *mat.Dense {
	hc := db.bodies[idx]
	var out mat.Dense
	out.Scale(db.Rho*db.G, hc.K)
	return &out
}

// AinfBlock returns the dimensional infinite-frequency added-mass block for
// body idx: A_inf_scaled = rho * Ainf.
func (db *DB) AinfBlock(idx int) *mat.Dense {
	hc := db.bodies[idx]
	var out mat.Dense
	out.Scale(db.Rho, hc.Ainf)
	return &out
}

// RIRFScaled returns rho * RIRF[row][col][step] for body idx.
func (db *DB) RIRFScaled(idx, row, col, step int) float64 {
	hc := db.bodies[idx]
	return db.Rho * hc.RIRF.At(row, col, step)
}

// freqIndex computes the fractional index into the shared omega grid:
// index = omega/domega - 1, clamped so the linear interpolation always
// has a valid neighbor pair.
func (db *DB) freqIndex(omega float64) (k0 int, alpha float64, err error) {
	if omega > db.OmegaMax() {
		return 0, 0, hydroerr.FreqOutOfRangef(omega, db.OmegaMax())
	}
	dOmega := db.OmegaDelta()
	if dOmega == 0 {
		return 0, 0, hydroerr.New(hydroerr.NotInitialized)
	}
	idx := omega/dOmega - 1
	n := len(db.Omega)
	k0f := math.Floor(idx)
	alpha = idx - k0f
	k0 = int(k0f)
	if k0 < 0 {
		k0, alpha = 0, 0
	}
	if k0 > n-2 {
		k0, alpha = n-2, 1
	}
	return k0, alpha, nil
}

// ExMagScaled returns the wave excitation force magnitude for body idx,
// response dof, wave direction dir, at frequency omega, linearly
// interpolated on the shared omega grid and scaled by rho*g.
func (db *DB) ExMagScaled(idx, dof, dir int, omega float64) (float64, error) {
	hc := db.bodies[idx]
	k0, alpha, err := db.freqIndex(omega)
	if err != nil {
		return 0, err
	}
	m0 := hc.ExMag.At(dof, dir, k0)
	m1 := hc.ExMag.At(dof, dir, k0+1)
	return db.Rho * db.G * (m0 + alpha*(m1-m0)), nil
}

// ExPhaseInterp returns the wave excitation phase for body idx, response
// dof, wave direction dir, at frequency omega, linearly interpolated on
// the shared omega grid. Phases are interpolated directly (not unwrapped),
// matching the reference behavior for the frequency ranges BEMIO produces.
func (db *DB) ExPhaseInterp(idx, dof, dir int, omega float64) (float64, error) {
	hc := db.bodies[idx]
	k0, alpha, err := db.freqIndex(omega)
	if err != nil {
		return 0, err
	}
	p0 := hc.ExPhase.At(dof, dir, k0)
	p1 := hc.ExPhase.At(dof, dir, k0+1)
	return p0 + alpha*(p1-p0), nil
}
