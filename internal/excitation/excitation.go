// Package excitation implements the wave-elevation-to-force convolution
// that drives irregular-sea excitation: the resampled excitation impulse
// response function convolved against a precomputed free-surface
// elevation time series.
package excitation

import (
	"math"

	"github.com/oceanwave/hydrocore/internal/hydrodb"
)

// Convolver evaluates the excitation force contribution for one body/dof
// at an arbitrary simulation time t, given a fixed free-surface elevation
// history sampled on a uniform grid of spacing dtSim.
type Convolver struct {
	db        *hydrodb.DB
	numBodies int
	dtSim     float64
	eta       []float64 // free-surface elevation samples on [0, dtSim, 2*dtSim, ...]
}

// New builds a Convolver over eta, the precomputed elevation series on a
// uniform grid of spacing dtSim. db must already have had
// ResampleExcitationIRF called for every body at dtSim.
func New(db *hydrodb.DB, numBodies int, dtSim float64, eta []float64) *Convolver {
	return &Convolver{db: db, numBodies: numBodies, dtSim: dtSim, eta: eta}
}

// Force returns the excitation force for body idx (0-based), dof d, wave
// direction 0, at simulation time t, per the fixed convolution contract:
// strict-inequality window guard and the η[n-1] left-edge alignment are
// both part of the contract, not incidental implementation detail.
func (c *Convolver) Force(idx, d int, t float64) (float64, error) {
	irf, tirf, err := c.db.ResampledExcitationIRF(idx)
	if err != nil {
		return 0, err
	}
	nEta := len(c.eta)
	horizon := float64(nEta) * c.dtSim

	f := 0.0
	for j, tau := range tirf {
		tTau := t - tau
		if tTau > 0 && tTau < horizon {
			n := int(math.Floor(tTau / c.dtSim))
			if n-1 >= 0 && n-1 < nEta {
				f += irf.At(d, 0, j) * c.eta[n-1] * c.dtSim
			}
		}
	}
	return f, nil
}

// ForceAll returns the length-6N excitation vector at time t across every
// body and dof, wave direction fixed to 0.
func (c *Convolver) ForceAll(t float64) ([]float64, error) {
	out := make([]float64, 6*c.numBodies)
	for b := 0; b < c.numBodies; b++ {
		for d := 0; d < 6; d++ {
			v, err := c.Force(b, d, t)
			if err != nil {
				return nil, err
			}
			out[6*b+d] = v
		}
	}
	return out, nil
}
