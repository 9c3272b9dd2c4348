// Package wavemodel produces the per-step wave excitation force for the
// three supported sea states: still water, a regular monochromatic wave,
// and an irregular Pierson-Moskowitz sea state convolved through the
// excitation impulse response.
package wavemodel

import (
	"math"

	"github.com/oceanwave/hydrocore/internal/hydrodb"
)

// Mode tags which of the three wave variants a Model realizes.
type Mode int

const (
	Still Mode = iota
	Regular
	Irregular
)

func (m Mode) String() string {
	switch m {
	case Still:
		return "still"
	case Regular:
		return "regular"
	case Irregular:
		return "irregular"
	default:
		return "unknown"
	}
}

// Model computes excitation(t), a length-6N generalized force vector, for
// whichever Mode it was constructed with.
type Model interface {
	Mode() Mode
	Excitation(t float64) ([]float64, error)
}

// stillModel always returns zeros; it never fails and needs no state.
type stillModel struct {
	dofs int
}

// NewStill builds a still-water wave model for a system with the given
// total degree-of-freedom count (6N).
func NewStill(dofs int) Model {
	return &stillModel{dofs: dofs}
}

func (m *stillModel) Mode() Mode { return Still }

func (m *stillModel) Excitation(t float64) ([]float64, error) {
	return make([]float64, m.dofs), nil
}

// regularModel implements a closed-form monochromatic wave: excitation
// magnitude and phase are frequency-interpolated once at construction,
// then evaluated as a pure cosine at every step with no memory between
// calls.
type regularModel struct {
	dofs  int
	amp   float64
	omega float64
	mag   []float64 // length dofs, M_{b,i}
	phase []float64 // length dofs, P_{b,i}
}

// NewRegular builds a regular wave excitation model for amplitude A [m]
// and frequency omega [rad/s] against db, for a system of numBodies
// bodies. Wave direction is fixed to index 0 (head seas), the only
// heading a BEMIO database with a single wave-direction column carries.
func NewRegular(db *hydrodb.DB, numBodies int, amp, omega float64) (Model, error) {
	dofs := 6 * numBodies
	m := &regularModel{dofs: dofs, amp: amp, omega: omega, mag: make([]float64, dofs), phase: make([]float64, dofs)}
	for b := 0; b < numBodies; b++ {
		for i := 0; i < 6; i++ {
			mag, err := db.ExMagScaled(b, i, 0, omega)
			if err != nil {
				return nil, err
			}
			phase, err := db.ExPhaseInterp(b, i, 0, omega)
			if err != nil {
				return nil, err
			}
			m.mag[6*b+i] = mag
			m.phase[6*b+i] = phase
		}
	}
	return m, nil
}

func (m *regularModel) Mode() Mode { return Regular }

func (m *regularModel) Excitation(t float64) ([]float64, error) {
	out := make([]float64, m.dofs)
	for k := range out {
		out[k] = m.amp * m.mag[k] * math.Cos(m.omega*t+m.phase[k])
	}
	return out, nil
}
