// Package radiation implements Cummins-style radiation damping: a
// per-step trapezoidal convolution of the radiation impulse response
// against the velocity history ring buffer.
package radiation

import (
	"github.com/oceanwave/hydrocore/internal/compute"
	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"github.com/oceanwave/hydrocore/internal/velocity"
)

// Convolver computes the length-6N radiation damping force for one
// simulation step, given the current velocity history.
type Convolver struct {
	db        *hydrodb.DB
	numBodies int
	dofs      int
}

// New builds a Convolver over db for a system of numBodies bodies.
func New(db *hydrodb.DB, numBodies int) *Convolver {
	return &Convolver{db: db, numBodies: numBodies, dofs: 6 * numBodies}
}

// Force computes F_r, the length-6N radiation damping force, by
// contracting the stacked RIRF matrix against the velocity history row at
// every retained history step and accumulating trapezoidally over the
// radiation time base. The per-body RIRF response axis (width 6) is
// stacked across bodies into a 6N-row matrix so the contraction at each
// history step is a single dense mat*vec, matching spec's "precompute
// S[s] per row" performance note.
func (c *Convolver) Force(hist *velocity.History) ([]float64, error) {
	fr := make([]float64, c.dofs)
	if c.numBodies == 0 {
		return fr, nil
	}

	tr := hist.Steps()
	rirfTime := c.db.Body(0).RIRFTime

	backend := compute.GetBackend()
	sPrev := make([]float64, c.dofs)

	for s := 0; s < tr; s++ {
		velRow, err := hist.GetRow(s)
		if err != nil {
			return nil, err
		}
		stacked := c.stackedRIRF(s)
		sCur := backend.MatVecMul(stacked, velRow)

		if s > 0 {
			dt := rirfTime[s] - rirfTime[s-1]
			for row := 0; row < c.dofs; row++ {
				fr[row] += 0.5 * (sPrev[row] + sCur[row]) * dt
			}
		}
		sPrev = sCur
	}
	return fr, nil
}

// stackedRIRF builds the 6N-row, 6N-column matrix of RIRF_scaled(b,i,col,s)
// values for history step s, one 6-row block per body.
func (c *Convolver) stackedRIRF(s int) [][]float64 {
	out := make([][]float64, c.dofs)
	for b := 0; b < c.numBodies; b++ {
		for i := 0; i < 6; i++ {
			row := make([]float64, c.dofs)
			for col := 0; col < c.dofs; col++ {
				row[col] = c.db.RIRFScaled(b, i, col, s)
			}
			out[6*b+i] = row
		}
	}
	return out
}
