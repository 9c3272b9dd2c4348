// Package addedmass assembles the block-diagonal infinite-frequency
// added-mass matrix and exposes it through the Jacobian/residual contract
// a host implicit integrator expects from a purely inertial load.
package addedmass

import (
	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"gonum.org/v1/gonum/mat"
)

// Contributor holds the constant 6N x 6N added-mass matrix M_A, built once
// from the hydrodynamic database and shared by reference with the host
// for the life of the simulation.
type Contributor struct {
	dofs int
	mA   *mat.Dense
}

// New assembles M_A by stacking each body's rho*A_inf block on the
// diagonal. Off-diagonal inter-body coupling is left zero; HydroDB does
// not currently carry cross-body added-mass terms.
func New(db *hydrodb.DB, numBodies int) *Contributor {
	dofs := 6 * numBodies
	mA := mat.NewDense(dofs, dofs, nil)
	for b := 0; b < numBodies; b++ {
		block := db.AinfBlock(b)
		br, bc := block.Dims()
		for i := 0; i < br; i++ {
			for j := 0; j < bc; j++ {
				mA.Set(6*b+i, 6*b+j, block.At(i, j))
			}
		}
	}
	return &Contributor{dofs: dofs, mA: mA}
}

// Matrix returns the assembled M_A, shared by reference; callers must not
// mutate it.
func (c *Contributor) Matrix() *mat.Dense { return c.mA }

// Jacobian returns the load's contribution to the host's implicit
// integrator Jacobian. The load is purely inertial: dQ/dx and dQ/dv are
// always zero, dQ/dacc is the constant M_A.
func (c *Contributor) Jacobian() (dQdx, dQdv, dQdacc *mat.Dense) {
	zero := mat.NewDense(c.dofs, c.dofs, nil)
	return zero, zero, c.mA
}

// ResidualMv accumulates c_scale * M_A * w into R, matching the reference
// LoadIntLoadResidual_Mv contract used by Newton-type implicit solvers.
func (c *Contributor) ResidualMv(w []float64, cScale float64, r []float64) {
	wVec := mat.NewVecDense(c.dofs, w)
	var mw mat.VecDense
	mw.MulVec(c.mA, wVec)
	for i := 0; i < c.dofs; i++ {
		r[i] += cScale * mw.AtVec(i)
	}
}
