// Package hydrodb parses a BEMIO-format hydrodynamic coefficient database
// and holds it read-only for the lifetime of the simulation. It owns
// scaling (by rho, g), frequency-grid interpolation of excitation
// coefficients, and lazy resampling of the excitation impulse response
// onto the simulation's timestep.
package hydrodb

import "gonum.org/v1/gonum/mat"

// Tensor3 is a row-major flattened 3-D array with shape [d0, d1, d2],
// d1 fastest varying in the BEMIO HDF5 dataset layout but stored here
// with d2 (time/freq) fastest for simulation-time access locality; At and
// Set convert logical indices to the flat offset.
type Tensor3 struct {
	Data       []float64
	D0, D1, D2 int
}

func NewTensor3(d0, d1, d2 int) *Tensor3 {
	return &Tensor3{Data: make([]float64, d0*d1*d2), D0: d0, D1: d1, D2: d2}
}

func (t *Tensor3) At(i, j, k int) float64 {
	return t.Data[(i*t.D1+j)*t.D2+k]
}

func (t *Tensor3) Set(i, j, k int, v float64) {
	t.Data[(i*t.D1+j)*t.D2+k] = v
}

// HydroCoefficients holds one body's parsed, unscaled coefficients.
// Immutable after Load; scaling is deferred to accessor methods on DB.
type HydroCoefficients struct {
	BodyNumber int // 1-based, as stored in the file (body{N})
	DispVol    float64
	CG         [3]float64
	CB         [3]float64

	K    *mat.Dense // 6x6 linear hydrostatic stiffness, unscaled
	Ainf *mat.Dense // 6x6 infinite-frequency added mass, unscaled

	RIRF     *Tensor3  // [6, 6N, T_r] radiation impulse response, unscaled
	RIRFTime []float64 // length T_r, monotone increasing

	ExMag   *Tensor3 // [6, N_dir, N_omega], unscaled
	ExPhase *Tensor3 // [6, N_dir, N_omega]

	ExIRF     *Tensor3  // [6, N_dir, T_e], native time base
	ExIRFTime []float64 // length T_e
}

// RIRFDt returns the RIRF's fixed timestep (t[1]-t[0]); convolution
// assumes a uniform base.
func (hc *HydroCoefficients) RIRFDt() float64 {
	if len(hc.RIRFTime) < 2 {
		return 0
	}
	return hc.RIRFTime[1] - hc.RIRFTime[0]
}

// DB is the process-lifetime, read-only, shared hydrodynamic database:
// global constants plus one HydroCoefficients per body.
type DB struct {
	Rho   float64
	G     float64
	Omega []float64 // shared frequency grid, rad/s, strictly increasing

	bodies    []*HydroCoefficients // indexed 0..N-1 internally
	resampled map[int]resampledExIRF // body index -> cached resample, keyed by dt
}

type resampledExIRF struct {
	dt   float64
	irf  *Tensor3  // [6, N_dir, T_new]
	time []float64 // length T_new
}

// NewDB builds a DB directly from already-parsed coefficients, bypassing
// Load. Used by tests and by callers that assemble a database
// programmatically rather than from a BEMIO HDF5 file.
func NewDB(rho, g float64, omega []float64, bodies []*HydroCoefficients) *DB {
	return &DB{Rho: rho, G: g, Omega: omega, bodies: bodies, resampled: make(map[int]resampledExIRF)}
}

// NumBodies returns N, the number of bodies held.
func (db *DB) NumBodies() int { return len(db.bodies) }

// Body returns the 0-indexed body's coefficients (idx in [0,N)).
func (db *DB) Body(idx int) *HydroCoefficients { return db.bodies[idx] }

// OmegaMax returns the top of the shared frequency grid.
func (db *DB) OmegaMax() float64 {
	if len(db.Omega) == 0 {
		return 0
	}
	return db.Omega[len(db.Omega)-1]
}

// OmegaDelta returns Δω = ω_max / N_ω, the shared grid's uniform step.
func (db *DB) OmegaDelta() float64 {
	n := len(db.Omega)
	if n == 0 {
		return 0
	}
	return db.OmegaMax() / float64(n)
}
