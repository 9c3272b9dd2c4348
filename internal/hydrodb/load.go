package hydrodb

import (
	"fmt"

	"github.com/oceanwave/hydrocore/internal/hydroerr"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/hdf5"
)

// Load opens a BEMIO-format hydrodynamic database at path and parses every
// body's coefficients into a DB. numBodies must be known ahead of time;
// the caller reads it from config rather than this package probing the
// file for body group names.
func Load(path string, numBodies int) (*DB, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, hydroerr.FileIOf(path, err)
	}
	defer f.Close()

	db := &DB{
		bodies:    make([]*HydroCoefficients, 0, numBodies),
		resampled: make(map[int]resampledExIRF),
	}

	if db.Rho, err = readScalar(f, "simulation_parameters/rho"); err != nil {
		return nil, err
	}
	if db.G, err = readScalar(f, "simulation_parameters/g"); err != nil {
		return nil, err
	}
	if db.Omega, err = readVector(f, "simulation_parameters/w"); err != nil {
		return nil, err
	}

	nOmega := len(db.Omega)
	dofsTotal := 6 * numBodies

	for b := 1; b <= numBodies; b++ {
		hc, err := loadBody(f, b, dofsTotal, nOmega)
		if err != nil {
			return nil, err
		}
		db.bodies = append(db.bodies, hc)
	}
	return db, nil
}

func loadBody(f *hdf5.File, bodyNumber, dofsTotal, nOmega int) (*HydroCoefficients, error) {
	prefix := fmt.Sprintf("body%d", bodyNumber)

	bn, err := readScalar(f, prefix+"/properties/body_number")
	if err != nil {
		return nil, hydroerr.Missingf(prefix + "/properties/body_number")
	}
	storedBody := int(bn)
	if storedBody != bodyNumber {
		return nil, hydroerr.BodyNumberMismatchf(bodyNumber, storedBody)
	}

	hc := &HydroCoefficients{BodyNumber: storedBody}

	if v, err := readScalar(f, prefix+"/properties/disp_vol"); err != nil {
		return nil, err
	} else {
		hc.DispVol = v
	}
	if v, err := readVector(f, prefix+"/properties/cg"); err != nil {
		return nil, err
	} else {
		copy(hc.CG[:], v)
	}
	if v, err := readVector(f, prefix+"/properties/cb"); err != nil {
		return nil, err
	} else {
		copy(hc.CB[:], v)
	}

	kFlat, err := readVector(f, prefix+"/hydro_coeffs/linear_restoring_stiffness")
	if err != nil {
		return nil, err
	}
	if len(kFlat) != 36 {
		return nil, hydroerr.ShapeMismatchf(prefix+"/hydro_coeffs/linear_restoring_stiffness", []int{6, 6}, []int{len(kFlat)})
	}
	hc.K = mat.NewDense(6, 6, kFlat)

	aFlat, err := readVector(f, prefix+"/hydro_coeffs/added_mass/inf_freq")
	if err != nil {
		return nil, err
	}
	if len(aFlat) != 36 {
		return nil, hydroerr.ShapeMismatchf(prefix+"/hydro_coeffs/added_mass/inf_freq", []int{6, 6}, []int{len(aFlat)})
	}
	hc.Ainf = mat.NewDense(6, 6, aFlat)

	rirfTime, err := readVector(f, prefix+"/hydro_coeffs/radiation_damping/impulse_response_fun/t")
	if err != nil {
		return nil, err
	}
	hc.RIRFTime = rirfTime
	tr := len(rirfTime)

	rirfFlat, err := readVector(f, prefix+"/hydro_coeffs/radiation_damping/impulse_response_fun/K")
	if err != nil {
		return nil, err
	}
	if len(rirfFlat) != 6*dofsTotal*tr {
		return nil, hydroerr.ShapeMismatchf(prefix+"/hydro_coeffs/radiation_damping/impulse_response_fun/K", []int{6, dofsTotal, tr}, []int{len(rirfFlat)})
	}
	hc.RIRF = &Tensor3{Data: rirfFlat, D0: 6, D1: dofsTotal, D2: tr}

	magFlat, err := readVector(f, prefix+"/hydro_coeffs/excitation/mag")
	if err != nil {
		return nil, err
	}
	if len(magFlat)%(6*nOmega) != 0 {
		return nil, hydroerr.ShapeMismatchf(prefix+"/hydro_coeffs/excitation/mag", []int{6, -1, nOmega}, []int{len(magFlat)})
	}
	nDir := len(magFlat) / (6 * nOmega)
	hc.ExMag = &Tensor3{Data: magFlat, D0: 6, D1: nDir, D2: nOmega}

	phaseFlat, err := readVector(f, prefix+"/hydro_coeffs/excitation/phase")
	if err != nil {
		return nil, err
	}
	if len(phaseFlat) != len(magFlat) {
		return nil, hydroerr.ShapeMismatchf(prefix+"/hydro_coeffs/excitation/phase", []int{6, nDir, nOmega}, []int{len(phaseFlat)})
	}
	hc.ExPhase = &Tensor3{Data: phaseFlat, D0: 6, D1: nDir, D2: nOmega}

	exIRFTime, err := readVector(f, prefix+"/hydro_coeffs/excitation/impulse_response_fun/t")
	if err != nil {
		return nil, err
	}
	hc.ExIRFTime = exIRFTime
	te := len(exIRFTime)

	exIRFFlat, err := readVector(f, prefix+"/hydro_coeffs/excitation/impulse_response_fun/f")
	if err != nil {
		return nil, err
	}
	if len(exIRFFlat)%te != 0 {
		return nil, hydroerr.ShapeMismatchf(prefix+"/hydro_coeffs/excitation/impulse_response_fun/f", []int{6, -1, te}, []int{len(exIRFFlat)})
	}
	nDirEx := len(exIRFFlat) / (6 * te)
	hc.ExIRF = &Tensor3{Data: exIRFFlat, D0: 6, D1: nDirEx, D2: te}

	return hc, nil
}

func readScalar(f *hdf5.File, path string) (float64, error) {
	v, err := readVector(f, path)
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, hydroerr.Missingf(path)
	}
	return v[0], nil
}

func readVector(f *hdf5.File, path string) ([]float64, error) {
	ds, err := f.OpenDataset(path)
	if err != nil {
		return nil, hydroerr.FileIOf(path, err)
	}
	defer ds.Close()

	space := ds.Space()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, hydroerr.FileIOf(path, err)
	}
	n := int64(1)
	for _, d := range dims {
		n *= int64(d)
	}
	buf := make([]float64, n)
	if err := ds.Read(&buf); err != nil {
		return nil, hydroerr.FileIOf(path, err)
	}
	return buf, nil
}
