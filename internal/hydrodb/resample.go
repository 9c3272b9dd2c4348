package hydrodb

import (
	"github.com/oceanwave/hydrocore/internal/hydroerr"
	"gonum.org/v1/gonum/interp"
)

// ResampleExcitationIRF resamples body idx's excitation impulse response
// function onto a uniform grid with the given dt, using cubic spline
// interpolation over the native (BEMIO-supplied) time base. It is
// idempotent: a second call with the same dt is a no-op, matching the
// reference implementation's is_excitation_irf_time_resampled guard. A
// call with a different dt replaces the cached resample.
func (db *DB) ResampleExcitationIRF(idx int, dt float64) error {
	hc := db.bodies[idx]
	if hc.ExIRF == nil || len(hc.ExIRFTime) == 0 {
		return hydroerr.Missingf("hydro_coeffs/excitation/impulse_response_fun")
	}
	if cached, ok := db.resampled[idx]; ok && cached.dt == dt {
		return nil
	}

	tOld := hc.ExIRFTime
	duration := tOld[len(tOld)-1] - tOld[0]
	if dt <= 0 || duration <= 0 {
		return hydroerr.New(hydroerr.ShapeMismatch).WithMessage("invalid resample grid")
	}
	nNew := int(duration/dt) + 1
	tNew := make([]float64, nNew)
	for i := range tNew {
		tNew[i] = tOld[0] + float64(i)*dt
	}

	out := NewTensor3(hc.ExIRF.D0, hc.ExIRF.D1, nNew)
	for dof := 0; dof < hc.ExIRF.D0; dof++ {
		for dir := 0; dir < hc.ExIRF.D1; dir++ {
			series := make([]float64, len(tOld))
			for k := range tOld {
				series[k] = hc.ExIRF.At(dof, dir, k)
			}
			var spline interp.NotAKnotCubic
			if err := spline.Fit(tOld, series); err != nil {
				return hydroerr.FileIOf("excitation impulse response resample", err)
			}
			for k, t := range tNew {
				out.Set(dof, dir, k, spline.Predict(t))
			}
		}
	}

	db.resampled[idx] = resampledExIRF{dt: dt, irf: out, time: tNew}
	return nil
}

// ResampledExcitationIRF returns the resampled tensor and time base for
// body idx, or a NotInitialized error if ResampleExcitationIRF was never
// called for it.
func (db *DB) ResampledExcitationIRF(idx int) (*Tensor3, []float64, error) {
	cached, ok := db.resampled[idx]
	if !ok {
		return nil, nil, hydroerr.New(hydroerr.NotInitialized).WithMessage("excitation IRF not resampled")
	}
	return cached.irf, cached.time, nil
}
