package wavemodel

import (
	"math"
	"math/rand/v2"

	"github.com/oceanwave/hydrocore/internal/dynamo"
	"github.com/oceanwave/hydrocore/internal/excitation"
	"github.com/oceanwave/hydrocore/internal/hydrodb"
	"github.com/oceanwave/hydrocore/internal/hydroerr"
)

// SpectrumRange bounds and resolves the frequency grid the Pierson-Moskowitz
// density is sampled over. Zero-valued fields fall back to the defaults
// (0.001 Hz, 1.0 Hz, 1000 samples).
type SpectrumRange struct {
	FMin float64
	FMax float64
	NF   int
}

func (r SpectrumRange) withDefaults() SpectrumRange {
	if r.FMin == 0 {
		r.FMin = 0.001
	}
	if r.FMax == 0 {
		r.FMax = 1.0
	}
	if r.NF == 0 {
		r.NF = 1000
	}
	return r
}

// IrregularParams configures an irregular sea state.
type IrregularParams struct {
	Hs          float64
	Tp          float64
	Seed        uint64
	TRamp       float64
	SimDuration float64
	SimDt       float64
	Spectrum    SpectrumRange
}

// irregularModel precomputes the free-surface elevation on the full
// simulation time grid at construction, then evaluates excitation force
// at arbitrary t by delegating to an excitation.Convolver.
type irregularModel struct {
	dofs   int
	dtSim  float64
	nSteps int
	conv   *excitation.Convolver
}

// NewIrregular builds an irregular sea state excitation model: samples a
// Pierson-Moskowitz spectrum, draws random phases from the given seed,
// precomputes elevation on the simulation time grid with a linear ramp,
// resamples every body's excitation IRF onto dtSim (idempotent, so
// callers may reuse db across models), and wires an excitation.Convolver
// over the result.
func NewIrregular(db *hydrodb.DB, numBodies int, p IrregularParams) (Model, error) {
	if p.SimDt <= 0 {
		return nil, hydroerr.New(hydroerr.ShapeMismatch).WithMessage("wavemodel: SimDt must be positive")
	}
	spec := p.Spectrum.withDefaults()
	freqs := linspace(spec.FMin, spec.FMax, spec.NF)
	df := 0.0
	if spec.NF > 1 {
		df = freqs[1] - freqs[0]
	}

	amps := make([]float64, spec.NF)
	for k, f := range freqs {
		s := piersonMoskowitz(f, p.Hs, p.Tp)
		amps[k] = math.Sqrt(2 * s * df)
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	phases := make([]float64, spec.NF)
	for k := range phases {
		phases[k] = rng.Float64() * 2 * math.Pi
	}

	// The elevation grid sums NF spectral components at every one of
	// nSteps sample times (NF*nSteps calls, easily into the millions for
	// a long irregular-sea run), so the table-backed lookup pays for
	// itself here even though wavemodel's other cosine evaluations stay
	// on math.Cos.
	nSteps := int(p.SimDuration/p.SimDt) + 1
	eta := make([]float64, nSteps)
	for n := 0; n < nSteps; n++ {
		tn := float64(n) * p.SimDt
		sum := 0.0
		for k, f := range freqs {
			sum += amps[k] * dynamo.FastCos(2*math.Pi*f*tn+phases[k])
		}
		ramp := 1.0
		if p.TRamp > 0 {
			ramp = math.Min(1.0, tn/p.TRamp)
		}
		eta[n] = ramp * sum
	}

	for b := 0; b < numBodies; b++ {
		if err := db.ResampleExcitationIRF(b, p.SimDt); err != nil {
			return nil, err
		}
	}

	conv := excitation.New(db, numBodies, p.SimDt, eta)
	return &irregularModel{dofs: 6 * numBodies, dtSim: p.SimDt, nSteps: nSteps, conv: conv}, nil
}

func (m *irregularModel) Mode() Mode { return Irregular }

func (m *irregularModel) Excitation(t float64) ([]float64, error) {
	if t < 0 || t > float64(m.nSteps)*m.dtSim {
		return nil, hydroerr.New(hydroerr.TimeBeyondHorizon).WithMessage("wavemodel: t beyond precomputed elevation grid")
	}
	return m.conv.ForceAll(t)
}
