// Package automation drives batches of hostsim runs from a YAML-scripted
// scenario file, or programmatically as a regular-wave RAO frequency
// sweep or a Monte Carlo sea-state stability study.
package automation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/oceanwave/hydrocore/internal/config"
	"github.com/oceanwave/hydrocore/internal/dynamo"
	"github.com/oceanwave/hydrocore/internal/hostsim"
	"github.com/oceanwave/hydrocore/internal/optim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted batch of independent hostsim runs, each with its
// own full run configuration.
type Scenario struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Runs        []NamedRunConfig `yaml:"runs"`
}

// NamedRunConfig pairs a config.Config with a label used to identify it
// in the scenario's results.
type NamedRunConfig struct {
	Name   string        `yaml:"name"`
	Config config.Config `yaml:"config"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// RunScenario executes every run in the scenario in order, stopping at
// the first error or at ctx cancellation.
func RunScenario(ctx context.Context, scenario *Scenario) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		fmt.Printf("Running %d/%d: %s\n", i+1, len(scenario.Runs), run.Name)

		cfg := run.Config
		result, err := hostsim.Run(&cfg)
		if err != nil {
			return results, fmt.Errorf("run %q: %w", run.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// OmegaSweep parameterizes a regular-wave RAO sweep: Base is held fixed
// except WaveMode and Regular.Omega, which are overridden per step.
type OmegaSweep struct {
	Base     *config.Config
	Body     int // 1-based
	OmegaMin float64
	OmegaMax float64
	NumSteps int
}

// SweepResult holds one frequency's RAO estimate.
type SweepResult struct {
	Omega          float64
	HeaveAmplitude float64
}

// RunOmegaSweep runs the regular-wave scenario at NumSteps frequencies
// evenly spaced across [OmegaMin, OmegaMax], via an optim.GridSearch over
// the single "omega" parameter, reporting each run's steady-state heave
// amplitude (the last third of the trajectory, to let startup transients
// settle) as the RAO estimate at that frequency.
func RunOmegaSweep(ctx context.Context, sweep *OmegaSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("automation: NumSteps must be >= 2")
	}

	omegas := make([]float64, sweep.NumSteps)
	step := (sweep.OmegaMax - sweep.OmegaMin) / float64(sweep.NumSteps-1)
	for i := range omegas {
		omegas[i] = sweep.OmegaMin + float64(i)*step
	}

	grid := optim.NewGridSearch([]string{"omega"}, [][]float64{omegas})
	completed := 0

	points := grid.Sweep(ctx, func(ctx context.Context, params map[string]float64) (float64, error) {
		omega := params["omega"]

		cfg := *sweep.Base
		cfg.WaveMode = config.ModeRegular
		cfg.Regular.Omega = omega

		result, err := hostsim.Run(&cfg)
		if err != nil {
			return 0, fmt.Errorf("omega=%.4f: %w", omega, err)
		}

		amp := steadyStateHeaveAmplitude(result, sweep.Body)
		completed++
		fmt.Printf("Sweep %d/%d: omega=%.4f heave_amplitude=%.6f\n", completed, sweep.NumSteps, omega, amp)
		return amp, nil
	})

	results := make([]SweepResult, len(points))
	for i, p := range points {
		results[i] = SweepResult{Omega: p.Params["omega"], HeaveAmplitude: p.Value}
	}
	return results, nil
}

func steadyStateHeaveAmplitude(result *dynamo.Result, body int) float64 {
	n := len(result.States)
	if n == 0 {
		return 0
	}
	tailStart := 2 * n / 3
	maxZ := 0.0
	for _, x := range result.States[tailStart:] {
		z := hostsim.BodyPos(x, body)[2]
		if z > maxZ {
			maxZ = z
		} else if -z > maxZ {
			maxZ = -z
		}
	}
	return maxZ
}

// MonteCarloConfig perturbs an irregular sea state's significant wave
// height across independent trials and checks whether each run stays
// bounded.
type MonteCarloConfig struct {
	Base           *config.Config
	NumTrials      int
	HsPerturbation float64
	Seed           uint64
}

// MonteCarloResult holds one trial's perturbed input and outcome.
type MonteCarloResult struct {
	TrialID int
	Seed    uint64
	Hs      float64
	Stable  bool
}

// RunMonteCarlo runs cfg.NumTrials independent irregular-sea trials
// concurrently via a dynamo.Ensemble, each with an Hs perturbed by up to
// +/-HsPerturbation and a distinct deterministic seed derived from
// cfg.Seed, and reports whether every body's final state stayed within a
// generous bound. Trial Hs values are drawn up front from a single PCG
// stream so the perturbation sequence stays reproducible regardless of
// goroutine scheduling order.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x2545f4914f6cdd1d))

	hsAt := make([]float64, cfg.NumTrials)
	seedAt := make([]uint64, cfg.NumTrials)
	for i := 0; i < cfg.NumTrials; i++ {
		hsAt[i] = cfg.Base.Irregular.Hs + (rng.Float64()-0.5)*2*cfg.HsPerturbation
		seedAt[i] = rng.Uint64()
	}

	ensemble := dynamo.NewEnsemble(func(seed int64) (*dynamo.Result, error) {
		trial := int(seed)
		runCfg := *cfg.Base
		runCfg.WaveMode = config.ModeIrregular
		runCfg.Irregular.Hs = hsAt[trial]
		runCfg.Irregular.Seed = seedAt[trial]
		return hostsim.Run(&runCfg)
	}, cfg.NumTrials, 0)

	runResults, err := ensemble.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("monte carlo ensemble: %w", err)
	}

	results := make([]MonteCarloResult, cfg.NumTrials)
	for trial, result := range runResults {
		results[trial] = MonteCarloResult{
			TrialID: trial,
			Seed:    seedAt[trial],
			Hs:      hsAt[trial],
			Stable:  isBounded(result, 1e6),
		}
	}

	fmt.Printf("Monte Carlo: %d trials complete\n", cfg.NumTrials)
	return results, nil
}

func isBounded(result *dynamo.Result, limit float64) bool {
	if len(result.Errors) > 0 {
		return false
	}
	if len(result.States) == 0 {
		return true
	}
	final := result.States[len(result.States)-1]
	for _, v := range final {
		if v > limit || v < -limit {
			return false
		}
	}
	return true
}

// MonteCarloStats computes summary counts from Monte Carlo results.
func MonteCarloStats(results []MonteCarloResult) (stableCount, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
