// Package config loads and holds the YAML-backed run configuration for a
// hydrodynamic simulation: which wave mode to drive, the hydrodynamic
// database to load, body layout, and the integration schedule.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.02
	DefaultDuration    = 60.0
	DefaultRho         = 1000.0
	DefaultG           = 9.81
	DefaultSpectrumMin = 0.001
	DefaultSpectrumMax = 1.0
	DefaultSpectrumN   = 1000
)

// WaveMode names one of the three excitation variants.
type WaveMode string

const (
	ModeStill     WaveMode = "still"
	ModeRegular   WaveMode = "regular"
	ModeIrregular WaveMode = "irregular"
)

// Body describes one body's static layout for the host-side demo: its
// name (matches bodyN in the hydrodynamic database), rigid-body mass, and
// initial world-frame position.
type Body struct {
	Name string     `yaml:"name"`
	Mass float64    `yaml:"mass"`
	Pos  [3]float64 `yaml:"pos"`
}

// RegularConfig parameterizes the closed-form monochromatic wave.
type RegularConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Omega     float64 `yaml:"omega"`
}

// IrregularConfig parameterizes the Pierson-Moskowitz sea state.
type IrregularConfig struct {
	Hs           float64 `yaml:"hs"`
	Tp           float64 `yaml:"tp"`
	Seed         uint64  `yaml:"seed"`
	RampDuration float64 `yaml:"ramp_duration"`
	SpectrumMin  float64 `yaml:"spectrum_min"`
	SpectrumMax  float64 `yaml:"spectrum_max"`
	SpectrumN    int     `yaml:"spectrum_n"`
}

// Config is the full run configuration for one simulation.
type Config struct {
	HydroDBPath string          `yaml:"hydro_db_path"`
	Integrator  string          `yaml:"integrator"`
	Dt          float64         `yaml:"dt"`
	Duration    float64         `yaml:"duration"`
	WaveMode    WaveMode        `yaml:"wave_mode"`
	Regular     RegularConfig   `yaml:"regular"`
	Irregular   IrregularConfig `yaml:"irregular"`
	Gravity     [3]float64      `yaml:"gravity"`
	Bodies      []Body          `yaml:"bodies"`
}

// DefaultConfig returns a still-water configuration with no bodies, the
// standard gravity vector and RK4 integration.
func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		WaveMode:   ModeStill,
		Gravity:    [3]float64{0, 0, -DefaultG},
		Irregular: IrregularConfig{
			SpectrumMin: DefaultSpectrumMin,
			SpectrumMax: DefaultSpectrumMax,
			SpectrumN:   DefaultSpectrumN,
		},
	}
}

// NumBodies returns the number of bodies configured.
func (c *Config) NumBodies() int { return len(c.Bodies) }

// Load reads a YAML config file, applying DefaultConfig as the base for
// any field the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
