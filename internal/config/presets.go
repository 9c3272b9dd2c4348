package config

// Presets holds the named end-to-end demo scenarios: a single-sphere decay
// test and a three-body still-water layout, ported from the original
// project's own driver programs, plus a single-sphere regular-wave RAO run.
var Presets = map[string]*Config{
	"sphere_decay": {
		HydroDBPath: "sphere.h5",
		Integrator:  "rk4",
		Dt:          0.02,
		Duration:    30.0,
		WaveMode:    ModeStill,
		Gravity:     [3]float64{0, 0, -DefaultG},
		Bodies: []Body{
			{Name: "body1", Mass: 261.8e3, Pos: [3]float64{0, 0, 0.1}},
		},
	},
	"f3of": {
		HydroDBPath: "f3of.h5",
		Integrator:  "rk4",
		Dt:          0.02,
		Duration:    60.0,
		WaveMode:    ModeStill,
		Gravity:     [3]float64{0, 0, -DefaultG},
		Bodies: []Body{
			{Name: "body1", Mass: 1089825, Pos: [3]float64{0, 0, -9}},
			{Name: "body2", Mass: 179250, Pos: [3]float64{-12.5, 0, -5.5}},
			{Name: "body3", Mass: 179250, Pos: [3]float64{12.5, 0, -5.5}},
		},
	},
	"regular_rao": {
		HydroDBPath: "sphere.h5",
		Integrator:  "rk4",
		Dt:          0.02,
		Duration:    120.0,
		WaveMode:    ModeRegular,
		Gravity:     [3]float64{0, 0, -DefaultG},
		Regular:     RegularConfig{Amplitude: 0.022, Omega: 2.10},
		Bodies: []Body{
			{Name: "body1", Mass: 261.8e3, Pos: [3]float64{0, 0, 0}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist. A copy is returned so callers can freely mutate it (e.g.
// overriding HydroDBPath) without corrupting the shared preset table.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = append([]Body(nil), p.Bodies...)
	return &cfg
}

// ListPresets returns the names of all registered presets.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
