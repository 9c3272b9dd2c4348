package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", cfg.Integrator)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.WaveMode != ModeStill {
		t.Errorf("expected default wave mode still, got %s", cfg.WaveMode)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("sphere_decay")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.NumBodies() != 1 {
		t.Errorf("expected 1 body, got %d", cfg.NumBodies())
	}
	if cfg.WaveMode != ModeStill {
		t.Errorf("expected still water, got %s", cfg.WaveMode)
	}
}

func TestGetPresetNotFound(t *testing.T) {
	cfg := GetPreset("nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPresetReturnsIndependentCopy(t *testing.T) {
	a := GetPreset("f3of")
	b := GetPreset("f3of")

	a.Bodies[0].Mass = -1
	if b.Bodies[0].Mass == -1 {
		t.Error("GetPreset must return an independent copy, mutation leaked into the shared table")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected at least one preset")
	}

	found := false
	for _, name := range presets {
		if name == "f3of" {
			found = true
		}
	}
	if !found {
		t.Error("expected f3of preset to be listed")
	}
}

func TestNumBodies(t *testing.T) {
	cfg := GetPreset("f3of")
	if got := cfg.NumBodies(); got != 3 {
		t.Errorf("expected 3 bodies, got %d", got)
	}
}
