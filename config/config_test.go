package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Predator.VisionRadius != 8 {
		t.Errorf("vision_radius = %d, want 8", cfg.Predator.VisionRadius)
	}
	if cfg.Predator.ChargeDistance != 3 {
		t.Errorf("charge_distance = %d, want 3", cfg.Predator.ChargeDistance)
	}
	if cfg.Predator.MaxEnergy != 18 {
		t.Errorf("max_energy = %d, want 18", cfg.Predator.MaxEnergy)
	}
	if cfg.Derived.ChargeSq != 9 {
		t.Errorf("derived charge_sq = %d, want 9", cfg.Derived.ChargeSq)
	}
	if cfg.Derived.Cells != cfg.World.Width*cfg.World.Height {
		t.Errorf("derived cells = %d, want %d", cfg.Derived.Cells, cfg.World.Width*cfg.World.Height)
	}
	if cfg.Derived.CellSize < 1 {
		t.Errorf("derived cell size = %d, want >= 1", cfg.Derived.CellSize)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("world:\n  width: 10\n  height: 10\npopulation:\n  predators: 2\n  herbivores: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.World.Width != 10 || cfg.World.Height != 10 {
		t.Errorf("world = %dx%d, want 10x10", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Population.Predators != 2 {
		t.Errorf("predators = %d, want 2", cfg.Population.Predators)
	}
	// Untouched sections keep their defaults
	if cfg.Predator.BirthCost != 4 {
		t.Errorf("birth_cost = %d, want default 4", cfg.Predator.BirthCost)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "world:\n  width: 0\n"},
		{"overpopulated", "world:\n  width: 2\n  height: 2\npopulation:\n  predators: 3\n  herbivores: 3\n"},
		{"plant density", "population:\n  plant_density: 1.5\n"},
		{"stats window", "telemetry:\n  stats_window: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.Predator.EatBase = 11

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot failed: %v", err)
	}
	if loaded.Predator.EatBase != 11 {
		t.Errorf("eat_base = %d, want 11", loaded.Predator.EatBase)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if r := recover(); r == nil {
			t.Error("expected panic from Cfg() before Init()")
		}
	}()
	Cfg()
}
