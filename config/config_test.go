package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.World.Width <= 0 || cfg.World.Height <= 0 {
		t.Errorf("world size = %vx%v", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Sim.DT <= 0 {
		t.Errorf("dt = %v", cfg.Sim.DT)
	}
	if cfg.Derived.Rose.Name() == "" {
		t.Error("derived rose not resolved")
	}
	if cfg.Derived.Total != cfg.Entities.Full+cfg.Entities.AngleOnly+cfg.Entities.VectorOnly+cfg.Entities.PositionOnly {
		t.Errorf("derived total = %d", cfg.Derived.Total)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := []byte("sim:\n  rose: quadrant\n  seed: 7\nsteering:\n  turn_rate: 90\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Sim.Rose != "quadrant" || cfg.Sim.Seed != 7 {
		t.Errorf("overlay not applied: rose=%q seed=%d", cfg.Sim.Rose, cfg.Sim.Seed)
	}
	if cfg.Derived.Rose.Name() != "quadrant" {
		t.Errorf("derived rose = %q", cfg.Derived.Rose.Name())
	}
	// Fields absent from the overlay keep their defaults.
	defaults, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.World.Width != defaults.World.Width {
		t.Errorf("width = %v, default %v", cfg.World.Width, defaults.World.Width)
	}
	if cfg.Steering.Speed != defaults.Steering.Speed {
		t.Errorf("speed = %v, default %v", cfg.Steering.Speed, defaults.Steering.Speed)
	}
}

func TestLoadUnknownRose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sim:\n  rose: wheel\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted an unknown rose")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Sim.Seed = 99

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(written): %v", err)
	}
	if loaded.Sim.Seed != 99 {
		t.Errorf("seed = %d, want 99", loaded.Sim.Seed)
	}
}
