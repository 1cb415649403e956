package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/bearing/config"
	"github.com/pthm-cable/bearing/sim"
	"github.com/pthm-cable/bearing/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	ticks := flag.Int("ticks", 0, "Run for N ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config; config 0 = time-based)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Flag overrides
	if *ticks > 0 {
		cfg.Sim.Ticks = *ticks
	}
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}
	if cfg.Sim.Seed == 0 {
		cfg.Sim.Seed = time.Now().UnixNano()
	}

	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"ticks", cfg.Sim.Ticks,
		"seed", cfg.Sim.Seed,
		"rose", cfg.Sim.Rose,
	)

	s := sim.New(cfg, out)
	s.Run(cfg.Sim.Ticks)
}
