// Package config provides configuration loading and access for the
// heading simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/bearing/orientation"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Sim       SimConfig       `yaml:"sim"`
	Steering  SteeringConfig  `yaml:"steering"`
	Entities  EntitiesConfig  `yaml:"entities"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds simulation world dimensions.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SimConfig holds update-cycle parameters.
type SimConfig struct {
	DT    float64 `yaml:"dt"`    // seconds per tick
	Ticks int     `yaml:"ticks"` // default run length (0 = run until stopped)
	Seed  int64   `yaml:"seed"`  // RNG seed (0 = time-based)
	Rose  string  `yaml:"rose"`  // compass rose used for snapping
}

// SteeringConfig holds the demo behavior parameters.
type SteeringConfig struct {
	TurnRate       float64 `yaml:"turn_rate"`       // degrees per second
	Speed          float64 `yaml:"speed"`           // world units per second
	WaypointRadius float64 `yaml:"waypoint_radius"` // arrival distance
	SpinInterval   int     `yaml:"spin_interval"`   // ticks between external transform spins (0 = never)
}

// EntitiesConfig holds how many entities of each bundle shape to spawn.
// The mixed shapes exercise the optional-component handling of the
// sync systems.
type EntitiesConfig struct {
	Full         int `yaml:"full"`          // heading + facing + position + transform
	AngleOnly    int `yaml:"angle_only"`    // heading + transform
	VectorOnly   int `yaml:"vector_only"`   // facing + transform
	PositionOnly int `yaml:"position_only"` // position + transform
}

// TelemetryConfig holds CSV output settings.
type TelemetryConfig struct {
	OutputDir      string `yaml:"output_dir"`      // empty = disabled
	CensusInterval int    `yaml:"census_interval"` // ticks between census rows
	PerfInterval   int    `yaml:"perf_interval"`   // ticks between perf rows
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Rose     orientation.Rose     // resolved from Sim.Rose
	TurnStep orientation.Rotation // turn rate scaled to one tick
	StepDist float64              // movement per tick
	Total    int                  // total entities across all shapes
}

// Load reads configuration, starting from the embedded defaults and
// overlaying the file at path if one is given.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	rose, ok := orientation.RoseByName(c.Sim.Rose)
	if !ok {
		return fmt.Errorf("unknown compass rose %q", c.Sim.Rose)
	}
	c.Derived.Rose = rose
	c.Derived.TurnStep = orientation.FromDegrees(c.Steering.TurnRate * c.Sim.DT)
	c.Derived.StepDist = c.Steering.Speed * c.Sim.DT
	c.Derived.Total = c.Entities.Full + c.Entities.AngleOnly +
		c.Entities.VectorOnly + c.Entities.PositionOnly
	return nil
}

// WriteYAML saves the configuration to a file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
