// Package config provides configuration loading and access for the
// wind-field solver and its drivers.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all solver and driver configuration parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Solver    SolverConfig    `yaml:"solver"`
	Scene     SceneConfig     `yaml:"scene"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the simulation grid dimensions.
type GridConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Depth    int     `yaml:"depth"`
	CellSize float64 `yaml:"cell_size"`
}

// SolverConfig holds per-step solver parameters.
type SolverConfig struct {
	DT         float64 `yaml:"dt"`
	Iterations int     `yaml:"iterations"` // projection relaxation count
}

// SceneConfig holds the initial emitter population.
type SceneConfig struct {
	Emitters []EmitterConfig `yaml:"emitters"`
}

// EmitterConfig describes one wind source. Kind is "radial" or
// "directional"; radial emitters use Radius, directional ones use
// HalfExtents, Direction and Rotation. A non-zero Drift gives the
// emitter a velocity; drifting emitters bounce inside the grid's
// world box.
type EmitterConfig struct {
	Kind        string    `yaml:"kind"`
	Position    []float64 `yaml:"position"`
	Radius      float64   `yaml:"radius"`
	HalfExtents []float64 `yaml:"half_extents"`
	Direction   []float64 `yaml:"direction"`
	Rotation    []float64 `yaml:"rotation"` // XYZ Euler, radians
	Strength    float64   `yaml:"strength"`
	Falloff     float64   `yaml:"falloff"`
	Drift       []float64 `yaml:"drift"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds of sim time per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32 // Solver.DT as float32
	CellSize32 float32 // Grid.CellSize as float32
	Iterations int     // Solver.Iterations with the default applied
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Solver.DT)
	c.Derived.CellSize32 = float32(c.Grid.CellSize)

	c.Derived.Iterations = c.Solver.Iterations
	if c.Derived.Iterations <= 0 {
		c.Derived.Iterations = 8
	}

	for i := range c.Scene.Emitters {
		e := &c.Scene.Emitters[i]
		if e.Falloff == 0 {
			e.Falloff = 1
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
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
