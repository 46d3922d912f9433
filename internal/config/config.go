// Package config loads the per-run pipeline configuration. Values come from
// an optional JSON file; unset fields keep the documented defaults, and the
// cmd binaries layer flag overrides on top.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Mewyer/innagrika/internal/terrain"
)

// Config holds every knob that is fixed for the duration of a run.
// Pointer fields distinguish "absent from the file" from explicit zeros,
// so partial config files only override what they mention.
type Config struct {
	// Grid construction
	Resolution  *int     `json:"resolution,omitempty"`   // scattered-path grid edge (default 100)
	HeightScale *float64 `json:"height_scale,omitempty"` // matrix elevation multiplier (default 1)

	// Moisture dynamics
	EvaporationRate *float64 `json:"evaporation_rate,omitempty"`
	IrrigationRate  *float64 `json:"irrigation_rate,omitempty"`
	DrainageRate    *float64 `json:"drainage_rate,omitempty"`
	Radius          *int     `json:"radius,omitempty"`

	// Run shape
	Steps     *int    `json:"steps,omitempty"`
	OutputDir *string `json:"output_dir,omitempty"`
}

// Runtime defaults applied where the file is silent.
const (
	DefaultSteps     = 50
	DefaultOutputDir = "out"
)

// Load reads a JSON config file. An empty path returns an empty config (all
// defaults). Unknown fields are rejected so typos fail loudly.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects values no run can use.
func (c *Config) Validate() error {
	if c.Resolution != nil && *c.Resolution < 2 {
		return fmt.Errorf("resolution must be at least 2, got %d", *c.Resolution)
	}
	if c.Radius != nil && *c.Radius < 0 {
		return fmt.Errorf("radius must not be negative, got %d", *c.Radius)
	}
	if c.Steps != nil && *c.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", *c.Steps)
	}
	for name, v := range map[string]*float64{
		"evaporation_rate": c.EvaporationRate,
		"irrigation_rate":  c.IrrigationRate,
		"drainage_rate":    c.DrainageRate,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must not be negative, got %g", name, *v)
		}
	}
	return nil
}

// BuilderConfig resolves the grid-construction knobs.
func (c *Config) BuilderConfig() terrain.BuilderConfig {
	out := terrain.BuilderConfig{Resolution: terrain.DefaultResolution, HeightScale: 1}
	if c.Resolution != nil {
		out.Resolution = *c.Resolution
	}
	if c.HeightScale != nil {
		out.HeightScale = *c.HeightScale
	}
	return out
}

// SimConfig resolves the moisture-dynamics knobs.
func (c *Config) SimConfig() terrain.SimConfig {
	out := terrain.DefaultSimConfig()
	if c.EvaporationRate != nil {
		out.EvaporationRate = *c.EvaporationRate
	}
	if c.IrrigationRate != nil {
		out.IrrigationRate = *c.IrrigationRate
	}
	if c.DrainageRate != nil {
		out.DrainageRate = *c.DrainageRate
	}
	if c.Radius != nil {
		out.Radius = *c.Radius
	}
	return out
}

// RunSteps resolves the simulation tick count.
func (c *Config) RunSteps() int {
	if c.Steps != nil {
		return *c.Steps
	}
	return DefaultSteps
}

// RunOutputDir resolves the artifact directory.
func (c *Config) RunOutputDir() string {
	if c.OutputDir != nil && *c.OutputDir != "" {
		return *c.OutputDir
	}
	return DefaultOutputDir
}
