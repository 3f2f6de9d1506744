// Package config holds the injected visualization tunables and loads them
// from an optional JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/texture"
)

// DefaultPath is the settings file looked up when no path is given.
const DefaultPath = "orrery.json"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of tunables. Fields absent from a settings file
// keep their defaults.
type Config struct {
	DistanceScale       float64            `json:"distanceScale"`
	DistanceCompression float64            `json:"distanceCompression"`
	OrbitOffset         float64            `json:"orbitOffset"`
	TimeScale           float64            `json:"timeScale"`
	Seeds               map[string]float64 `json:"seeds,omitempty"`
}

// Default returns the built-in tunables.
func Default() Config {
	o := orbit.DefaultConfig()
	return Config{
		DistanceScale:       o.DistanceScale,
		DistanceCompression: o.DistanceCompression,
		OrbitOffset:         o.OrbitOffset,
		TimeScale:           o.TimeScale,
	}
}

// Load reads path over the defaults. A missing file is not an error; found
// reports whether the file existed.
func Load(path string) (cfg Config, found bool, err error) {
	cfg = Default()
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, true, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, true, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, true, nil
}

// Validate checks that every tunable is usable.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"distanceScale", c.DistanceScale},
		{"distanceCompression", c.DistanceCompression},
		{"timeScale", c.TimeScale},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.v)
		}
	}
	if !(c.OrbitOffset >= 0) || math.IsInf(c.OrbitOffset, 0) {
		return fmt.Errorf("%w: orbitOffset must be non-negative, got %v", ErrInvalid, c.OrbitOffset)
	}

	var unknown []string
	for k, v := range c.Seeds {
		if !texture.IsSeedKey(k) {
			unknown = append(unknown, k)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: seed %s is not finite", ErrInvalid, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown seed keys %v", ErrInvalid, unknown)
	}
	return nil
}

// Orbit returns the solver configuration.
func (c Config) Orbit() orbit.Config {
	return orbit.Config{
		DistanceScale:       c.DistanceScale,
		DistanceCompression: c.DistanceCompression,
		OrbitOffset:         c.OrbitOffset,
		TimeScale:           c.TimeScale,
	}
}

// SeedTable returns the default seed table with the configured overrides applied.
func (c Config) SeedTable() texture.SeedTable {
	t := texture.DefaultSeeds()
	for k, v := range c.Seeds {
		t[k] = v
	}
	return t
}

// Write saves the config as indented JSON.
func (c Config) Write(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
