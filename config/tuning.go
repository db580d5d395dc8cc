// Package config loads optional tuning overrides from a JSON file
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/pulsefield/engine"
	"github.com/lixenwraith/pulsefield/parameter"
)

// maxFileSize bounds the tuning file, anything larger is not a tuning file
const maxFileSize = 1 * 1024 * 1024

// TuningConfig is the on-disk tuning schema
// Every field is optional, nil keeps the built-in default
type TuningConfig struct {
	SpotRadius       *float64 `json:"spot_radius,omitempty"`
	RadiusBoost      *float64 `json:"radius_boost,omitempty"`
	InitialOpacity   *float64 `json:"initial_opacity,omitempty"`
	Decrement        *float64 `json:"decrement,omitempty"`
	OpacityThreshold *float64 `json:"opacity_threshold,omitempty"`
	Cooldown         *string  `json:"cooldown,omitempty"` // duration string like "1s"
	SoundStrength    *float64 `json:"sound_strength,omitempty"`
	PlaceClearance   *float64 `json:"place_clearance,omitempty"` // plane units, not squared

	TickInterval *string `json:"tick_interval,omitempty"` // duration string like "16ms"
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// DefaultTuningConfig returns a fully populated config mirroring the built-in defaults
func DefaultTuningConfig() *TuningConfig {
	d := engine.DefaultTuning()
	return &TuningConfig{
		SpotRadius:       ptrFloat64(d.SpotRadius),
		RadiusBoost:      ptrFloat64(d.RadiusBoost),
		InitialOpacity:   ptrFloat64(d.InitialOpacity),
		Decrement:        ptrFloat64(d.Decrement),
		OpacityThreshold: ptrFloat64(d.OpacityThreshold),
		Cooldown:         ptrString(d.Cooldown.String()),
		SoundStrength:    ptrFloat64(d.SoundStrength),
		PlaceClearance:   ptrFloat64(math.Sqrt(d.PlaceClearance)),
		TickInterval:     ptrString(parameter.TickInterval.String()),
	}
}

// LoadTuningConfig reads a partial config from a .json file under 1MB
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &TuningConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Write encodes the config as indented JSON, the format LoadTuningConfig reads
func (c *TuningConfig) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Validate checks field syntax and that the merged tuning is usable
func (c *TuningConfig) Validate() error {
	if c.Cooldown != nil {
		if _, err := time.ParseDuration(*c.Cooldown); err != nil {
			return fmt.Errorf("invalid cooldown '%s': %w", *c.Cooldown, err)
		}
	}
	if c.TickInterval != nil {
		d, err := time.ParseDuration(*c.TickInterval)
		if err != nil {
			return fmt.Errorf("invalid tick_interval '%s': %w", *c.TickInterval, err)
		}
		if d <= 0 {
			return fmt.Errorf("tick_interval must be positive, got %s", d)
		}
	}
	if c.PlaceClearance != nil && *c.PlaceClearance < 0 {
		return fmt.Errorf("place_clearance must be non-negative, got %g", *c.PlaceClearance)
	}
	return c.Apply(engine.DefaultTuning()).Validate()
}

// Apply overlays the set fields onto base
// Durations are assumed valid, call Validate first
func (c *TuningConfig) Apply(base engine.Tuning) engine.Tuning {
	t := base
	if c.SpotRadius != nil {
		t.SpotRadius = *c.SpotRadius
	}
	if c.RadiusBoost != nil {
		t.RadiusBoost = *c.RadiusBoost
	}
	if c.InitialOpacity != nil {
		t.InitialOpacity = *c.InitialOpacity
	}
	if c.Decrement != nil {
		t.Decrement = *c.Decrement
	}
	if c.OpacityThreshold != nil {
		t.OpacityThreshold = *c.OpacityThreshold
	}
	if c.Cooldown != nil {
		if d, err := time.ParseDuration(*c.Cooldown); err == nil {
			t.Cooldown = d
		}
	}
	if c.SoundStrength != nil {
		t.SoundStrength = *c.SoundStrength
	}
	if c.PlaceClearance != nil {
		t.PlaceClearance = *c.PlaceClearance * *c.PlaceClearance
	}
	return t
}

// GetTickInterval returns the loop interval, falling back to the default
func (c *TuningConfig) GetTickInterval() time.Duration {
	if c.TickInterval != nil {
		if d, err := time.ParseDuration(*c.TickInterval); err == nil && d > 0 {
			return d
		}
	}
	return parameter.TickInterval
}
