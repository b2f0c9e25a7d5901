// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Bubble    BubbleConfig    `yaml:"bubble"`
	Cannon    CannonConfig    `yaml:"cannon"`
	Grid      GridConfig      `yaml:"grid"`
	Score     ScoreConfig     `yaml:"score"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds the logical canvas and display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// BubbleConfig holds bubble geometry and kinematics.
type BubbleConfig struct {
	Radius           float64 `yaml:"radius"`            // Logical px
	OverlapTolerance float64 `yaml:"overlap_tolerance"` // Subtracted from sum-of-radii contact threshold
	ShotSpeed        float64 `yaml:"shot_speed"`        // px per tick for a fired bubble
	FallSpeed        float64 `yaml:"fall_speed"`        // Downward px per tick for detached bubbles
	PopFrames        int     `yaml:"pop_frames"`        // Pop animation countdown length
	Colors           int     `yaml:"colors"`            // Palette size (capped at the built-in palette)
}

// CannonConfig holds cannon placement.
type CannonConfig struct {
	OffsetY float64 `yaml:"offset_y"` // Cannon pivot height above the bottom edge
}

// GridConfig holds initial layout and loss/ceiling thresholds.
type GridConfig struct {
	InitialRows      int     `yaml:"initial_rows"`
	LossLineOffset   float64 `yaml:"loss_line_offset"`  // Loss line height above the bottom edge
	CeilingDiameters float64 `yaml:"ceiling_diameters"` // Anchor threshold in bubble diameters from the top
}

// ScoreConfig holds scoring constants.
type ScoreConfig struct {
	Pop  int `yaml:"pop"`  // Per popped bubble
	Drop int `yaml:"drop"` // Per dropped (floating) bubble
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Window size in seconds
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Radius32    float32 // Bubble.Radius as float32
	Diameter32  float32 // 2 * radius
	ScreenW32   float32
	ScreenH32   float32
	RowHeight32 float32 // diameter * sqrt(3)/2
	Cols        int     // Bubbles per even row
	CannonX     float32 // Cannon pivot position
	CannonY     float32
	LossLineY   float32 // Grid bubbles whose lower edge reaches this line lose the game
	CeilingY    float32 // Grid bubbles above this line anchor the grid
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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

	cfg.ComputeDerived()

	return cfg, nil
}

// ComputeDerived calculates values derived from loaded config.
// Tests that mutate geometry fields must call it again afterwards.
func (c *Config) ComputeDerived() {
	r := float32(c.Bubble.Radius)
	c.Derived.Radius32 = r
	c.Derived.Diameter32 = 2 * r
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.RowHeight32 = 2 * r * 0.8660254 // diameter * sqrt(3)/2
	c.Derived.Cols = int(float32(c.Screen.Width) / (2 * r))
	c.Derived.CannonX = c.Derived.ScreenW32 / 2
	c.Derived.CannonY = c.Derived.ScreenH32 - float32(c.Cannon.OffsetY)
	c.Derived.LossLineY = c.Derived.ScreenH32 - float32(c.Grid.LossLineOffset)
	c.Derived.CeilingY = float32(c.Grid.CeilingDiameters) * c.Derived.Diameter32
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
