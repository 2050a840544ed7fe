// Package config provides configuration loading and access for the blossom scene.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/sakura/wave"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Waves     WavesConfig     `yaml:"waves"`
	Field     FieldConfig     `yaml:"field"`
	Probe     ProbeConfig     `yaml:"probe"`
	Style     StyleConfig     `yaml:"style"`
	Ground    GroundConfig    `yaml:"ground"`
	Assets    AssetsConfig    `yaml:"assets"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds the parallax camera rig.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"` // Home position the camera eases back to
	Target   [3]float32 `yaml:"target"`
	Fovy     float32    `yaml:"fovy"`     // Vertical field of view in degrees
	Parallax float32    `yaml:"parallax"` // World units of offset at the screen edge
	Easing   float32    `yaml:"easing"`   // Fraction of the remaining offset covered per frame
}

// WavesConfig holds the initial water uniforms.
// These are shared by the water shader and the CPU elevation mirror.
type WavesConfig struct {
	Amplitude   float64 `yaml:"amplitude"`
	Speed       float64 `yaml:"speed"`
	Frequency   float64 `yaml:"frequency"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Iterations  int     `yaml:"iterations"`
	Noise       string  `yaml:"noise"` // "ripple" (matches the shader) or "simplex"
	Seed        int64   `yaml:"seed"`  // Simplex seed
}

// FieldConfig holds blossom field parameters.
type FieldConfig struct {
	Amount               int     `yaml:"amount"`
	HighlightRadius      float32 `yaml:"highlight_radius"`
	SpawnExtent          float32 `yaml:"spawn_extent"`           // Side of the square spawn area centred on the origin
	MinSeparation        float32 `yaml:"min_separation"`         // Minimum planar distance between spawn points
	MaxPlacementAttempts int     `yaml:"max_placement_attempts"` // Per instance; 0 = package default
	DriftCoefficient     float32 `yaml:"drift_coefficient"`
	WrapMin              float32 `yaml:"wrap_min"`
	WrapMax              float32 `yaml:"wrap_max"`
	ElevationScale       float32 `yaml:"elevation_scale"`
	VerticalBias         float32 `yaml:"vertical_bias"`
	SpinMultiplier       float32 `yaml:"spin_multiplier"`
	Tilt                 float32 `yaml:"tilt"` // Fixed X rotation in radians (flower faces up)
	OverlayLift          float32 `yaml:"overlay_lift"`
}

// ProbeConfig holds pointer picking parameters.
type ProbeConfig struct {
	Interval    time.Duration `yaml:"interval"`
	PlaneHeight float64       `yaml:"plane_height"`
	PlaneExtent float64       `yaml:"plane_extent"` // Half-size of the picking plane; 0 = infinite
}

// VariantStyle is the scale multiplier and tint for one visual state.
type VariantStyle struct {
	Scale float32    `yaml:"scale"`
	Color [3]float32 `yaml:"color"`
}

// StyleConfig holds the per-state blossom styling.
type StyleConfig struct {
	Normal      VariantStyle `yaml:"normal"`
	Highlighted VariantStyle `yaml:"highlighted"`
	Selected    VariantStyle `yaml:"selected"`
}

// GroundConfig holds the sand plane parameters.
type GroundConfig struct {
	Height        float32 `yaml:"height"`
	Size          float32 `yaml:"size"`
	TextureRepeat float32 `yaml:"texture_repeat"`
	TextureSize   int     `yaml:"texture_size"` // Procedural fallback texture resolution
}

// AssetsConfig holds asset paths. Missing assets are skipped, not fatal.
type AssetsConfig struct {
	Model  string `yaml:"model"`
	AOMap  string `yaml:"ao_map"`
	Sand   string `yaml:"sand"`
	Quotes string `yaml:"quotes"` // Empty = embedded quote table
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int `yaml:"perf_window"`
	LogInterval int `yaml:"log_interval"` // Frames between perf log lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
	Aspect    float32
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

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the field cannot be built from.
func (c *Config) validate() error {
	var errs []error
	if c.Field.Amount < 0 {
		errs = append(errs, fmt.Errorf("field.amount must be >= 0, got %d", c.Field.Amount))
	}
	if c.Field.HighlightRadius <= 0 {
		errs = append(errs, fmt.Errorf("field.highlight_radius must be > 0, got %g", c.Field.HighlightRadius))
	}
	if c.Field.SpawnExtent <= 0 {
		errs = append(errs, fmt.Errorf("field.spawn_extent must be > 0, got %g", c.Field.SpawnExtent))
	}
	if c.Field.MinSeparation <= 0 {
		errs = append(errs, fmt.Errorf("field.min_separation must be > 0, got %g", c.Field.MinSeparation))
	}
	if c.Field.WrapMax <= c.Field.WrapMin {
		errs = append(errs, fmt.Errorf("field.wrap_max (%g) must exceed field.wrap_min (%g)", c.Field.WrapMax, c.Field.WrapMin))
	}
	if c.Waves.Iterations < 0 || c.Waves.Iterations > wave.MaxIterations {
		errs = append(errs, fmt.Errorf("waves.iterations must be in [0, %d], got %d", wave.MaxIterations, c.Waves.Iterations))
	}
	switch c.Waves.Noise {
	case "ripple", "simplex":
	default:
		errs = append(errs, fmt.Errorf("waves.noise must be ripple or simplex, got %q", c.Waves.Noise))
	}
	if c.Probe.Interval < 0 {
		errs = append(errs, fmt.Errorf("probe.interval must be >= 0, got %s", c.Probe.Interval))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	if c.Screen.Height > 0 {
		c.Derived.Aspect = c.Derived.ScreenW32 / c.Derived.ScreenH32
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
