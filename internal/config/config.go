// Package config loads the backdrop settings from YAML over embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/quantum-backdrop/internal/quantum"
	"github.com/iburimskiy/quantum-backdrop/internal/typewriter"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalid = errors.New("config: invalid value")

// Config holds every tunable of the backdrop.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Quantum    quantum.Config   `yaml:"quantum"`
	Ambient    AmbientConfig    `yaml:"ambient"`
	Theme      string           `yaml:"theme"`
	Headline   string           `yaml:"headline"`
	Typewriter TypewriterConfig `yaml:"typewriter"`
	Counters   []CounterConfig  `yaml:"counters"`
	Sound      SoundConfig      `yaml:"sound"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	Derived DerivedConfig `yaml:"-"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// SoundConfig controls audio output. Volume is in base-2 volume units;
// 0 leaves the level unchanged.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type AmbientConfig struct {
	Count int `yaml:"count"`
}

type TypewriterConfig struct {
	Phrases []string          `yaml:"phrases"`
	Timing  typewriter.Timing `yaml:"timing"`
}

// CounterConfig is one animated stat counter in the HUD.
type CounterConfig struct {
	Label  string `yaml:"label"`
	Target int    `yaml:"target"`
}

// TelemetryConfig controls perf collection. Window is in ticks and
// LogInterval is how many ticks pass between perf lines; 0 disables them.
type TelemetryConfig struct {
	Window      int    `yaml:"window"`
	LogInterval int    `yaml:"log_interval"`
	OutputDir   string `yaml:"output_dir"`
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	Theme quantum.Theme
}

// Load reads the embedded defaults and overlays the file at path, if any.
// Fields missing from the file keep their default values.
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
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetTheme overrides the initial theme, as the -theme flag does.
func (c *Config) SetTheme(name string) error {
	c.Theme = name
	return c.computeDerived()
}

func (c *Config) computeDerived() error {
	theme, err := quantum.ParseTheme(c.Theme)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	c.Derived.Theme = theme

	switch {
	case c.Window.Width < 1 || c.Window.Height < 1:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Quantum.ParticleCount < 0 || c.Quantum.WaveParticleCount < 0:
		return fmt.Errorf("%w: negative particle count", ErrInvalid)
	case c.Ambient.Count < 0:
		return fmt.Errorf("%w: negative ambient count", ErrInvalid)
	}
	if c.Window.TPS <= 0 {
		c.Window.TPS = 60
	}
	return nil
}

// WriteYAML writes the effective configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
