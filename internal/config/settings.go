package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/fluid-meter/internal/fluid"
)

// ErrInvalidSettings marks a settings document that decoded but cannot be
// used.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the host configuration file.
type Settings struct {
	Window Window `yaml:"window"`

	// Percentage is the initial fill level.
	Percentage float64 `yaml:"percentage"`

	// LevelColor and BackgroundColor are [r, g, b(, a)] arrays applied
	// through the meter's color setters. Empty means the meter defaults.
	LevelColor      []float64 `yaml:"levelColor"`
	BackgroundColor []float64 `yaml:"backgroundColor"`

	Sound Sound `yaml:"sound"`

	Meter fluid.Options `yaml:"meter"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Sound struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 ~ 1.0
}

// Default returns the built-in settings.
func Default() *Settings {
	meter := fluid.DefaultOptions()
	meter.DrawBubbles = true
	return &Settings{
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Percentage: 50,
		Sound: Sound{
			Enabled: true,
			Volume:  0.3,
		},
		Meter: meter,
	}
}

// Load reads a YAML settings file. Keys missing from the file keep their
// defaults.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks ranges that cannot be clamped silently.
func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidSettings, s.Window.Width, s.Window.Height)
	}
	if s.Percentage < 0 || s.Percentage > 100 {
		return fmt.Errorf("%w: percentage %v out of [0, 100]", ErrInvalidSettings, s.Percentage)
	}
	if s.Sound.Volume < 0 || s.Sound.Volume > 1 {
		return fmt.Errorf("%w: sound volume %v out of [0, 1]", ErrInvalidSettings, s.Sound.Volume)
	}
	for name, c := range map[string][]float64{"levelColor": s.LevelColor, "backgroundColor": s.BackgroundColor} {
		if len(c) != 0 && (len(c) < 3 || len(c) > 4) {
			return fmt.Errorf("%w: %s needs 3 or 4 channels, got %d", ErrInvalidSettings, name, len(c))
		}
	}
	return nil
}
