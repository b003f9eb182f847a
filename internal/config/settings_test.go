package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meter.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeFile(t, `
percentage: 72
levelColor: [0, 128, 0]
meter:
  borderWidth: 10
  drawText: false
  foregroundLayer:
    maxAmplitude: 4
`)
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	def := Default()

	if s.Percentage != 72 {
		t.Errorf("percentage = %v", s.Percentage)
	}
	if len(s.LevelColor) != 3 || s.LevelColor[1] != 128 {
		t.Errorf("levelColor = %v", s.LevelColor)
	}
	if s.Meter.BorderWidth != 10 || s.Meter.DrawText {
		t.Errorf("meter overrides not applied: %+v", s.Meter)
	}
	if s.Meter.ForegroundLayer.MaxAmplitude != 4 {
		t.Errorf("layer amplitude = %v", s.Meter.ForegroundLayer.MaxAmplitude)
	}
	if s.Meter.ForegroundLayer.Frequency != def.Meter.ForegroundLayer.Frequency {
		t.Errorf("layer frequency lost its default: %v", s.Meter.ForegroundLayer.Frequency)
	}
	if s.Window != def.Window || s.Sound != def.Sound {
		t.Errorf("untouched sections changed: %+v %+v", s.Window, s.Sound)
	}
	if !s.Meter.DrawShadow || s.Meter.BackgroundColor != def.Meter.BackgroundColor {
		t.Errorf("meter defaults lost: %+v", s.Meter)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Window.Width != WindowWidth || s.Percentage != 50 {
		t.Errorf("defaults = %+v", s)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"syntax", "percentage: [", false},
		{"percentage", "percentage: 140", true},
		{"window", "window: {width: 0}", true},
		{"volume", "sound: {volume: 2}", true},
		{"color", "backgroundColor: [1, 2]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrInvalidSettings); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalidSettings) = %v for %v", got, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meter.log")
	log, err := NewLogger(true, path)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("debug logger wrote nothing")
	}

	if _, err := NewLogger(false, "off"); err != nil {
		t.Errorf("off: %v", err)
	}
}
