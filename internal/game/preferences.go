package game

import (
	"fmt"
	"slices"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	preferencesObject   = "preferences"
	preferencesProperty = "meter"
)

// Preferences is what the desktop host remembers between runs.
type Preferences struct {
	Percentage  float64   `yaml:"percentage"`
	LevelColor  []float64 `yaml:"levelColor,omitempty"`
	DrawBubbles bool      `yaml:"drawBubbles"`
	Muted       bool      `yaml:"muted"`
}

// PreferencesManager loads and saves Preferences through gdata. A nil
// gdata manager keeps preferences in memory only.
type PreferencesManager struct {
	gdataManager *gdata.Manager
	log          *zap.Logger
	defaults     Preferences
	prefs        Preferences
}

// NewPreferencesManager loads saved preferences over defaults. A failed
// load is logged and leaves the defaults in place.
func NewPreferencesManager(m *gdata.Manager, defaults Preferences, log *zap.Logger) *PreferencesManager {
	pm := &PreferencesManager{
		gdataManager: m,
		log:          log,
		defaults:     defaults,
	}
	if err := pm.Load(); err != nil {
		log.Warn("failed to load preferences, using defaults", zap.Error(err))
	}
	return pm
}

func (pm *PreferencesManager) Load() error {
	pm.prefs = pm.defaults
	pm.prefs.LevelColor = slices.Clone(pm.defaults.LevelColor)

	if pm.gdataManager == nil || !pm.gdataManager.ObjectPropExists(preferencesObject, preferencesProperty) {
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(preferencesObject, preferencesProperty)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	loaded := pm.prefs
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	pm.prefs = loaded
	pm.log.Debug("preferences loaded", zap.Float64("percentage", loaded.Percentage))
	return nil
}

func (pm *PreferencesManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&pm.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(preferencesObject, preferencesProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	pm.log.Debug("preferences saved")
	return nil
}

func (pm *PreferencesManager) Get() Preferences {
	p := pm.prefs
	p.LevelColor = slices.Clone(pm.prefs.LevelColor)
	return p
}

func (pm *PreferencesManager) SetPercentage(p float64) {
	pm.prefs.Percentage = min(max(p, 0), 100)
}

func (pm *PreferencesManager) SetLevelColor(c []float64) {
	pm.prefs.LevelColor = slices.Clone(c)
}

func (pm *PreferencesManager) SetDrawBubbles(draw bool) {
	pm.prefs.DrawBubbles = draw
}

func (pm *PreferencesManager) SetMuted(muted bool) {
	pm.prefs.Muted = muted
}
