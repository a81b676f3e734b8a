package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/animkit/pkg/anim"
)

// PlaybackSettings holds the global playback preferences. They apply to
// every controller the application creates, not to a particular entity.
type PlaybackSettings struct {
	Speed          float64 `yaml:"speed"`          // time scale, 0.0 ~ 4.0
	Loop           bool    `yaml:"loop"`           // loop animations by default
	ActivateOnLoad bool    `yaml:"activateOnLoad"` // auto-play the first clip of a freshly loaded asset
}

// DefaultPlaybackSettings returns the built-in defaults.
func DefaultPlaybackSettings() *PlaybackSettings {
	return &PlaybackSettings{
		Speed:          1.0,
		Loop:           true,
		ActivateOnLoad: true,
	}
}

// SettingsManager loads, saves and keeps the in-memory copy of the
// playback settings.
type SettingsManager struct {
	gdataManager *gdata.Manager // cross-platform storage, may be nil (degraded mode)
	settings     *PlaybackSettings
}

// Storage path constants.
const (
	settingsObject   = "settings"
	settingsProperty = "playback"
)

// NewSettingsManager creates a settings manager instance.
//
// Parameters:
//   - gdataManager: gdata storage manager, may be nil (degraded mode,
//     in-memory settings only)
//
// Returns:
//   - *SettingsManager: the manager instance
//   - error: load failure, does not prevent creation
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultPlaybackSettings(),
	}

	if err := sm.Load(); err != nil {
		// A failed load is not fatal, defaults remain in effect.
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load reads the settings from gdata. When the manager runs in degraded
// mode or nothing has been saved yet, the defaults are restored.
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultPlaybackSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultPlaybackSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultPlaybackSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded PlaybackSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultPlaybackSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save writes the settings to gdata. In degraded mode it is a silent
// no-op.
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings returns the current settings instance.
func (sm *SettingsManager) GetSettings() *PlaybackSettings {
	return sm.settings
}

// SetSpeed sets the global playback time scale, clamped to 0.0 ~ 4.0.
// Only the in-memory copy changes; call Save() to persist.
func (sm *SettingsManager) SetSpeed(speed float64) {
	sm.settings.Speed = clampSpeed(speed)
}

// SetLoop sets the default looping behavior. Only the in-memory copy
// changes; call Save() to persist.
func (sm *SettingsManager) SetLoop(loop bool) {
	sm.settings.Loop = loop
}

// SetActivateOnLoad toggles auto-playing the first clip of a newly
// loaded asset. Only the in-memory copy changes; call Save() to persist.
func (sm *SettingsManager) SetActivateOnLoad(enabled bool) {
	sm.settings.ActivateOnLoad = enabled
}

// Apply pushes the current settings onto a controller.
func (sm *SettingsManager) Apply(c *anim.Controller) {
	c.SetSpeed(sm.settings.Speed)
	c.SetLoop(sm.settings.Loop)
	c.SetActivateOnLoad(sm.settings.ActivateOnLoad)
}

// clampSpeed limits the time scale to the 0.0 ~ 4.0 range.
func clampSpeed(speed float64) float64 {
	if speed < 0.0 {
		return 0.0
	}
	if speed > 4.0 {
		return 4.0
	}
	return speed
}
