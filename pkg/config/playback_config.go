package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlaybackConfigFile holds per-animation playback overrides loaded from a
// YAML file. Animations not listed fall back to controller defaults.
type PlaybackConfigFile struct {
	Version    string                     `yaml:"version"`
	Animations map[string]AnimationConfig `yaml:"animations"`
}

// AnimationConfig describes playback overrides for a single animation.
// Pointer fields distinguish "unset" from an explicit zero value.
type AnimationConfig struct {
	BlendSeconds *float64 `yaml:"blend_seconds"` // cross-fade duration when switching to this animation
	Loop         *bool    `yaml:"loop"`          // nil means use the controller default
	Speed        *float64 `yaml:"speed"`         // nil means use the controller default
	Description  string   `yaml:"description"`
}

// LoadPlaybackConfig reads and parses a playback config file.
func LoadPlaybackConfig(path string) (*PlaybackConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read playback config '%s': %w", path, err)
	}

	cfg := &PlaybackConfigFile{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse playback config '%s': %w", path, err)
	}

	if cfg.Version == "" {
		return nil, fmt.Errorf("playback config '%s' has no version field", path)
	}

	return cfg, nil
}

// Animation looks up the overrides for a named animation.
func (c *PlaybackConfigFile) Animation(name string) (AnimationConfig, bool) {
	if c == nil {
		return AnimationConfig{}, false
	}
	ac, ok := c.Animations[name]
	return ac, ok
}

// BlendSecondsFor returns the configured cross-fade duration for an
// animation, or the given fallback when it has none.
func (c *PlaybackConfigFile) BlendSecondsFor(name string, fallback float64) float64 {
	ac, ok := c.Animation(name)
	if !ok || ac.BlendSeconds == nil {
		return fallback
	}
	return *ac.BlendSeconds
}
