package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the top-level clip asset manifest loaded
// from YAML. It defines which clip files the engine may bind and the
// id each is tracked under.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	clips:
//	  - id: CLIP_SOLDIER
//	    path: clips/soldier.clip
//	  - id: CLIP_CIVILIAN
//	    path: clips/civilian.clip
type ResourceConfig struct {
	Version  string         `yaml:"version"`   // Configuration file version
	BasePath string         `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Clips    []ClipResource `yaml:"clips"`     // Clip file resources
}

// ClipResource is a single clip file definition. One file may contain
// several takes; all of them are registered when the asset resolves.
type ClipResource struct {
	// ID is the unique asset identifier (e.g., "CLIP_SOLDIER")
	ID string `yaml:"id"`

	// Path is the file path relative to base_path (e.g., "clips/soldier.clip")
	Path string `yaml:"path"`
}

// LoadResourceConfig reads and parses a manifest file.
//
// Parameters:
//   - path: The manifest path, e.g., "assets/config/resources.yaml"
//
// Returns:
//   - *ResourceConfig: The parsed manifest
//   - error: Read, parse, or validation error
func LoadResourceConfig(path string) (*ResourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource config '%s': %w", path, err)
	}

	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config '%s': %w", path, err)
	}

	seen := make(map[string]bool, len(cfg.Clips))
	for i, c := range cfg.Clips {
		if c.ID == "" {
			return nil, fmt.Errorf("resource config '%s': clip %d has no id", path, i)
		}
		if c.Path == "" {
			return nil, fmt.Errorf("resource config '%s': clip %q has no path", path, c.ID)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("resource config '%s': duplicate clip id %q", path, c.ID)
		}
		seen[c.ID] = true
	}
	return &cfg, nil
}

// ClipPath returns the full path for a clip asset id, or false when the
// id is not in the manifest.
func (cfg *ResourceConfig) ClipPath(id string) (string, bool) {
	for _, c := range cfg.Clips {
		if c.ID == id {
			if cfg.BasePath != "" {
				return cfg.BasePath + "/" + c.Path, true
			}
			return c.Path, true
		}
	}
	return "", false
}

// ClipIDs returns every asset id in manifest order.
func (cfg *ResourceConfig) ClipIDs() []string {
	ids := make([]string, 0, len(cfg.Clips))
	for _, c := range cfg.Clips {
		ids = append(ids, c.ID)
	}
	return ids
}
