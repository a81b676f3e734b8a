package clipfile

import (
	"encoding/xml"
	"fmt"
	"os"
)

// ParseClipFile parses a clip file from disk and returns the animation data.
//
// Parameters:
//   - path: Path to the clip file, e.g., "assets/clips/soldier.clip"
//
// Returns:
//   - *ClipFileXML: The parsed clip data
//   - error: Read or parsing error, or nil if successful
func ParseClipFile(path string) (*ClipFileXML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip file '%s': %w", path, err)
	}

	cf, err := ParseClipData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clip file '%s': %w", path, err)
	}
	return cf, nil
}

// ParseClipData parses clip file content already held in memory and
// validates its structure. It is the backing implementation of
// ParseClipFile and is used directly by tests and embedded assets.
func ParseClipData(data []byte) (*ClipFileXML, error) {
	var cf ClipFileXML
	if err := xml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse clip XML: %w", err)
	}

	if cf.FPS <= 0 {
		cf.FPS = 30
	}

	if err := validate(&cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// validate checks structural rules the engine relies on: a declared joint
// hierarchy, unique take names, and tracks that only reference declared
// joints.
func validate(cf *ClipFileXML) error {
	if len(cf.Joints) == 0 {
		return fmt.Errorf("clip file declares no joints")
	}

	joints := make(map[string]bool, len(cf.Joints))
	for i, j := range cf.Joints {
		if j.Name == "" {
			return fmt.Errorf("joint %d has no name", i)
		}
		if joints[j.Name] {
			return fmt.Errorf("duplicate joint %q", j.Name)
		}
		if j.Parent != "" && !joints[j.Parent] {
			return fmt.Errorf("joint %q: parent %q not declared before it", j.Name, j.Parent)
		}
		joints[j.Name] = true
	}

	takes := make(map[string]bool, len(cf.Takes))
	for _, take := range cf.Takes {
		if take.Name == "" {
			return fmt.Errorf("take with empty name")
		}
		if takes[take.Name] {
			return fmt.Errorf("duplicate take %q", take.Name)
		}
		takes[take.Name] = true

		if take.Mode != "" && take.Mode != ModeGraph && take.Mode != ModeTracks {
			return fmt.Errorf("take %q: unknown mode %q", take.Name, take.Mode)
		}

		for _, tr := range take.Tracks {
			if !joints[tr.Joint] {
				return fmt.Errorf("take %q: track references undeclared joint %q", take.Name, tr.Joint)
			}
		}
	}
	return nil
}

// KeyTime returns the time of the i-th key in a track, deriving it from
// the file FPS when the key has no explicit time attribute.
func (cf *ClipFileXML) KeyTime(k *Key, ordinal int) float64 {
	if k.T != nil {
		return *k.T
	}
	return float64(ordinal) / float64(cf.FPS)
}

// TakeDuration returns the effective duration of a take: the authored
// duration when present, otherwise the latest key time across all tracks.
func (cf *ClipFileXML) TakeDuration(take *Take) float64 {
	if take.Duration > 0 {
		return take.Duration
	}
	var max float64
	for ti := range take.Tracks {
		keys := take.Tracks[ti].Keys
		for i := range keys {
			if t := cf.KeyTime(&keys[i], i); t > max {
				max = t
			}
		}
	}
	return max
}
