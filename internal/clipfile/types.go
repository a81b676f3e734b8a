// Package clipfile provides data structures and a parser for animkit clip
// files. A clip file bundles one or more named takes authored against a
// shared joint hierarchy, each take holding per-joint keyframe tracks.
package clipfile

// ClipFileXML is the root structure of a clip file.
// It declares the joint hierarchy once and any number of takes over it.
type ClipFileXML struct {
	// FPS is the authoring frame rate, used to derive key times when a
	// key omits an explicit time attribute. Typically 30.
	FPS int `xml:"fps,attr"`

	// Joints declares the hierarchy all takes are authored against,
	// in hierarchical order (parents before children).
	Joints []JointDef `xml:"joints>joint"`

	// Takes is the list of named animations packed in this file.
	// A file with several takes registers each take under its own name.
	Takes []Take `xml:"take"`
}

// JointDef declares one joint of the hierarchy.
type JointDef struct {
	// Name is the joint name, e.g., "root", "spine", "arm_l"
	Name string `xml:"name,attr"`

	// Parent is the parent joint name, empty for root joints
	Parent string `xml:"parent,attr,omitempty"`
}

// Take is a single named animation.
type Take struct {
	// Name is the animation name used for playback lookup, e.g., "walk"
	Name string `xml:"name,attr"`

	// Duration is the authored length in seconds. When zero, the
	// duration is derived from the latest key time across all tracks.
	Duration float64 `xml:"duration,attr,omitempty"`

	// Mode selects the pose representation: "graph" for takes that must
	// run on the direct skeleton interpolator, "tracks" (or empty) for
	// takes evaluated by the weighted clip evaluator.
	Mode string `xml:"mode,attr,omitempty"`

	// Tracks holds one keyframe track per animated joint.
	Tracks []Track `xml:"track"`
}

// Track is the keyframe sequence for one joint within a take.
type Track struct {
	// Joint is the joint name this track animates
	Joint string `xml:"joint,attr"`

	// Keys is the keyframe sequence, ordered by time
	Keys []Key `xml:"k"`
}

// Key is a single keyframe. All channel fields are optional and use
// pointer types: when a field is nil its value is inherited from the
// previous key in the same track (cumulative inheritance), or from the
// identity pose on the first key.
type Key struct {
	// T is the key time in seconds. When nil, the time is derived from
	// the key's ordinal position and the file FPS.
	T *float64 `xml:"t,attr,omitempty"`

	// X, Y, Z are the joint translation channels
	X *float64 `xml:"x,attr,omitempty"`
	Y *float64 `xml:"y,attr,omitempty"`
	Z *float64 `xml:"z,attr,omitempty"`

	// RX, RY, RZ, RW are the joint rotation quaternion channels
	RX *float64 `xml:"rx,attr,omitempty"`
	RY *float64 `xml:"ry,attr,omitempty"`
	RZ *float64 `xml:"rz,attr,omitempty"`
	RW *float64 `xml:"rw,attr,omitempty"`

	// SX, SY, SZ are the joint scale channels (1.0 = unscaled)
	SX *float64 `xml:"sx,attr,omitempty"`
	SY *float64 `xml:"sy,attr,omitempty"`
	SZ *float64 `xml:"sz,attr,omitempty"`
}

// Take modes.
const (
	ModeGraph  = "graph"
	ModeTracks = "tracks"
)
