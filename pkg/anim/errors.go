package anim

import "errors"

// Sentinel errors reported by the playback engine. These are all
// non-fatal caller conditions: operations that hit them log a warning
// and leave playback state untouched.
var (
	// ErrUnknownAnimation is returned when a name is not registered in
	// the clip store.
	ErrUnknownAnimation = errors.New("unknown animation")

	// ErrNoCurrentAnimation is returned by Duration when no animation
	// is currently set.
	ErrNoCurrentAnimation = errors.New("no current animation")

	// ErrNoPoseGraph is returned when an operation requires a bound
	// pose graph and none is attached.
	ErrNoPoseGraph = errors.New("no pose graph bound")
)
