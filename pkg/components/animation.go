// Package components holds the plain-data component types the animation
// systems operate on. Components carry no behavior; all logic lives in
// pkg/systems.
package components

import (
	"github.com/gonewx/animkit/internal/pose"
	"github.com/gonewx/animkit/pkg/anim"
)

// AnimationComponent attaches a playback controller to an entity.
type AnimationComponent struct {
	// Controller owns the entity's playback state machine and pose
	// backend. Created once when the entity is assembled.
	Controller *anim.Controller
}

// ModelComponent is the entity's externally-owned pose graph: the
// skeleton instance a renderer reads after each update.
type ModelComponent struct {
	// Graph is the pose instance owned by this entity. Exactly one
	// entity holds a given graph at a time.
	Graph *pose.Graph

	// Attached reports whether the model is currently in the scene.
	// A detached model stops playback; re-attaching restarts the
	// recorded animation with no blend.
	Attached bool
}

// PlayRequestComponent is a one-shot command asking the animation
// system to start a clip on this entity. The system executes pending
// requests at the start of its update and marks them processed; failed
// requests are marked too so they never retry forever.
type PlayRequestComponent struct {
	// Name is the animation to play.
	Name string

	// BlendSeconds is the cross-fade length; zero switches hard.
	BlendSeconds float64

	// Processed is set by the animation system once the request has
	// been executed (successfully or not).
	Processed bool
}
