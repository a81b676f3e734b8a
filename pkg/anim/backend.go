package anim

import "github.com/gonewx/animkit/internal/pose"

// BackendType identifies the pose-evaluation strategy bound to a model.
// Exactly one variant is live per binding; the Controller selects it once
// when the first clip is bound and tears it down on rebind.
type BackendType int

const (
	// BackendNone means no pose graph is bound yet.
	BackendNone BackendType = iota

	// BackendSkeleton is the direct skeleton interpolator used for
	// RepGraph clips. It supports a two-skeleton cross-fade.
	BackendSkeleton

	// BackendEvaluator is the weighted clip evaluator used for
	// RepTracks clips. It sums an ordered list of active clips.
	BackendEvaluator
)

func (b BackendType) String() string {
	switch b {
	case BackendNone:
		return "none"
	case BackendSkeleton:
		return "skeleton"
	case BackendEvaluator:
		return "evaluator"
	default:
		return "unknown"
	}
}

// PoseBackend is the strategy the Controller delegates pose math to.
// Implementations write the evaluated pose into the externally-owned
// graph they were bound to. All methods are synchronous; SetTime in
// particular must re-evaluate the pose before returning so a reader
// immediately observes the scrubbed pose.
type PoseBackend interface {
	// Type returns the backend variant.
	Type() BackendType

	// SetAnimation hard-resets the backend to play only clip from time
	// zero, discarding any in-progress blend.
	SetAnimation(clip *Clip, loop bool)

	// StartBlend begins a cross-fade: from continues at fromTime, to
	// starts at zero. The blend is sampled at the weight last given to
	// SetBlendWeight (reset to zero here).
	StartBlend(from, to *Clip, fromTime float64, loop bool)

	// SetBlendWeight updates the cross-fade weight (0 = fully previous,
	// 1 = fully new).
	SetBlendWeight(w float64)

	// FinishBlend collapses the blend to single-clip steady state,
	// discarding the "from" side.
	FinishBlend()

	// Advance moves every local time cursor forward by dt*speed and
	// re-evaluates the pose.
	Advance(dt, speed float64)

	// CurrentTime returns the active clip's elapsed local time. While
	// blending this is the time of the clip being blended into.
	CurrentTime() float64

	// SetTime scrubs the active clip to t and synchronously
	// re-evaluates the pose.
	SetTime(t float64)

	// SetLoop updates the looping flag of the active clip.
	SetLoop(loop bool)

	// Reset zeroes all time cursors and releases clip references.
	// Safe to call repeatedly.
	Reset()
}

// advanceCursor steps a local time cursor, wrapping when looping and
// clamping to the clip duration otherwise. Returns the new cursor and
// whether a non-looping clip has finished.
func advanceCursor(t, dt, duration float64, loop bool) (float64, bool) {
	t += dt
	if duration <= 0 {
		return 0, !loop
	}
	if loop {
		for t >= duration {
			t -= duration
		}
		for t < 0 {
			t += duration
		}
		return t, false
	}
	if t >= duration {
		return duration, true
	}
	if t < 0 {
		t = 0
	}
	return t, false
}

// boundGraphOrPanic guards the invariant that backends are only built
// against an attached pose graph. A nil graph here is a programmer
// error, not a runtime condition.
func boundGraphOrPanic(g *pose.Graph) *pose.Graph {
	if g == nil {
		panic("anim: pose backend built without a bound pose graph")
	}
	return g
}
