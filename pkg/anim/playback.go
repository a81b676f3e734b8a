package anim

import (
	"log"

	"github.com/gonewx/animkit/internal/pose"
)

// Controller owns the playback state machine for one bound model:
// which animation is current, whether a cross-fade is in progress, and
// how time advances each frame. It delegates all pose math to whichever
// PoseBackend variant is active.
//
// State machine: Idle (no current animation) → Playing → Blending
// (previous + current, weight advancing 0→1) → Playing when the weight
// reaches 1, or → Idle on Stop / removal of the current animation.
//
// The controller is single-threaded and frame-driven: Play, Advance,
// SetCurrentTime, Stop, and Rebind all mutate state synchronously and
// never suspend mid-update.
type Controller struct {
	store *ClipStore

	current  string
	previous string
	playing  bool
	blending bool

	blendWeight float64
	blendRate   float64

	loop           bool
	speed          float64
	activateOnLoad bool
	enabled        bool

	graph       *pose.Graph
	backend     PoseBackend
	backendType BackendType

	// currentClip is the clip instance playback was last started on.
	// The binding manager compares it against the store after each
	// batch commit to detect a name takeover by new clip data.
	currentClip *Clip
}

// NewController creates an idle controller over the given clip store.
// Defaults match authoring expectations: enabled, looping, speed 1,
// activate-on-load on.
func NewController(store *ClipStore) *Controller {
	return &Controller{
		store:          store,
		loop:           true,
		speed:          1,
		activateOnLoad: true,
		enabled:        true,
	}
}

// Play switches the current animation to name, cross-fading over
// blendSeconds when positive and a previous animation exists.
//
// Unknown names are a non-fatal caller condition: the call logs a
// warning, returns ErrUnknownAnimation, and leaves state untouched.
// A disabled controller silently no-ops (policy, not an error).
//
// On success isPlaying is set even when no pose graph is bound yet; the
// recorded state takes effect when a model attaches (see Rebind).
func (c *Controller) Play(name string, blendSeconds float64) error {
	if !c.enabled {
		return nil
	}
	clip, err := c.store.Lookup(name)
	if err != nil {
		log.Printf("[Controller] Warning: unknown animation %q", name)
		return err
	}

	c.previous = c.current
	c.current = name
	c.playing = true
	c.currentClip = clip

	if c.graph == nil {
		// No model attached yet: remember the request and start once a
		// pose graph arrives.
		c.blending = false
		c.blendWeight = 0
		return nil
	}

	c.ensureBackend(clip)

	c.blending = blendSeconds > 0 && c.previous != ""
	if c.blending {
		prevClip, err := c.store.Lookup(c.previous)
		if err != nil {
			// The outgoing clip has been unloaded since it started;
			// fall back to a hard switch.
			c.blending = false
		} else {
			c.blendWeight = 0
			c.blendRate = 1 / blendSeconds
			fromTime := c.backend.CurrentTime()
			c.backend.StartBlend(prevClip, clip, fromTime, c.loop)
			return nil
		}
	}

	c.blendWeight = 0
	c.backend.SetAnimation(clip, c.loop)
	return nil
}

// Advance is the per-frame driver: it moves the blend weight toward 1,
// collapses the blend when it arrives, and delegates time advancement to
// the active backend.
func (c *Controller) Advance(dt float64) {
	if !c.playing || c.backend == nil {
		return
	}
	if c.blending {
		c.blendWeight += c.blendRate * dt
		if c.blendWeight >= 1 {
			c.blendWeight = 1
			c.blending = false
			c.backend.SetBlendWeight(1)
			c.backend.FinishBlend()
		} else {
			c.backend.SetBlendWeight(c.blendWeight)
		}
	}
	c.backend.Advance(dt, c.speed)
}

// Stop returns the controller to Idle: no current animation, backend
// time zeroed, clip references released. Safe and idempotent when
// already idle.
func (c *Controller) Stop() {
	c.current = ""
	c.previous = ""
	c.playing = false
	c.blending = false
	c.blendWeight = 0
	c.currentClip = nil
	if c.backend != nil {
		c.backend.Reset()
	}
}

// Rebind attaches the controller to a new pose graph. A changed graph
// tears down the existing backend entirely (blend state included); if a
// current animation is still set and known, playback restarts against
// the new graph with no blend. Rebind(nil) detaches the model and stops
// playback.
func (c *Controller) Rebind(graph *pose.Graph) {
	if graph == c.graph {
		return
	}

	c.backend = nil
	c.backendType = BackendNone
	c.graph = graph

	if graph == nil {
		c.Stop()
		return
	}

	if c.current != "" && c.store.Has(c.current) {
		name := c.current
		c.current = ""
		c.previous = ""
		// No blend across a model swap.
		if err := c.Play(name, 0); err != nil {
			c.Stop()
		}
	}
}

// ensureBackend lazily constructs the backend variant matching the
// clip's representation. The variant is decided once per binding; a clip
// of the other representation reaching an already-built backend is a
// data error the capability check guards against.
func (c *Controller) ensureBackend(clip *Clip) {
	if c.backend != nil {
		return
	}
	switch clip.Rep() {
	case RepGraph:
		c.backend = newSkeletonBackend(c.graph)
		c.backendType = BackendSkeleton
	default:
		c.backend = newEvaluatorBackend(c.graph)
		c.backendType = BackendEvaluator
	}
}

// CurrentAnimation returns the current animation name, empty when idle.
func (c *Controller) CurrentAnimation() string { return c.current }

// PreviousAnimation returns the blend source name, empty outside blends.
func (c *Controller) PreviousAnimation() string { return c.previous }

// IsPlaying reports whether an animation is set and advancing.
func (c *Controller) IsPlaying() bool { return c.playing }

// IsBlending reports whether a cross-fade is in progress.
func (c *Controller) IsBlending() bool { return c.blending }

// BlendWeight returns the cross-fade weight. Only meaningful while
// IsBlending.
func (c *Controller) BlendWeight() float64 { return c.blendWeight }

// BackendType returns the active backend variant.
func (c *Controller) BackendType() BackendType { return c.backendType }

// Bound returns the attached pose graph, nil when detached.
func (c *Controller) Bound() *pose.Graph { return c.graph }

// Skeleton returns the bound pose graph when the direct skeleton
// backend is active, nil otherwise.
func (c *Controller) Skeleton() *pose.Graph {
	if c.backendType != BackendSkeleton {
		return nil
	}
	return c.graph
}

// Animation looks up a clip by name in the controller's store.
func (c *Controller) Animation(name string) (*Clip, error) {
	clip, err := c.store.Lookup(name)
	if err != nil {
		log.Printf("[Controller] Warning: unknown animation %q", name)
		return nil, err
	}
	return clip, nil
}

// CurrentTime returns the active clip's elapsed time in seconds. While
// blending it reports the clip being blended into.
func (c *Controller) CurrentTime() float64 {
	if c.backend == nil {
		return 0
	}
	return c.backend.CurrentTime()
}

// SetCurrentTime scrubs the active clip and synchronously re-evaluates
// the pose, so a reader immediately observes the new pose. Scrubbing
// before a backend exists (no model attached, or nothing played yet) is
// a caller error reported as ErrNoPoseGraph.
func (c *Controller) SetCurrentTime(t float64) error {
	if c.backend == nil {
		log.Printf("[Controller] Warning: scrub with no pose backend bound")
		return ErrNoPoseGraph
	}
	c.backend.SetTime(t)
	return nil
}

// Duration returns the current clip's authored duration. Calling it
// while idle is a caller error reported as ErrNoCurrentAnimation.
func (c *Controller) Duration() (float64, error) {
	if c.current == "" {
		log.Printf("[Controller] Warning: duration read with no current animation")
		return 0, ErrNoCurrentAnimation
	}
	clip, err := c.store.Lookup(c.current)
	if err != nil {
		return 0, err
	}
	return clip.Duration(), nil
}

// Speed returns the time multiplier applied each Advance.
func (c *Controller) Speed() float64 { return c.speed }

// SetSpeed sets the time multiplier. Zero pauses playback in place.
func (c *Controller) SetSpeed(speed float64) { c.speed = speed }

// Loop reports whether the active clip wraps at its end.
func (c *Controller) Loop() bool { return c.loop }

// SetLoop updates looping for future plays and for the active backend.
func (c *Controller) SetLoop(loop bool) {
	c.loop = loop
	if c.backend != nil {
		c.backend.SetLoop(loop)
	}
}

// ActivateOnLoad reports whether the first ready clip should start
// automatically when nothing is playing yet.
func (c *Controller) ActivateOnLoad() bool { return c.activateOnLoad }

// SetActivateOnLoad updates the auto-activation flag.
func (c *Controller) SetActivateOnLoad(v bool) { c.activateOnLoad = v }

// Enabled reports whether Play and auto-activation may proceed.
func (c *Controller) Enabled() bool { return c.enabled }

// SetEnabled gates Play and auto-activation, honoring the component
// enable/disable lifecycle of the host entity.
func (c *Controller) SetEnabled(v bool) { c.enabled = v }
