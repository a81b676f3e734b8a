package anim

import "github.com/gonewx/animkit/internal/pose"

// skeletonBackend is the direct skeleton interpolator used for legacy
// RepGraph clips, whose data cannot be blended per-track. It owns three
// pose-graph instances over the bound model's topology:
//
//   - current: the pose of the single active clip at steady state
//   - blendFrom: the outgoing clip's pose during a cross-fade
//   - blendTo: the incoming clip's pose during a cross-fade
//
// Each instance carries its own local time cursor. The evaluated result
// is always written into the externally-owned output graph.
type skeletonBackend struct {
	out *pose.Graph

	current   *pose.Graph
	blendFrom *pose.Graph
	blendTo   *pose.Graph

	clip     *Clip
	fromClip *Clip
	toClip   *Clip

	time     float64
	fromTime float64
	toTime   float64

	loop     bool
	finished bool
	blending bool
	weight   float64
}

// newSkeletonBackend allocates the three pose instances against the
// supplied pose graph's topology.
func newSkeletonBackend(out *pose.Graph) *skeletonBackend {
	out = boundGraphOrPanic(out)
	topo := out.Topology()
	return &skeletonBackend{
		out:       out,
		current:   pose.NewGraph(topo),
		blendFrom: pose.NewGraph(topo),
		blendTo:   pose.NewGraph(topo),
	}
}

func (b *skeletonBackend) Type() BackendType {
	return BackendSkeleton
}

func (b *skeletonBackend) SetAnimation(clip *Clip, loop bool) {
	b.clip = clip
	b.fromClip = nil
	b.toClip = nil
	b.time = 0
	b.loop = loop
	b.finished = false
	b.blending = false
	b.weight = 0
	b.evaluate()
}

func (b *skeletonBackend) StartBlend(from, to *Clip, fromTime float64, loop bool) {
	if from == nil || to == nil {
		panic("anim: skeleton blend started without both clips")
	}
	b.fromClip = from
	b.toClip = to
	b.fromTime = fromTime
	b.toTime = 0
	b.loop = loop
	b.finished = false
	b.blending = true
	b.weight = 0
	// The steady-state clip becomes the blend target.
	b.clip = to
	b.time = 0
	b.evaluate()
}

func (b *skeletonBackend) SetBlendWeight(w float64) {
	b.weight = w
}

func (b *skeletonBackend) FinishBlend() {
	if !b.blending {
		return
	}
	b.blending = false
	b.clip = b.toClip
	b.time = b.toTime
	b.fromClip = nil
	b.toClip = nil
	b.weight = 0
	b.evaluate()
}

func (b *skeletonBackend) Advance(dt, speed float64) {
	step := dt * speed
	if b.blending {
		// The outgoing pose keeps advancing so the cross-fade stays
		// continuous with the interrupted playback.
		b.fromTime, _ = advanceCursor(b.fromTime, step, b.fromClip.Duration(), true)
		b.toTime, b.finished = advanceCursor(b.toTime, step, b.toClip.Duration(), b.loop)
	} else if b.clip != nil && !b.finished {
		b.time, b.finished = advanceCursor(b.time, step, b.clip.Duration(), b.loop)
	}
	b.evaluate()
}

func (b *skeletonBackend) CurrentTime() float64 {
	if b.blending {
		return b.toTime
	}
	return b.time
}

func (b *skeletonBackend) SetTime(t float64) {
	if b.blending {
		b.toTime = t
	} else {
		b.time = t
	}
	b.finished = false
	b.evaluate()
}

func (b *skeletonBackend) SetLoop(loop bool) {
	b.loop = loop
	if loop {
		b.finished = false
	}
}

func (b *skeletonBackend) Reset() {
	b.clip = nil
	b.fromClip = nil
	b.toClip = nil
	b.time = 0
	b.fromTime = 0
	b.toTime = 0
	b.finished = false
	b.blending = false
	b.weight = 0
	b.out.Reset()
}

// Finished reports whether a non-looping clip has reached its end.
func (b *skeletonBackend) Finished() bool {
	return b.finished
}

// evaluate samples the active clip(s) and writes the result into the
// bound graph. Runs synchronously on every state change so readers never
// observe a stale pose.
func (b *skeletonBackend) evaluate() {
	switch {
	case b.blending:
		b.fromClip.SampleInto(b.blendFrom, b.fromTime)
		b.toClip.SampleInto(b.blendTo, b.toTime)
		b.out.BlendLocalFrom(b.blendFrom, b.blendTo, b.weight)
	case b.clip != nil:
		b.clip.SampleInto(b.current, b.time)
		b.out.CopyLocalFrom(b.current)
	default:
		return
	}
	b.out.UpdateModel()
}
