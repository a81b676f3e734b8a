package anim

import "github.com/gonewx/animkit/internal/pose"

// activeClip is one entry of the evaluator's ordered active list: a clip
// with its own local time, weight, and looping flag.
type activeClip struct {
	clip    *Clip
	time    float64
	weight  float64
	looping bool
}

// evaluatorBackend is the weighted clip evaluator used for RepTracks
// clips. It maintains an ordered list of active clips and recomputes the
// bound pose as the weighted sum of their sampled poses.
//
// Weights are NOT normalized: the engine expects the caller (the
// Controller's cross-fade protocol) to drive weights so they sum to 1 by
// blend completion. During a transition the list holds at most two
// non-stale entries: one "from" survivor and the blend target.
type evaluatorBackend struct {
	out     *pose.Graph
	scratch *pose.Graph
	active  []*activeClip
}

func newEvaluatorBackend(out *pose.Graph) *evaluatorBackend {
	out = boundGraphOrPanic(out)
	return &evaluatorBackend{
		out:     out,
		scratch: pose.NewGraph(out.Topology()),
	}
}

func (b *evaluatorBackend) Type() BackendType {
	return BackendEvaluator
}

// AddActiveClip appends a clip to the active list and returns its index.
func (b *evaluatorBackend) AddActiveClip(clip *Clip, initialWeight float64, looping bool) int {
	b.active = append(b.active, &activeClip{
		clip:    clip,
		weight:  initialWeight,
		looping: looping,
	})
	return len(b.active) - 1
}

// RemoveClip removes the active clip at index. Out-of-range indices are
// ignored.
func (b *evaluatorBackend) RemoveClip(index int) {
	if index < 0 || index >= len(b.active) {
		return
	}
	b.active = append(b.active[:index], b.active[index+1:]...)
}

// RemoveAllClips clears the active list.
func (b *evaluatorBackend) RemoveAllClips() {
	b.active = b.active[:0]
}

// ActiveClipCount returns the current active-list length.
func (b *evaluatorBackend) ActiveClipCount() int {
	return len(b.active)
}

// SetClipTime scrubs the active clip at index to t and re-evaluates.
func (b *evaluatorBackend) SetClipTime(index int, t float64) {
	if index < 0 || index >= len(b.active) {
		return
	}
	b.active[index].time = t
	b.evaluate()
}

func (b *evaluatorBackend) SetAnimation(clip *Clip, loop bool) {
	b.RemoveAllClips()
	b.AddActiveClip(clip, 1, loop)
	b.evaluate()
}

// StartBlend applies the controller's cross-fade protocol: every entry
// but the most recently added is discarded, the survivor becomes the
// outgoing clip, and the new target is appended at weight zero. The
// active-clip count is therefore bounded at two during any transition.
func (b *evaluatorBackend) StartBlend(from, to *Clip, fromTime float64, loop bool) {
	if to == nil {
		panic("anim: evaluator blend started without a target clip")
	}
	if n := len(b.active); n > 1 {
		b.active = b.active[n-1:]
	}
	if len(b.active) == 0 {
		// Blend requested before anything was active: seed the outgoing
		// clip explicitly.
		if from == nil {
			panic("anim: evaluator blend started without a previous clip")
		}
		b.active = append(b.active, &activeClip{
			clip:    from,
			time:    fromTime,
			weight:  1,
			looping: true,
		})
	}
	b.active[0].weight = 1
	b.AddActiveClip(to, 0, loop)
	b.evaluate()
}

func (b *evaluatorBackend) SetBlendWeight(w float64) {
	n := len(b.active)
	if n == 0 {
		return
	}
	b.active[n-1].weight = w
	if n > 1 {
		b.active[n-2].weight = 1 - w
	}
}

func (b *evaluatorBackend) FinishBlend() {
	n := len(b.active)
	if n == 0 {
		return
	}
	b.active = b.active[n-1:]
	b.active[0].weight = 1
	b.evaluate()
}

func (b *evaluatorBackend) Advance(dt, speed float64) {
	for _, ac := range b.active {
		ac.time, _ = advanceCursor(ac.time, dt*speed, ac.clip.Duration(), ac.looping)
	}
	b.evaluate()
}

func (b *evaluatorBackend) CurrentTime() float64 {
	n := len(b.active)
	if n == 0 {
		return 0
	}
	// The most recently added clip is the one being blended into.
	return b.active[n-1].time
}

func (b *evaluatorBackend) SetTime(t float64) {
	b.SetClipTime(len(b.active)-1, t)
}

func (b *evaluatorBackend) SetLoop(loop bool) {
	if n := len(b.active); n > 0 {
		b.active[n-1].looping = loop
	}
}

func (b *evaluatorBackend) Reset() {
	b.RemoveAllClips()
	b.out.Reset()
}

// evaluate recomputes the bound pose as the weighted sum of all active
// clips' sampled poses. Weights are used as-is; see the type comment.
func (b *evaluatorBackend) evaluate() {
	if len(b.active) == 0 {
		return
	}

	joints := b.out.Topology().NumJoints()
	sums := make([]pose.Transform, joints)
	ref := make([][4]float64, joints)
	totals := make([]float64, joints)

	for _, ac := range b.active {
		if ac.weight <= 0 {
			continue
		}
		b.scratch.CopyLocalFrom(b.out)
		ac.clip.SampleInto(b.scratch, ac.time)
		for j := 0; j < joints; j++ {
			xf := b.scratch.Local[j]
			w := ac.weight

			q := xf.Rotation
			if totals[j] == 0 {
				ref[j] = q
			} else if dot4(q, ref[j]) < 0 {
				// Keep accumulated quaternions in the same hemisphere.
				q = [4]float64{-q[0], -q[1], -q[2], -q[3]}
			}

			s := &sums[j]
			for k := 0; k < 3; k++ {
				s.Translation[k] += xf.Translation[k] * w
				s.Scale[k] += xf.Scale[k] * w
			}
			for k := 0; k < 4; k++ {
				s.Rotation[k] += q[k] * w
			}
			totals[j] += w
		}
	}

	for j := 0; j < joints; j++ {
		if totals[j] == 0 {
			continue
		}
		sums[j].Rotation = pose.NormalizeQuat(sums[j].Rotation)
		b.out.Local[j] = sums[j]
	}
	b.out.UpdateModel()
}

func dot4(a, b [4]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}
