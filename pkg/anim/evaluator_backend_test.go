package anim

import (
	"math"
	"testing"

	"github.com/gonewx/animkit/internal/pose"
)

func TestEvaluatorAddRemoveClips(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	walk := makeMovingClip("walk", 1.0, 0, 10, RepTracks)
	run := makeMovingClip("run", 0.5, 0, 20, RepTracks)

	i0 := b.AddActiveClip(walk, 1, true)
	i1 := b.AddActiveClip(run, 0, true)
	if i0 != 0 || i1 != 1 {
		t.Errorf("indices: got %d, %d, want 0, 1", i0, i1)
	}
	if b.ActiveClipCount() != 2 {
		t.Errorf("count: got %d, want 2", b.ActiveClipCount())
	}

	b.RemoveClip(0)
	if b.ActiveClipCount() != 1 {
		t.Errorf("count after remove: got %d, want 1", b.ActiveClipCount())
	}
	b.RemoveClip(5) // out of range, ignored
	if b.ActiveClipCount() != 1 {
		t.Errorf("count after out-of-range remove: got %d, want 1", b.ActiveClipCount())
	}

	b.RemoveAllClips()
	if b.ActiveClipCount() != 0 {
		t.Errorf("count after RemoveAllClips: got %d, want 0", b.ActiveClipCount())
	}
}

func TestEvaluatorWeightedSum(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	// Two static poses at x=0 and x=100.
	a := makeMovingClip("a", 1.0, 0, 0, RepTracks)
	c := makeMovingClip("c", 1.0, 100, 100, RepTracks)

	b.AddActiveClip(a, 0.75, true)
	b.AddActiveClip(c, 0.25, true)
	b.Advance(0, 1)

	if got := g.Local[0].Translation[0]; math.Abs(got-25) > 1e-9 {
		t.Errorf("weighted x: got %v, want 25", got)
	}
}

func TestEvaluatorDoesNotNormalizeWeights(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	a := makeMovingClip("a", 1.0, 10, 10, RepTracks)

	// A single clip at weight 0.5 contributes exactly half: the engine
	// never renormalizes, the caller drives weights to sum to 1.
	b.AddActiveClip(a, 0.5, true)
	b.Advance(0, 1)

	if got := g.Local[0].Translation[0]; math.Abs(got-5) > 1e-9 {
		t.Errorf("unnormalized x: got %v, want 5", got)
	}
}

func TestEvaluatorIndependentClipTimes(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	long := makeMovingClip("long", 1.0, 0, 10, RepTracks)
	short := makeMovingClip("short", 0.4, 0, 10, RepTracks)

	b.AddActiveClip(long, 0.5, false)
	b.AddActiveClip(short, 0.5, true)
	b.Advance(0.5, 1)

	// The looping short clip wraps, the non-looping long clip does not.
	if got := b.active[0].time; got != 0.5 {
		t.Errorf("long time: got %v, want 0.5", got)
	}
	if got := b.active[1].time; math.Abs(got-0.1) > 1e-9 {
		t.Errorf("short time: got %v, want 0.1 (wrapped)", got)
	}
}

func TestEvaluatorSetClipTime(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	walk := makeMovingClip("walk", 1.0, 0, 10, RepTracks)

	b.AddActiveClip(walk, 1, true)
	b.SetClipTime(0, 0.5)

	if got := g.Local[0].Translation[0]; math.Abs(got-5) > 1e-9 {
		t.Errorf("pose x after SetClipTime: got %v, want 5", got)
	}

	b.SetClipTime(9, 0.1) // out of range, ignored
}

func TestEvaluatorStartBlendBoundsActiveList(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	a := makeMovingClip("a", 1.0, 0, 0, RepTracks)
	c := makeMovingClip("c", 1.0, 0, 0, RepTracks)
	d := makeMovingClip("d", 1.0, 0, 0, RepTracks)

	b.SetAnimation(a, true)
	b.StartBlend(a, c, 0.2, true)
	if b.ActiveClipCount() != 2 {
		t.Fatalf("count during first blend: got %d, want 2", b.ActiveClipCount())
	}

	// Interrupting with another blend discards all but the most recent
	// clip before appending: still bounded at two.
	b.StartBlend(c, d, 0.1, true)
	if b.ActiveClipCount() != 2 {
		t.Errorf("count during second blend: got %d, want 2", b.ActiveClipCount())
	}
	if b.active[0].clip != c || b.active[1].clip != d {
		t.Error("survivor/target order wrong after interrupted blend")
	}
}

func TestEvaluatorBlendWeightsComplementary(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	from := makeMovingClip("from", 1.0, 0, 0, RepTracks)
	to := makeMovingClip("to", 1.0, 40, 40, RepTracks)

	b.SetAnimation(from, true)
	b.StartBlend(from, to, 0, true)
	b.SetBlendWeight(0.25)
	b.Advance(0, 1)

	// 0.75*0 + 0.25*40
	if got := g.Local[0].Translation[0]; math.Abs(got-10) > 1e-9 {
		t.Errorf("blended x: got %v, want 10", got)
	}
}

func TestEvaluatorFinishBlendCollapses(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	from := makeMovingClip("from", 1.0, 0, 0, RepTracks)
	to := makeMovingClip("to", 0.5, 0, 20, RepTracks)

	b.SetAnimation(from, true)
	b.StartBlend(from, to, 0, true)
	b.Advance(0.1, 1)
	b.SetBlendWeight(1)
	b.FinishBlend()

	if b.ActiveClipCount() != 1 {
		t.Errorf("count after FinishBlend: got %d, want 1", b.ActiveClipCount())
	}
	if b.active[0].clip != to {
		t.Error("wrong survivor after FinishBlend")
	}
	if math.Abs(b.CurrentTime()-0.1) > 1e-9 {
		t.Errorf("time after FinishBlend: got %v, want 0.1", b.CurrentTime())
	}
}

func TestEvaluatorCurrentTimeTracksBlendTarget(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	from := makeMovingClip("from", 1.0, 0, 0, RepTracks)
	to := makeMovingClip("to", 1.0, 0, 0, RepTracks)

	b.SetAnimation(from, true)
	b.Advance(0.6, 1)
	b.StartBlend(from, to, b.CurrentTime(), true)

	// The reported time is the blend target's, which starts at zero.
	if b.CurrentTime() != 0 {
		t.Errorf("time during blend: got %v, want 0 (target clip)", b.CurrentTime())
	}
	if math.Abs(b.active[0].time-0.6) > 1e-9 {
		t.Errorf("outgoing time: got %v, want 0.6", b.active[0].time)
	}
}

func TestEvaluatorSetTimeScrubsTarget(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	walk := makeMovingClip("walk", 1.0, 0, 10, RepTracks)

	b.SetAnimation(walk, true)
	b.SetTime(0.3)
	if math.Abs(b.CurrentTime()-0.3) > 1e-9 {
		t.Errorf("time after SetTime: got %v, want 0.3", b.CurrentTime())
	}
	if got := g.Local[0].Translation[0]; math.Abs(got-3) > 1e-9 {
		t.Errorf("pose x after SetTime: got %v, want 3", got)
	}
}

func TestEvaluatorReset(t *testing.T) {
	g := singleJointGraph(t)
	b := newEvaluatorBackend(g)
	b.SetAnimation(makeMovingClip("walk", 1.0, 0, 10, RepTracks), true)
	b.Advance(0.5, 1)

	b.Reset()
	b.Reset() // idempotent

	if b.ActiveClipCount() != 0 {
		t.Errorf("count after Reset: got %d, want 0", b.ActiveClipCount())
	}
	if b.CurrentTime() != 0 {
		t.Errorf("time after Reset: got %v, want 0", b.CurrentTime())
	}
	if g.Local[0] != pose.Identity() {
		t.Error("pose not zeroed by Reset")
	}
}
