// Package anim implements the animation playback and blending engine:
// a clip store, two interchangeable pose backends, the playback
// controller state machine, and the asset binding manager.
package anim

import (
	"fmt"
	"sort"

	"github.com/gonewx/animkit/internal/clipfile"
	"github.com/gonewx/animkit/internal/pose"
)

// Representation identifies which pose backend a clip's data can run on.
// A model's backend variant is chosen once, at bind time, from the
// representation of its clips; the two variants are never mixed.
type Representation int

const (
	// RepGraph marks legacy clips with baked pose-graph curves. They run
	// on the direct skeleton interpolator, which blends whole poses
	// rather than individual tracks.
	RepGraph Representation = iota

	// RepTracks marks clips with per-track curves evaluated by the
	// weighted clip evaluator.
	RepTracks
)

func (r Representation) String() string {
	switch r {
	case RepGraph:
		return "graph"
	case RepTracks:
		return "tracks"
	default:
		return fmt.Sprintf("Representation(%d)", int(r))
	}
}

// clipKey is one resolved keyframe: explicit time and a full transform
// (inheritance from the authored file already applied).
type clipKey struct {
	time float64
	xf   pose.Transform
}

// clipTrack holds the resolved keys for one joint.
type clipTrack struct {
	joint string
	keys  []clipKey
}

// Clip is immutable authored animation data: a name, a duration, and
// per-joint keyframe curves. Clips are created by the asset pipeline,
// owned by the ClipStore for the lifetime of their backing asset, and
// shared freely between backends (they are never mutated after creation).
type Clip struct {
	name     string
	duration float64
	rep      Representation
	tracks   []clipTrack
}

// Name returns the animation name the clip is registered under.
func (c *Clip) Name() string { return c.name }

// Duration returns the authored clip length in seconds.
func (c *Clip) Duration() float64 { return c.duration }

// Rep returns the clip's pose representation.
func (c *Clip) Rep() Representation { return c.rep }

// NewClipFromTake resolves one take of a parsed clip file into an
// immutable Clip. Optional key channels are resolved here: a nil channel
// inherits from the previous key in the same track, the first key falls
// back to the identity pose. Keys are sorted by time.
func NewClipFromTake(cf *clipfile.ClipFileXML, take *clipfile.Take) *Clip {
	rep := RepTracks
	if take.Mode == clipfile.ModeGraph {
		rep = RepGraph
	}

	c := &Clip{
		name:     take.Name,
		duration: cf.TakeDuration(take),
		rep:      rep,
		tracks:   make([]clipTrack, 0, len(take.Tracks)),
	}

	for ti := range take.Tracks {
		src := &take.Tracks[ti]
		track := clipTrack{
			joint: src.Joint,
			keys:  make([]clipKey, 0, len(src.Keys)),
		}

		prev := pose.Identity()
		for i := range src.Keys {
			k := &src.Keys[i]
			xf := prev

			applyChannel(&xf.Translation[0], k.X)
			applyChannel(&xf.Translation[1], k.Y)
			applyChannel(&xf.Translation[2], k.Z)
			applyChannel(&xf.Rotation[0], k.RX)
			applyChannel(&xf.Rotation[1], k.RY)
			applyChannel(&xf.Rotation[2], k.RZ)
			applyChannel(&xf.Rotation[3], k.RW)
			applyChannel(&xf.Scale[0], k.SX)
			applyChannel(&xf.Scale[1], k.SY)
			applyChannel(&xf.Scale[2], k.SZ)
			xf.Rotation = pose.NormalizeQuat(xf.Rotation)

			track.keys = append(track.keys, clipKey{
				time: cf.KeyTime(k, i),
				xf:   xf,
			})
			prev = xf
		}

		sort.SliceStable(track.keys, func(a, b int) bool {
			return track.keys[a].time < track.keys[b].time
		})
		c.tracks = append(c.tracks, track)
	}

	return c
}

// applyChannel overwrites dst when the authored channel is present.
func applyChannel(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// SampleInto evaluates the clip at time t and writes the resulting local
// pose into g. Joints the clip does not animate keep their current local
// transform. Track joints absent from g's topology are skipped.
func (c *Clip) SampleInto(g *pose.Graph, t float64) {
	topo := g.Topology()
	for i := range c.tracks {
		track := &c.tracks[i]
		ji := topo.JointIndex(track.joint)
		if ji < 0 || len(track.keys) == 0 {
			continue
		}
		g.Local[ji] = sampleTrack(track.keys, t)
	}
}

// sampleTrack interpolates between the two keys bracketing t, clamping
// outside the keyed range.
func sampleTrack(keys []clipKey, t float64) pose.Transform {
	if t <= keys[0].time {
		return keys[0].xf
	}
	last := len(keys) - 1
	if t >= keys[last].time {
		return keys[last].xf
	}

	// Binary search for the first key at or after t.
	hi := sort.Search(len(keys), func(i int) bool {
		return keys[i].time >= t
	})
	lo := hi - 1

	span := keys[hi].time - keys[lo].time
	if span <= 0 {
		return keys[hi].xf
	}
	w := (t - keys[lo].time) / span
	return pose.BlendTransform(keys[lo].xf, keys[hi].xf, w)
}
