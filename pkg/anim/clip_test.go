package anim

import (
	"testing"

	"github.com/gonewx/animkit/internal/clipfile"
	"github.com/gonewx/animkit/internal/pose"
)

const testClipXML = `<clips fps="30">
  <joints>
    <joint name="root"/>
    <joint name="spine" parent="root"/>
  </joints>
  <take name="walk" duration="1.0" mode="graph">
    <track joint="root">
      <k t="0" x="0" y="0" z="0"/>
      <k t="1.0" x="10"/>
    </track>
  </take>
  <take name="run" duration="0.5">
    <track joint="root">
      <k t="0" x="0"/>
      <k t="0.5" x="20"/>
    </track>
  </take>
</clips>`

func parseTestClips(t *testing.T) (*clipfile.ClipFileXML, []*Clip) {
	t.Helper()
	cf, err := clipfile.ParseClipData([]byte(testClipXML))
	if err != nil {
		t.Fatalf("ParseClipData failed: %v", err)
	}
	clips := make([]*Clip, 0, len(cf.Takes))
	for i := range cf.Takes {
		clips = append(clips, NewClipFromTake(cf, &cf.Takes[i]))
	}
	return cf, clips
}

func testTopology(t *testing.T) *pose.Topology {
	t.Helper()
	topo, err := pose.NewTopology([]pose.Joint{
		{Name: "root", Parent: -1},
		{Name: "spine", Parent: 0},
	})
	if err != nil {
		t.Fatalf("NewTopology failed: %v", err)
	}
	return topo
}

func TestNewClipFromTake(t *testing.T) {
	_, clips := parseTestClips(t)

	walk := clips[0]
	if walk.Name() != "walk" {
		t.Errorf("Name: got %q, want walk", walk.Name())
	}
	if walk.Duration() != 1.0 {
		t.Errorf("Duration: got %v, want 1.0", walk.Duration())
	}
	if walk.Rep() != RepGraph {
		t.Errorf("Rep: got %v, want RepGraph", walk.Rep())
	}

	run := clips[1]
	if run.Rep() != RepTracks {
		t.Errorf("run Rep: got %v, want RepTracks (default)", run.Rep())
	}
	if run.Duration() != 0.5 {
		t.Errorf("run Duration: got %v, want 0.5", run.Duration())
	}
}

func TestClipChannelInheritance(t *testing.T) {
	cf, err := clipfile.ParseClipData([]byte(`<clips fps="30">
  <joints><joint name="root"/></joints>
  <take name="slide" duration="1.0">
    <track joint="root">
      <k t="0" x="5" y="3"/>
      <k t="1.0" x="9"/>
    </track>
  </take>
</clips>`))
	if err != nil {
		t.Fatalf("ParseClipData failed: %v", err)
	}
	clip := NewClipFromTake(cf, &cf.Takes[0])

	topo, err := pose.NewTopology([]pose.Joint{{Name: "root", Parent: -1}})
	if err != nil {
		t.Fatalf("NewTopology failed: %v", err)
	}
	g := pose.NewGraph(topo)

	// The second key omits y: it inherits y=3 from the first key.
	clip.SampleInto(g, 1.0)
	if g.Local[0].Translation[1] != 3 {
		t.Errorf("inherited y: got %v, want 3", g.Local[0].Translation[1])
	}
	if g.Local[0].Translation[0] != 9 {
		t.Errorf("x at end: got %v, want 9", g.Local[0].Translation[0])
	}
}

func TestClipSampleInterpolates(t *testing.T) {
	_, clips := parseTestClips(t)
	walk := clips[0]

	g := pose.NewGraph(testTopology(t))
	walk.SampleInto(g, 0.5)
	if got := g.Local[0].Translation[0]; got != 5 {
		t.Errorf("x at t=0.5: got %v, want 5", got)
	}
}

func TestClipSampleClamps(t *testing.T) {
	_, clips := parseTestClips(t)
	walk := clips[0]
	g := pose.NewGraph(testTopology(t))

	walk.SampleInto(g, -1)
	if got := g.Local[0].Translation[0]; got != 0 {
		t.Errorf("x before start: got %v, want 0", got)
	}

	walk.SampleInto(g, 99)
	if got := g.Local[0].Translation[0]; got != 10 {
		t.Errorf("x past end: got %v, want 10", got)
	}
}

func TestClipSampleSkipsUnknownJoints(t *testing.T) {
	cf, err := clipfile.ParseClipData([]byte(`<clips fps="30">
  <joints><joint name="tail"/></joints>
  <take name="wag" duration="1.0">
    <track joint="tail"><k t="0" x="7"/></track>
  </take>
</clips>`))
	if err != nil {
		t.Fatalf("ParseClipData failed: %v", err)
	}
	clip := NewClipFromTake(cf, &cf.Takes[0])

	// Graph topology has no "tail" joint: sampling must not disturb it.
	g := pose.NewGraph(testTopology(t))
	clip.SampleInto(g, 0)
	if g.Local[0] != pose.Identity() {
		t.Errorf("unrelated joint disturbed: %+v", g.Local[0])
	}
}
