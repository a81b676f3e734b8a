package clipfile

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleClipXML = `<clips fps="30">
  <joints>
    <joint name="root"/>
    <joint name="spine" parent="root"/>
    <joint name="head" parent="spine"/>
  </joints>
  <take name="walk" duration="1.0">
    <track joint="root">
      <k t="0" x="0" y="0"/>
      <k t="1.0" x="2"/>
    </track>
    <track joint="head">
      <k t="0" rz="0" rw="1"/>
    </track>
  </take>
  <take name="run" duration="0.5" mode="tracks">
    <track joint="root">
      <k t="0" x="0"/>
      <k t="0.5" x="4"/>
    </track>
  </take>
</clips>`

func TestParseClipData(t *testing.T) {
	cf, err := ParseClipData([]byte(sampleClipXML))
	if err != nil {
		t.Fatalf("ParseClipData failed: %v", err)
	}

	if cf.FPS != 30 {
		t.Errorf("FPS: got %d, want 30", cf.FPS)
	}
	if len(cf.Joints) != 3 {
		t.Fatalf("Joints: got %d, want 3", len(cf.Joints))
	}
	if cf.Joints[1].Name != "spine" || cf.Joints[1].Parent != "root" {
		t.Errorf("joint 1: got %+v, want spine with parent root", cf.Joints[1])
	}
	if len(cf.Takes) != 2 {
		t.Fatalf("Takes: got %d, want 2", len(cf.Takes))
	}

	walk := cf.Takes[0]
	if walk.Name != "walk" || walk.Duration != 1.0 {
		t.Errorf("take 0: got %q/%v, want walk/1.0", walk.Name, walk.Duration)
	}
	if len(walk.Tracks) != 2 {
		t.Fatalf("walk tracks: got %d, want 2", len(walk.Tracks))
	}

	rootTrack := walk.Tracks[0]
	if rootTrack.Joint != "root" {
		t.Errorf("track joint: got %q, want root", rootTrack.Joint)
	}
	if len(rootTrack.Keys) != 2 {
		t.Fatalf("root keys: got %d, want 2", len(rootTrack.Keys))
	}

	k1 := rootTrack.Keys[1]
	if k1.T == nil || *k1.T != 1.0 {
		t.Errorf("key 1 time: got %v, want 1.0", k1.T)
	}
	if k1.X == nil || *k1.X != 2 {
		t.Errorf("key 1 x: got %v, want 2", k1.X)
	}
	// Omitted channels stay nil so inheritance can apply downstream.
	if k1.Y != nil {
		t.Errorf("key 1 y: got %v, want nil", *k1.Y)
	}
}

func TestParseClipDataDefaultsFPS(t *testing.T) {
	cf, err := ParseClipData([]byte(`<clips><joints><joint name="root"/></joints></clips>`))
	if err != nil {
		t.Fatalf("ParseClipData failed: %v", err)
	}
	if cf.FPS != 30 {
		t.Errorf("default FPS: got %d, want 30", cf.FPS)
	}
}

func TestParseClipDataValidation(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{
			name: "no joints",
			xml:  `<clips fps="30"><take name="walk"/></clips>`,
		},
		{
			name: "duplicate joint",
			xml:  `<clips><joints><joint name="a"/><joint name="a"/></joints></clips>`,
		},
		{
			name: "parent declared after child",
			xml:  `<clips><joints><joint name="a" parent="b"/><joint name="b"/></joints></clips>`,
		},
		{
			name: "duplicate take",
			xml:  `<clips><joints><joint name="r"/></joints><take name="walk"/><take name="walk"/></clips>`,
		},
		{
			name: "empty take name",
			xml:  `<clips><joints><joint name="r"/></joints><take name=""/></clips>`,
		},
		{
			name: "unknown mode",
			xml:  `<clips><joints><joint name="r"/></joints><take name="walk" mode="weird"/></clips>`,
		},
		{
			name: "track on undeclared joint",
			xml:  `<clips><joints><joint name="r"/></joints><take name="walk"><track joint="nope"/></take></clips>`,
		},
		{
			name: "malformed xml",
			xml:  `<clips><joints>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseClipData([]byte(tt.xml)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestParseClipFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soldier.clip")
	if err := os.WriteFile(path, []byte(sampleClipXML), 0o644); err != nil {
		t.Fatalf("failed to write test clip: %v", err)
	}

	cf, err := ParseClipFile(path)
	if err != nil {
		t.Fatalf("ParseClipFile failed: %v", err)
	}
	if len(cf.Takes) != 2 {
		t.Errorf("Takes: got %d, want 2", len(cf.Takes))
	}

	if _, err := ParseClipFile(filepath.Join(dir, "missing.clip")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestKeyTimeDerivedFromFPS(t *testing.T) {
	cf := &ClipFileXML{FPS: 10}
	k := Key{}
	if got := cf.KeyTime(&k, 5); got != 0.5 {
		t.Errorf("derived key time: got %v, want 0.5", got)
	}

	explicit := 2.0
	k.T = &explicit
	if got := cf.KeyTime(&k, 5); got != 2.0 {
		t.Errorf("explicit key time: got %v, want 2.0", got)
	}
}

func TestTakeDurationDerivedFromKeys(t *testing.T) {
	cf, err := ParseClipData([]byte(`<clips fps="30">
  <joints><joint name="root"/></joints>
  <take name="bounce">
    <track joint="root">
      <k t="0" x="0"/>
      <k t="0.75" x="1"/>
    </track>
  </take>
</clips>`))
	if err != nil {
		t.Fatalf("ParseClipData failed: %v", err)
	}

	if got := cf.TakeDuration(&cf.Takes[0]); got != 0.75 {
		t.Errorf("derived duration: got %v, want 0.75", got)
	}
}
