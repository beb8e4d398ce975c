package project

import (
	"os"
	"path/filepath"
	"testing"

	"inkboard/internal/element"
	"inkboard/internal/viewport"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.inkproj")

	proj := New("demo")
	proj.Viewport = viewport.State{ScrollX: -40, ScrollY: 25, Zoom: 1.75}
	el := element.New(element.KindRectangle, 10, 20, 100, 50)
	el.FrameID = "frame-1"
	proj.Elements = []*element.Element{el}

	if err := proj.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "demo" || got.Version != currentVersion {
		t.Errorf("header = %q v%d, want demo v%d", got.Name, got.Version, currentVersion)
	}
	if got.Viewport != proj.Viewport {
		t.Errorf("viewport = %+v, want %+v", got.Viewport, proj.Viewport)
	}
	if len(got.Elements) != 1 || got.Elements[0].ID != el.ID || got.Elements[0].FrameID != "frame-1" {
		t.Errorf("elements did not survive the round trip: %+v", got.Elements)
	}
}

func TestLoadResetsInvalidViewport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.inkproj")

	// A legacy file with no viewport block decodes to a zero (invalid) state.
	if err := os.WriteFile(path, []byte(`{"version":1,"name":"old","elements":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Viewport.Valid() {
		t.Errorf("viewport = %+v, want reset to a valid default", got.Viewport)
	}
	if got.Viewport != viewport.Default() {
		t.Errorf("viewport = %+v, want %+v", got.Viewport, viewport.Default())
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.inkproj")
	if err := os.WriteFile(path, []byte(`{"version":99,"name":"future"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("loading a newer schema version should fail")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.inkproj")); err == nil {
		t.Error("loading a missing file should fail")
	}
}
