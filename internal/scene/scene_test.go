package scene

import (
	"testing"

	"inkboard/internal/element"
)

func TestInsertForeignRemapsAndAppends(t *testing.T) {
	s := New()
	native := element.New(element.KindRectangle, 0, 0, 10, 10)
	s.Append(native)

	// Batch deliberately reuses the native element's id.
	foreign := element.New(element.KindEllipse, 5, 5, 10, 10)
	foreign.ID = native.ID
	other := element.New(element.KindText, 0, 0, 20, 10)

	inserted := s.InsertForeign([]*element.Element{foreign, other})

	if len(inserted) != 2 {
		t.Fatalf("inserted %d elements, want 2", len(inserted))
	}
	if s.Len() != 3 {
		t.Fatalf("scene has %d elements, want 3", s.Len())
	}
	if inserted[0].ID == native.ID {
		t.Error("colliding foreign id survived remap")
	}
	// The batch itself is untouched; the scene holds remapped copies.
	if foreign.ID != native.ID {
		t.Error("insert mutated the caller's batch")
	}

	ids := s.ExistingIDs()
	if len(ids) != 3 {
		t.Errorf("id set has %d entries, want 3", len(ids))
	}
	if _, ok := ids[inserted[0].ID]; !ok {
		t.Error("remapped id missing from the scene id set")
	}
}

func TestReplaceAllNotifies(t *testing.T) {
	s := New()
	changes := 0
	s.OnChange(func() { changes++ })

	s.Append(element.New(element.KindRectangle, 0, 0, 1, 1))
	s.ReplaceAll(nil)

	if changes != 2 {
		t.Errorf("change callback fired %d times, want 2", changes)
	}
	if s.Len() != 0 {
		t.Errorf("scene has %d elements after clearing, want 0", s.Len())
	}
}

func TestElementsReturnsCopy(t *testing.T) {
	s := New()
	s.Append(element.New(element.KindRectangle, 0, 0, 1, 1))

	list := s.Elements()
	list[0] = nil

	if s.Elements()[0] == nil {
		t.Error("mutating the returned slice leaked into the scene")
	}
}

func TestBounds(t *testing.T) {
	s := New()
	if _, ok := s.Bounds(); ok {
		t.Error("empty scene should report no bounds")
	}

	s.Append(
		element.New(element.KindRectangle, 0, 0, 100, 50),
		element.New(element.KindRectangle, 200, 100, 50, 50),
	)
	deleted := element.New(element.KindRectangle, -1000, -1000, 10, 10)
	deleted.IsDeleted = true
	s.Append(deleted)

	box, ok := s.Bounds()
	if !ok {
		t.Fatal("scene with content should report bounds")
	}
	if box.X != 0 || box.Y != 0 || box.Width != 250 || box.Height != 150 {
		t.Errorf("bounds = %+v, want 0,0 250x150 (deleted element excluded)", box)
	}
}

func TestCentroid(t *testing.T) {
	s := New()
	// Centers at 50,50 and 150,150.
	s.Append(
		element.New(element.KindRectangle, 0, 0, 100, 100),
		element.New(element.KindRectangle, 100, 100, 100, 100),
	)

	c := s.Centroid()
	if c.X != 100 || c.Y != 100 {
		t.Errorf("centroid = %v, want 100,100", c)
	}
}

func TestClipboardRoundTrip(t *testing.T) {
	a := element.New(element.KindArrow, 0, 0, 0, 0)
	a.StartBinding = &element.Binding{ElementID: "b", Focus: 0.3}
	b := element.New(element.KindRectangle, 10, 10, 40, 40)

	data, err := EncodeBatch([]*element.Element{a, b})
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecodeBatch(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d elements, want 2", len(got))
	}
	if got[0].ID != a.ID || got[0].Kind != element.KindArrow {
		t.Error("first element did not survive the round trip")
	}
	if got[0].StartBinding == nil || got[0].StartBinding.ElementID != "b" {
		t.Error("binding did not survive the round trip")
	}
}

func TestDecodeBatchRejectsForeignPayloads(t *testing.T) {
	if _, err := DecodeBatch([]byte(`just some text`)); err == nil {
		t.Error("non-JSON clipboard content should be rejected")
	}
	if _, err := DecodeBatch([]byte(`{"type":"other/thing","version":1}`)); err == nil {
		t.Error("unknown payload type should be rejected")
	}
	if _, err := DecodeBatch([]byte(`{"type":"inkboard/elements","version":99}`)); err == nil {
		t.Error("newer payload version should be rejected")
	}
}
