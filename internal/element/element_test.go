package element

import (
	"testing"

	"inkboard/pkg/geometry"
)

func TestCloneIsDeep(t *testing.T) {
	el := New(KindArrow, 10, 10, 0, 0)
	el.Points = []geometry.Point2D{{X: 0, Y: 0}, {X: 50, Y: 20}}
	el.GroupIDs = []string{"g1"}
	el.BoundElements = []BoundElement{{ID: "x", Type: KindText}}
	el.StartBinding = &Binding{ElementID: "x", Focus: 0.5}

	c := el.Clone()
	c.Points[0].X = 999
	c.GroupIDs[0] = "changed"
	c.BoundElements[0].ID = "changed"
	c.StartBinding.ElementID = "changed"

	if el.Points[0].X != 0 {
		t.Error("clone shares the points slice")
	}
	if el.GroupIDs[0] != "g1" {
		t.Error("clone shares the group id slice")
	}
	if el.BoundElements[0].ID != "x" {
		t.Error("clone shares the bound element slice")
	}
	if el.StartBinding.ElementID != "x" {
		t.Error("clone shares the start binding")
	}
}

func TestBoundsForLinearElements(t *testing.T) {
	el := New(KindLine, 100, 200, 0, 0)
	el.Points = []geometry.Point2D{{X: 0, Y: 0}, {X: 60, Y: -40}}

	box := el.Bounds()
	if box.X != 100 || box.Y != 160 || box.Width != 60 || box.Height != 40 {
		t.Errorf("bounds = %+v, want 100,160 60x40", box)
	}
}

func TestBoundsForBoxElements(t *testing.T) {
	el := New(KindRectangle, 5, 6, 70, 80)
	box := el.Bounds()
	if box.X != 5 || box.Y != 6 || box.Width != 70 || box.Height != 80 {
		t.Errorf("bounds = %+v, want 5,6 70x80", box)
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
