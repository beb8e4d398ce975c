package merge

import (
	"encoding/json"
	"testing"

	"inkboard/internal/element"
)

func rect(id string) *element.Element {
	el := element.New(element.KindRectangle, 0, 0, 100, 100)
	el.ID = id
	return el
}

func TestRemapMintsFreshDisjointIDs(t *testing.T) {
	existing := IDSet{"a": {}, "b": {}}
	batch := []*element.Element{rect("a"), rect("b"), rect("c")}

	out := RemapElementIDsForAppend(existing, batch)

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	seen := make(map[string]bool)
	for i, el := range out {
		if el.ID == batch[i].ID {
			t.Errorf("element %d kept its original id %q", i, el.ID)
		}
		if _, clash := existing[el.ID]; clash {
			t.Errorf("element %d id %q collides with destination", i, el.ID)
		}
		if seen[el.ID] {
			t.Errorf("element %d id %q duplicated in output", i, el.ID)
		}
		seen[el.ID] = true
	}
}

func TestRemapTwoRunsAreDisjoint(t *testing.T) {
	batch := []*element.Element{rect("a"), rect("b")}

	first := RemapElementIDsForAppend(nil, batch)
	second := RemapElementIDsForAppend(nil, batch)

	for _, f := range first {
		for _, s := range second {
			if f.ID == s.ID {
				t.Errorf("runs shared id %q; every run must mint fresh ids", f.ID)
			}
		}
	}
}

func TestRemapPreservesOrderAndContent(t *testing.T) {
	a := rect("a")
	a.X, a.Y = 10, 20
	a.Text = "hello"
	b := element.New(element.KindEllipse, 5, 5, 50, 50)
	b.ID = "b"
	b.StrokeColor = "#ff0000"

	out := RemapElementIDsForAppend(nil, []*element.Element{a, b})

	if out[0].Kind != element.KindRectangle || out[1].Kind != element.KindEllipse {
		t.Fatal("output order differs from input order")
	}
	if out[0].X != 10 || out[0].Y != 20 || out[0].Text != "hello" {
		t.Error("non-identifier fields of first element changed")
	}
	if out[1].StrokeColor != "#ff0000" {
		t.Error("non-identifier fields of second element changed")
	}
}

func TestRemapDuplicateIDsCollapse(t *testing.T) {
	// Three copies of the same id still come out as three elements, all
	// sharing the single fresh id minted for the first occurrence.
	batch := []*element.Element{rect("dup"), rect("dup"), rect("dup")}

	out := RemapElementIDsForAppend(nil, batch)

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].ID != out[1].ID || out[1].ID != out[2].ID {
		t.Errorf("duplicated input ids must map to one fresh id, got %q %q %q",
			out[0].ID, out[1].ID, out[2].ID)
	}
	if out[0].ID == "dup" {
		t.Error("fresh id must differ from the original")
	}
}

func TestRemapGroupIDsConsistently(t *testing.T) {
	a := rect("a")
	a.GroupIDs = []string{"g1", "g2"}
	b := rect("b")
	b.GroupIDs = []string{"g1"}

	out := RemapElementIDsForAppend(nil, []*element.Element{a, b})

	if out[0].GroupIDs[0] == "g1" {
		t.Error("group id survived unremapped")
	}
	if out[0].GroupIDs[0] != out[1].GroupIDs[0] {
		t.Errorf("shared group id diverged: %q vs %q", out[0].GroupIDs[0], out[1].GroupIDs[0])
	}
	if out[0].GroupIDs[0] == out[0].GroupIDs[1] {
		t.Error("distinct group ids collapsed")
	}
}

func TestRemapFrameAndContainerReferences(t *testing.T) {
	frame := rect("frame")
	frame.Kind = element.KindFrame
	inFrame := rect("child")
	inFrame.FrameID = "frame"
	orphan := rect("orphan")
	orphan.FrameID = "stays-behind" // frame not in batch
	contained := rect("contained")
	contained.ContainerID = "gone" // container not in batch

	out := RemapElementIDsForAppend(nil, []*element.Element{frame, inFrame, orphan, contained})

	if out[1].FrameID != out[0].ID {
		t.Errorf("travelling frame ref = %q, want frame's fresh id %q", out[1].FrameID, out[0].ID)
	}
	if out[2].FrameID != "" {
		t.Errorf("dangling frame ref = %q, want cleared", out[2].FrameID)
	}
	if out[3].ContainerID != "" {
		t.Errorf("dangling container ref = %q, want cleared", out[3].ContainerID)
	}
}

func TestRemapBoundElementsFiltered(t *testing.T) {
	label := rect("label")
	label.Kind = element.KindText
	shape := rect("shape")
	shape.BoundElements = []element.BoundElement{
		{ID: "label", Type: element.KindText},
		{ID: "not-here", Type: element.KindArrow},
	}

	out := RemapElementIDsForAppend(nil, []*element.Element{label, shape})

	got := out[1].BoundElements
	if len(got) != 1 {
		t.Fatalf("bound elements = %d, want 1 (outsider dropped)", len(got))
	}
	if got[0].ID != out[0].ID {
		t.Errorf("surviving bound ref = %q, want label's fresh id %q", got[0].ID, out[0].ID)
	}
	if got[0].Type != element.KindText {
		t.Errorf("bound ref type changed to %q", got[0].Type)
	}
}

func TestRemapBoundElementsAllDroppedBecomesNil(t *testing.T) {
	shape := rect("shape")
	shape.BoundElements = []element.BoundElement{{ID: "outsider", Type: element.KindText}}

	out := RemapElementIDsForAppend(nil, []*element.Element{shape})

	if out[0].BoundElements != nil {
		t.Errorf("bound elements = %v, want nil when nothing survives", out[0].BoundElements)
	}
}

func TestRemapBindings(t *testing.T) {
	target := rect("target")
	arrow := element.New(element.KindArrow, 0, 0, 0, 0)
	arrow.ID = "arrow"
	arrow.StartBinding = &element.Binding{ElementID: "target", Focus: 0.5, Gap: 4}
	arrow.EndBinding = &element.Binding{ElementID: "elsewhere", Focus: 0.2}

	out := RemapElementIDsForAppend(nil, []*element.Element{target, arrow})

	sb := out[1].StartBinding
	if sb == nil {
		t.Fatal("binding to a travelling target must survive")
	}
	if sb.ElementID != out[0].ID {
		t.Errorf("binding target = %q, want %q", sb.ElementID, out[0].ID)
	}
	if sb.Focus != 0.5 || sb.Gap != 4 {
		t.Error("binding payload fields changed")
	}
	if out[1].EndBinding != nil {
		t.Error("binding to an element outside the batch must be cleared, not left dangling")
	}
}

func TestRemapNeverMutatesInput(t *testing.T) {
	a := rect("a")
	a.GroupIDs = []string{"g1"}
	a.FrameID = "frame"
	a.BoundElements = []element.BoundElement{{ID: "b", Type: element.KindText}}
	a.StartBinding = &element.Binding{ElementID: "b"}
	b := rect("b")
	frame := rect("frame")
	frame.Kind = element.KindFrame
	batch := []*element.Element{a, b, frame}

	before, err := json.Marshal(batch)
	if err != nil {
		t.Fatal(err)
	}

	RemapElementIDsForAppend(IDSet{"x": {}}, batch)

	after, err := json.Marshal(batch)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Errorf("input batch was mutated:\nbefore %s\nafter  %s", before, after)
	}
}

func TestRemapEmptyBatch(t *testing.T) {
	out := RemapElementIDsForAppend(IDSet{"a": {}}, nil)
	if len(out) != 0 {
		t.Errorf("empty batch produced %d elements", len(out))
	}
}
