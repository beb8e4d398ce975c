package gesture

import (
	"testing"

	"inkboard/internal/viewport"
)

func newTestDragPan(vp viewport.State) (*DragPan, *fakeHost, *manualScheduler) {
	host := &fakeHost{vp: vp, mounted: true}
	frames := &manualScheduler{}
	return NewDragPan(host, frames), host, frames
}

func down(id int, x, y float64) PointerEvent {
	return PointerEvent{
		Kind: PointerDown, PointerID: id, Button: ButtonSecondary,
		Buttons: ButtonSecondary, ClientX: x, ClientY: y, OnSurface: true,
	}
}

func move(id int, x, y float64) PointerEvent {
	return PointerEvent{
		Kind: PointerMove, PointerID: id, Buttons: ButtonSecondary,
		ClientX: x, ClientY: y, OnSurface: true,
	}
}

func up(id int, x, y float64) PointerEvent {
	return PointerEvent{
		Kind: PointerUp, PointerID: id, Button: ButtonSecondary,
		ClientX: x, ClientY: y, OnSurface: true,
	}
}

func TestDragPanMovesScrollFromBaseline(t *testing.T) {
	d, host, frames := newTestDragPan(viewport.State{ScrollX: 10, ScrollY: 20, Zoom: 2})

	d.HandlePointer(down(1, 100, 100))
	if !d.Active() {
		t.Fatal("secondary-button down on surface should start a drag")
	}

	d.HandlePointer(move(1, 160, 80))
	frames.fire()

	// Screen delta (60,-20) divided by the start zoom.
	if host.vp.ScrollX != 10+30 || host.vp.ScrollY != 20-10 {
		t.Errorf("scroll = %v,%v, want 40,10", host.vp.ScrollX, host.vp.ScrollY)
	}
	if host.vp.Zoom != 2 {
		t.Errorf("drag pan must not change zoom, got %v", host.vp.Zoom)
	}
}

func TestDragPanCoalescesToOneFrame(t *testing.T) {
	d, host, frames := newTestDragPan(viewport.State{Zoom: 1})

	d.HandlePointer(down(1, 0, 0))
	for i := 1; i <= 10; i++ {
		d.HandlePointer(move(1, float64(i*10), 0))
	}

	// Nothing applied until the frame fires, and one frame consumes the
	// whole burst using the latest position.
	if host.sets != 0 {
		t.Fatalf("viewport updated %d times before the frame", host.sets)
	}
	frames.fire()
	if host.sets != 1 {
		t.Errorf("frame applied %d updates, want 1", host.sets)
	}
	if host.vp.ScrollX != 100 {
		t.Errorf("scroll = %v, want 100 (latest move)", host.vp.ScrollX)
	}
}

func TestDragPanIgnoresStaleMoves(t *testing.T) {
	d, host, frames := newTestDragPan(viewport.State{Zoom: 1})

	d.HandlePointer(down(1, 0, 0))

	// Button already released in the hardware queue: Buttons no longer
	// carries the pan button, so the move is stale.
	d.HandlePointer(PointerEvent{
		Kind: PointerMove, PointerID: 1, Buttons: 0,
		ClientX: 500, ClientY: 500, OnSurface: true,
	})
	frames.fire()

	if host.sets != 0 {
		t.Error("stale move must not schedule a viewport update")
	}
}

func TestDragPanIgnoresOtherPointers(t *testing.T) {
	d, host, frames := newTestDragPan(viewport.State{Zoom: 1})

	d.HandlePointer(down(1, 0, 0))
	d.HandlePointer(move(2, 300, 300))
	frames.fire()

	if host.sets != 0 {
		t.Error("moves from a different pointer must be ignored")
	}

	// And a second down while a drag is live does not restart the gesture.
	d.HandlePointer(down(2, 50, 50))
	d.HandlePointer(move(1, 10, 0))
	frames.fire()
	if host.vp.ScrollX != 10 {
		t.Errorf("baseline was disturbed by concurrent down: scroll=%v", host.vp.ScrollX)
	}
}

func TestDragPanPrimaryButtonDoesNotPan(t *testing.T) {
	d, host, _ := newTestDragPan(viewport.State{Zoom: 1})

	d.HandlePointer(PointerEvent{
		Kind: PointerDown, PointerID: 1, Button: ButtonPrimary,
		Buttons: ButtonPrimary, OnSurface: true,
	})
	if d.Active() {
		t.Error("primary button must not start a pan by default")
	}
	if host.sets != 0 {
		t.Error("viewport must be untouched")
	}
}

func TestDragPanUpFlushesPendingFrame(t *testing.T) {
	d, host, frames := newTestDragPan(viewport.State{Zoom: 1})

	d.HandlePointer(down(1, 0, 0))
	d.HandlePointer(move(1, 40, 0))
	// Release before the frame timer fires; the final position must not be
	// lost.
	d.HandlePointer(up(1, 40, 0))

	if host.vp.ScrollX != 40 {
		t.Errorf("scroll = %v, want 40 after flush on release", host.vp.ScrollX)
	}
	if frames.pending != nil {
		t.Error("no frame callback should remain after release")
	}
	if d.Active() {
		t.Error("gesture should be idle after release")
	}
}

func TestDragPanSuppressesContextMenuOnce(t *testing.T) {
	d, _, frames := newTestDragPan(viewport.State{Zoom: 1})

	d.HandlePointer(down(1, 0, 0))
	d.HandlePointer(move(1, 50, 0))
	frames.fire()
	d.HandlePointer(up(1, 50, 0))

	if !d.ConsumeContextMenu() {
		t.Error("menu event right after a drag should be suppressed")
	}
	if d.ConsumeContextMenu() {
		t.Error("suppression is one-shot; second menu event must pass")
	}
}

func TestDragPanPlainClickDoesNotSuppressMenu(t *testing.T) {
	d, _, _ := newTestDragPan(viewport.State{Zoom: 1})

	d.HandlePointer(down(1, 0, 0))
	d.HandlePointer(up(1, 0, 0))

	if d.ConsumeContextMenu() {
		t.Error("a click with no movement should let the context menu open")
	}
}

func TestDragPanCursorCallback(t *testing.T) {
	d, _, _ := newTestDragPan(viewport.State{Zoom: 1})

	var states []bool
	d.OnCursor(func(panning bool) { states = append(states, panning) })

	d.HandlePointer(down(1, 0, 0))
	d.HandlePointer(up(1, 0, 0))

	if len(states) != 2 || !states[0] || states[1] {
		t.Errorf("cursor states = %v, want [true false]", states)
	}
}

func TestDragPanCancelEndsGesture(t *testing.T) {
	d, host, frames := newTestDragPan(viewport.State{Zoom: 1})

	d.HandlePointer(down(1, 0, 0))
	d.HandlePointer(move(1, 30, 0))
	d.HandlePointer(PointerEvent{Kind: PointerCancel, PointerID: 1})

	if d.Active() {
		t.Error("cancel should end the gesture")
	}
	// The last position was still applied by the flush.
	if host.vp.ScrollX != 30 {
		t.Errorf("scroll = %v, want 30", host.vp.ScrollX)
	}
	if frames.pending != nil {
		t.Error("no frame callback should remain after cancel")
	}
}

func TestDragPanTeardownIsIdempotent(t *testing.T) {
	d, host, frames := newTestDragPan(viewport.State{Zoom: 1})

	d.HandlePointer(down(1, 0, 0))
	d.HandlePointer(move(1, 30, 0))

	d.Teardown()
	d.Teardown()

	if frames.cancels == 0 {
		t.Error("teardown must cancel the pending frame")
	}
	if d.Active() {
		t.Error("teardown must drop the active gesture")
	}

	// Events after teardown are inert.
	d.HandlePointer(down(1, 0, 0))
	if d.Active() || host.sets != 0 {
		t.Error("controller must stay inert after teardown")
	}
}

func TestDragPanOffSurfaceDownIgnored(t *testing.T) {
	d, _, _ := newTestDragPan(viewport.State{Zoom: 1})

	ev := down(1, 0, 0)
	ev.OnSurface = false
	d.HandlePointer(ev)

	if d.Active() {
		t.Error("down outside the surface must not start a drag")
	}
}
