// Package gesture turns raw wheel, pointer, and touch input into viewport
// updates. Handlers read the current viewport from the host, compute a new
// state via the viewport math, and propose it back through the host's single
// update entry point. All handling is single-threaded and event-driven;
// per-gesture state is created at gesture start and discarded at gesture end.
package gesture

import (
	"inkboard/internal/viewport"
)

// Host is the canvas host the gesture handlers talk to. Viewport returns
// false while the canvas is not mounted, in which case the handler is a
// no-op for that event. SetViewport is a synchronous, fire-and-forget
// proposal; the host is free to clamp or batch further.
type Host interface {
	Viewport() (viewport.State, bool)
	SetViewport(viewport.State)
}

// Surface is an input event source the setup functions attach to. Each Add
// method registers a listener and returns a function that removes it;
// removal must be idempotent.
type Surface interface {
	AddWheelListener(func(WheelEvent)) (remove func())
	AddPointerListener(func(PointerEvent)) (remove func())
	AddTouchListener(func([]TouchPoint)) (remove func())
}

// SetupWheel attaches a wheel adapter to the surface and returns its
// teardown. Teardown is safe to call more than once.
func SetupWheel(surface Surface, host Host) func() {
	w := NewWheel(host)
	remove := surface.AddWheelListener(func(ev WheelEvent) {
		w.Handle(ev)
	})
	return teardown(remove)
}

// SetupTouch attaches a two-finger touch state machine to the surface.
// onTap receives the centroid of a two-finger tap in screen coordinates.
func SetupTouch(surface Surface, host Host, onTap func(x, y float64)) func() {
	t := NewTouch(host)
	t.OnTwoFingerTap(onTap)
	remove := surface.AddTouchListener(t.Update)
	return teardown(remove)
}

// SetupDragPan attaches a drag-pan controller to the surface and returns the
// controller (for context-menu coordination) plus its teardown.
func SetupDragPan(surface Surface, host Host, frames FrameScheduler) (*DragPan, func()) {
	d := NewDragPan(host, frames)
	remove := surface.AddPointerListener(d.HandlePointer)
	return d, teardown(remove, d.Teardown)
}

// teardown bundles cleanup steps into a single function that is safe to
// call more than once.
func teardown(steps ...func()) func() {
	done := false
	return func() {
		if done {
			return
		}
		done = true
		for _, step := range steps {
			if step != nil {
				step()
			}
		}
	}
}
