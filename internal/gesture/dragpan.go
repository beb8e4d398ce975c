package gesture

import (
	"sync"
	"time"

	"inkboard/internal/viewport"
)

// menuSuppressWindow is how long after pointer-up a context-menu event is
// still swallowed following a drag. A stray menu event arriving after this
// window leaks through rather than being suppressed forever.
const menuSuppressWindow = 200 * time.Millisecond

// dragState is the ephemeral per-gesture record for a drag-pan. The scroll
// and zoom baseline is captured once at pointer-down and never re-read
// mid-gesture, so asynchronous host updates cannot make the pan drift.
type dragState struct {
	pointerID int

	startClientX float64
	startClientY float64
	startScrollX float64
	startScrollY float64
	startZoom    float64

	prevClientX float64
	prevClientY float64
	didPan      bool
}

// DragPan recognizes a secondary-button drag on the canvas surface as a pan
// gesture. Viewport updates are batched to at most one per animation frame
// through the scheduler, and the context menu the drag would otherwise pop
// is suppressed exactly once.
type DragPan struct {
	mu sync.Mutex

	host   Host
	frames FrameScheduler

	// panButton is the button that triggers a pan (secondary by default).
	panButton PointerButton

	state *dragState

	menuArmed   bool
	disarmTimer *time.Timer

	onCursor func(panning bool)
	torn     bool
}

// NewDragPan creates a drag-pan controller. The scheduler owns frame-cadence
// batching; pass a fresh one per controller.
func NewDragPan(host Host, frames FrameScheduler) *DragPan {
	return &DragPan{
		host:      host,
		frames:    frames,
		panButton: ButtonSecondary,
	}
}

// SetPanButton overrides which button starts a pan.
func (d *DragPan) SetPanButton(button PointerButton) {
	d.mu.Lock()
	d.panButton = button
	d.mu.Unlock()
}

// OnCursor sets the callback toggling the "panning" cursor affordance.
func (d *DragPan) OnCursor(callback func(panning bool)) {
	d.onCursor = callback
}

// Active reports whether a drag gesture is in progress.
func (d *DragPan) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state != nil
}

// HandlePointer feeds one pointer event into the controller.
func (d *DragPan) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		d.pointerDown(ev)
	case PointerMove:
		d.pointerMove(ev)
	case PointerUp, PointerCancel:
		d.pointerUp(ev)
	}
}

func (d *DragPan) pointerDown(ev PointerEvent) {
	d.mu.Lock()
	if d.torn || d.state != nil || ev.Button != d.panButton || !ev.OnSurface {
		d.mu.Unlock()
		return
	}

	vp, ok := d.host.Viewport()
	if !ok || !vp.Valid() {
		d.mu.Unlock()
		return
	}

	d.state = &dragState{
		pointerID:    ev.PointerID,
		startClientX: ev.ClientX,
		startClientY: ev.ClientY,
		startScrollX: vp.ScrollX,
		startScrollY: vp.ScrollY,
		startZoom:    vp.Zoom,
		prevClientX:  ev.ClientX,
		prevClientY:  ev.ClientY,
	}

	// Arm context-menu suppression for the whole gesture; a plain click
	// (no movement) disarms again at pointer-up.
	d.stopDisarmTimerLocked()
	d.menuArmed = true
	d.mu.Unlock()

	if d.onCursor != nil {
		d.onCursor(true)
	}
}

func (d *DragPan) pointerMove(ev PointerEvent) {
	d.mu.Lock()
	s := d.state
	if s == nil || ev.PointerID != s.pointerID {
		d.mu.Unlock()
		return
	}
	if ev.Buttons&d.panButton == 0 {
		// Trigger already released; the event is stale.
		d.mu.Unlock()
		return
	}

	s.didPan = true
	s.prevClientX = ev.ClientX
	s.prevClientY = ev.ClientY
	d.mu.Unlock()

	// Coalesce to one update per frame; the callback re-reads the latest
	// pointer position when it finally runs.
	d.frames.Request(d.applyPending)
}

// applyPending pushes the pan implied by the latest pointer position,
// always computed from the gesture-start baseline.
func (d *DragPan) applyPending() {
	d.mu.Lock()
	s := d.state
	if s == nil {
		d.mu.Unlock()
		return
	}
	next := viewport.State{
		ScrollX: s.startScrollX + (s.prevClientX-s.startClientX)/s.startZoom,
		ScrollY: s.startScrollY + (s.prevClientY-s.startClientY)/s.startZoom,
		Zoom:    s.startZoom,
	}
	d.mu.Unlock()

	if next.Valid() {
		d.host.SetViewport(next)
	}
}

func (d *DragPan) pointerUp(ev PointerEvent) {
	d.mu.Lock()
	s := d.state
	if s == nil || ev.PointerID != s.pointerID {
		d.mu.Unlock()
		return
	}
	didPan := s.didPan
	d.mu.Unlock()

	// Apply the final position before releasing the gesture slot.
	d.frames.Flush()

	d.mu.Lock()
	d.state = nil
	if didPan {
		// Swallow the context menu this drag would pop, then disarm after a
		// short window so a late stray event cannot leak through later.
		d.stopDisarmTimerLocked()
		d.disarmTimer = time.AfterFunc(menuSuppressWindow, d.disarmMenu)
	} else {
		d.menuArmed = false
	}
	d.mu.Unlock()

	if d.onCursor != nil {
		d.onCursor(false)
	}
}

// ConsumeContextMenu reports whether a pending context-menu event should be
// suppressed, consuming the suppression. At most one menu event per drag is
// swallowed.
func (d *DragPan) ConsumeContextMenu() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.menuArmed {
		return false
	}
	d.menuArmed = false
	d.stopDisarmTimerLocked()
	return true
}

func (d *DragPan) disarmMenu() {
	d.mu.Lock()
	d.menuArmed = false
	d.disarmTimer = nil
	d.mu.Unlock()
}

func (d *DragPan) stopDisarmTimerLocked() {
	if d.disarmTimer != nil {
		d.disarmTimer.Stop()
		d.disarmTimer = nil
	}
}

// Teardown cancels any pending frame callback and releases all gesture
// state. Safe to call more than once.
func (d *DragPan) Teardown() {
	d.mu.Lock()
	if d.torn {
		d.mu.Unlock()
		return
	}
	d.torn = true
	d.state = nil
	d.menuArmed = false
	d.stopDisarmTimerLocked()
	d.mu.Unlock()

	d.frames.Cancel()
}
