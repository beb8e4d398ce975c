package gesture

import (
	"inkboard/internal/viewport"
)

// WheelZoomSensitivity scales wheel delta into zoom delta. The delta is also
// multiplied by the current zoom so perceived sensitivity stays constant
// across zoom levels.
const WheelZoomSensitivity = 0.01

// WheelEvent is one raw wheel event, pre-translated by the surface adapter.
type WheelEvent struct {
	ClientX float64
	ClientY float64
	DeltaX  float64
	DeltaY  float64

	// ModifierPan turns the event into a pan instead of a zoom.
	ModifierPan bool
	// ModifierLock reserves the event for host-specific scrolling; the
	// adapter ignores it entirely.
	ModifierLock bool
	// OnSurface is true when the event target is the canvas render surface.
	// Events elsewhere pass through untouched.
	OnSurface bool
}

// Wheel converts wheel events into pan or anchored-zoom viewport proposals.
type Wheel struct {
	host Host
}

// NewWheel creates a wheel adapter for the given host.
func NewWheel(host Host) *Wheel {
	return &Wheel{host: host}
}

// Handle processes one wheel event. It returns true when the event was
// handled, in which case the caller must suppress the native scroll/zoom
// behavior so the two never race.
func (w *Wheel) Handle(ev WheelEvent) bool {
	if !ev.OnSurface {
		return false
	}
	if ev.ModifierLock {
		return false
	}

	vp, ok := w.host.Viewport()
	if !ok || !vp.Valid() {
		// Canvas not mounted yet; swallow the event without acting.
		return true
	}

	if ev.ModifierPan {
		// Dividing by zoom keeps perceived pan speed constant.
		vp.ScrollX -= ev.DeltaX / vp.Zoom
		vp.ScrollY -= ev.DeltaY / vp.Zoom
		if vp.Valid() {
			w.host.SetViewport(vp)
		}
		return true
	}

	delta := -ev.DeltaY * WheelZoomSensitivity * vp.Zoom
	nextZoom := viewport.ClampZoom(vp.Zoom + delta)
	w.host.SetViewport(viewport.ZoomAtPoint(ev.ClientX, ev.ClientY, vp, nextZoom))
	return true
}
