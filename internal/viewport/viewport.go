// Package viewport provides the pan/zoom transform between screen and world
// coordinates on the infinite canvas.
package viewport

import (
	"math"

	"inkboard/pkg/geometry"
)

// Zoom bounds for the canvas.
const (
	MinZoom = 0.1
	MaxZoom = 10.0
)

// State describes where the viewport looks: a scroll offset plus a zoom
// factor. A world point maps to the screen as screen = world*zoom + scroll.
// The canvas widget owns the live value; gesture handlers only propose new
// states through the host.
type State struct {
	ScrollX float64 `json:"scroll_x"`
	ScrollY float64 `json:"scroll_y"`
	Zoom    float64 `json:"zoom"`
}

// Default returns the initial viewport: origin at the top-left, zoom 1.
func Default() State {
	return State{Zoom: 1}
}

// ClampZoom saturates a zoom value into [MinZoom, MaxZoom]. NaN clamps to
// MinZoom so a degenerate intermediate value can never stick.
func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// Valid reports whether the state is finite with a positive zoom.
func (s State) Valid() bool {
	return !math.IsNaN(s.ScrollX) && !math.IsInf(s.ScrollX, 0) &&
		!math.IsNaN(s.ScrollY) && !math.IsInf(s.ScrollY, 0) &&
		!math.IsNaN(s.Zoom) && !math.IsInf(s.Zoom, 0) && s.Zoom > 0
}

// WorldFromScreen converts a screen position to world coordinates.
func (s State) WorldFromScreen(screenX, screenY float64) (worldX, worldY float64) {
	worldX = (screenX - s.ScrollX) / s.Zoom
	worldY = (screenY - s.ScrollY) / s.Zoom
	return
}

// ScreenFromWorld converts a world position to screen coordinates.
func (s State) ScreenFromWorld(worldX, worldY float64) (screenX, screenY float64) {
	screenX = worldX*s.Zoom + s.ScrollX
	screenY = worldY*s.Zoom + s.ScrollY
	return
}

// ZoomAtPoint returns the state with zoom set to nextZoom and the scroll
// offset recomputed so the world point currently under (anchorX, anchorY)
// stays under the same screen point. A non-finite input or result leaves the
// previous state unchanged rather than propagating NaN into the live
// viewport.
func ZoomAtPoint(anchorX, anchorY float64, s State, nextZoom float64) State {
	if !s.Valid() {
		return s
	}
	nextZoom = ClampZoom(nextZoom)

	worldX := (anchorX - s.ScrollX) / s.Zoom
	worldY := (anchorY - s.ScrollY) / s.Zoom

	next := State{
		ScrollX: anchorX - worldX*nextZoom,
		ScrollY: anchorY - worldY*nextZoom,
		Zoom:    nextZoom,
	}
	if !next.Valid() {
		return s
	}
	return next
}

// Transform returns the world-to-screen mapping as an affine transform.
func (s State) Transform() geometry.AffineTransform {
	return geometry.Translation(s.ScrollX, s.ScrollY).
		Compose(geometry.Scale(s.Zoom, s.Zoom))
}
