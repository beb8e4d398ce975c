package gesture

import (
	"math"
	"time"

	"inkboard/internal/viewport"
)

// Two-finger gesture classification thresholds.
const (
	// tapMaxDuration is the longest a two-finger contact can last and still
	// count as a tap.
	tapMaxDuration = 400 * time.Millisecond
	// moveDistanceThreshold is the centroid displacement (px) past which the
	// gesture is a pan/zoom, not a tap.
	moveDistanceThreshold = 15.0
	// moveScaleThreshold is the relative pinch scale change past which the
	// gesture is a pan/zoom, not a tap.
	moveScaleThreshold = 0.05
)

// TouchPoint is one active touch contact in screen coordinates.
type TouchPoint struct {
	ID int
	X  float64
	Y  float64
}

// twoFingerState is the ephemeral per-gesture record, created when two
// fingers land, mutated on every move, and discarded when the gesture ends.
// It snapshots the viewport at gesture start; moves always compute from this
// baseline, never from the live (possibly already-mutated) viewport, so
// error cannot compound across many small moves.
type twoFingerState struct {
	centerX  float64
	centerY  float64
	distance float64

	// World point under the initial centroid; the pan/zoom keeps it glued
	// to the moving centroid.
	worldX float64
	worldY float64

	zoom float64

	start       time.Time
	movedEnough bool
}

// Touch is the two-finger gesture state machine: Idle -> TwoFingerActive ->
// Idle. While active it emits pinch-zoom plus two-finger pan updates; on
// release it classifies the gesture as either a completed pan/zoom or a
// two-finger tap.
type Touch struct {
	host    Host
	gesture *twoFingerState
	onTap   func(x, y float64)

	// now is swappable for tests.
	now func() time.Time
}

// NewTouch creates a touch gesture recognizer for the given host.
func NewTouch(host Host) *Touch {
	return &Touch{host: host, now: time.Now}
}

// OnTwoFingerTap sets the callback invoked with the gesture centroid when a
// two-finger tap is recognized (used by the host to open a context menu).
func (t *Touch) OnTwoFingerTap(callback func(x, y float64)) {
	t.onTap = callback
}

// Active reports whether a two-finger gesture is in progress.
func (t *Touch) Active() bool {
	return t.gesture != nil
}

// Update feeds the current set of active touch points into the state
// machine. The surface adapter calls it on every touch start, move, and end.
func (t *Touch) Update(points []TouchPoint) {
	switch {
	case t.gesture == nil && len(points) == 2:
		t.begin(points)
	case t.gesture != nil && len(points) >= 2:
		t.move(points)
	case t.gesture != nil && len(points) < 2:
		t.end()
	}
}

func (t *Touch) begin(points []TouchPoint) {
	vp, ok := t.host.Viewport()
	if !ok || !vp.Valid() {
		return
	}

	cx, cy, dist := CenterAndDistance(points)
	wx, wy := vp.WorldFromScreen(cx, cy)
	t.gesture = &twoFingerState{
		centerX:  cx,
		centerY:  cy,
		distance: dist,
		worldX:   wx,
		worldY:   wy,
		zoom:     vp.Zoom,
		start:    t.now(),
	}
}

func (t *Touch) move(points []TouchPoint) {
	g := t.gesture
	cx, cy, dist := CenterAndDistance(points)

	scale := dist / g.distance
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	nextZoom := viewport.ClampZoom(g.zoom * scale)

	// Same zoom-at-point formula as the wheel path, anchored at the moving
	// centroid and solved against the captured baseline.
	next := viewport.State{
		ScrollX: cx - g.worldX*nextZoom,
		ScrollY: cy - g.worldY*nextZoom,
		Zoom:    nextZoom,
	}
	if next.Valid() {
		t.host.SetViewport(next)
	}

	if !g.movedEnough {
		dx := cx - g.centerX
		dy := cy - g.centerY
		if math.Hypot(dx, dy) > moveDistanceThreshold ||
			math.Abs(scale-1) > moveScaleThreshold {
			g.movedEnough = true
		}
	}
}

func (t *Touch) end() {
	g := t.gesture
	t.gesture = nil

	if !g.movedEnough && t.now().Sub(g.start) < tapMaxDuration {
		if t.onTap != nil {
			t.onTap(g.centerX, g.centerY)
		}
	}
	// Otherwise a completed pan/zoom; updates were already applied per move.
}

// CenterAndDistance returns the centroid and spread of the first two touch
// points. With fewer than two points it returns a degenerate but finite
// result (distance 1) so callers never divide by zero when a finger
// disappears mid-gesture.
func CenterAndDistance(points []TouchPoint) (cx, cy, distance float64) {
	switch len(points) {
	case 0:
		return 0, 0, 1
	case 1:
		return points[0].X, points[0].Y, 1
	}

	a, b := points[0], points[1]
	cx = (a.X + b.X) / 2
	cy = (a.Y + b.Y) / 2
	distance = math.Hypot(b.X-a.X, b.Y-a.Y)
	if distance == 0 || math.IsNaN(distance) {
		distance = 1
	}
	return cx, cy, distance
}
