package viewport

import (
	"math"
	"testing"
)

func TestClampZoom(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.5, 0.5},
		{1.0, 1.0},
		{MinZoom, MinZoom},
		{MaxZoom, MaxZoom},
		{0.001, MinZoom},
		{-3, MinZoom},
		{100, MaxZoom},
		{math.Inf(1), MaxZoom},
		{math.Inf(-1), MinZoom},
		{math.NaN(), MinZoom},
	}
	for _, c := range cases {
		got := ClampZoom(c.in)
		if got != c.want {
			t.Errorf("ClampZoom(%v) = %v, want %v", c.in, got, c.want)
		}
		if got < MinZoom || got > MaxZoom {
			t.Errorf("ClampZoom(%v) = %v out of range", c.in, got)
		}
	}
}

func TestWorldScreenRoundTrip(t *testing.T) {
	vp := State{ScrollX: -120, ScrollY: 45, Zoom: 2.5}

	wx, wy := vp.WorldFromScreen(300, 200)
	sx, sy := vp.ScreenFromWorld(wx, wy)

	if math.Abs(sx-300) > 1e-9 || math.Abs(sy-200) > 1e-9 {
		t.Errorf("round trip moved point: got %v,%v want 300,200", sx, sy)
	}
}

func TestZoomAtPointAnchorInvariance(t *testing.T) {
	cases := []struct {
		name     string
		vp       State
		anchorX  float64
		anchorY  float64
		nextZoom float64
	}{
		{"zoom in at origin", State{Zoom: 1}, 0, 0, 2},
		{"zoom in at cursor", State{ScrollX: 50, ScrollY: -20, Zoom: 1}, 400, 300, 2},
		{"zoom out", State{ScrollX: -300, ScrollY: 175, Zoom: 4}, 123, 456, 0.5},
		{"tiny step", State{ScrollX: 10, ScrollY: 10, Zoom: 1.37}, 640, 480, 1.371},
		{"clamped high", State{Zoom: 8}, 100, 100, 50},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			beforeX, beforeY := c.vp.WorldFromScreen(c.anchorX, c.anchorY)

			next := ZoomAtPoint(c.anchorX, c.anchorY, c.vp, c.nextZoom)

			if next.Zoom != ClampZoom(c.nextZoom) {
				t.Errorf("zoom = %v, want %v", next.Zoom, ClampZoom(c.nextZoom))
			}

			afterX, afterY := next.WorldFromScreen(c.anchorX, c.anchorY)
			if math.Abs(afterX-beforeX) > 1e-9 || math.Abs(afterY-beforeY) > 1e-9 {
				t.Errorf("anchor world point moved: before %v,%v after %v,%v",
					beforeX, beforeY, afterX, afterY)
			}
		})
	}
}

func TestZoomAtPointDegenerateInput(t *testing.T) {
	// A zero or non-finite zoom in the input must not propagate NaN; the
	// previous state comes back unchanged.
	broken := []State{
		{ScrollX: 10, ScrollY: 10, Zoom: 0},
		{ScrollX: math.NaN(), ScrollY: 0, Zoom: 1},
		{ScrollX: 0, ScrollY: math.Inf(1), Zoom: 1},
	}
	for _, vp := range broken {
		got := ZoomAtPoint(100, 100, vp, 2)
		if got != vp {
			t.Errorf("ZoomAtPoint(%+v) = %+v, want input unchanged", vp, got)
		}
	}
}

func TestZoomAtPointNonFiniteAnchor(t *testing.T) {
	vp := State{ScrollX: 5, ScrollY: 5, Zoom: 1}
	got := ZoomAtPoint(math.NaN(), 100, vp, 2)
	if got != vp {
		t.Errorf("non-finite anchor should leave state unchanged, got %+v", got)
	}
}

func TestDefaultValid(t *testing.T) {
	if !Default().Valid() {
		t.Error("default viewport should be valid")
	}
	if (State{}).Valid() {
		t.Error("zero viewport (zoom 0) should be invalid")
	}
}
