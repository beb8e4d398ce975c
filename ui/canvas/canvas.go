// Package canvas provides the infinite-canvas widget: it renders the scene
// under the current viewport and adapts raw Fyne input events into the
// gesture subsystem. The widget is the gesture host: handlers read the
// viewport from it and propose new states back through SetViewport.
package canvas

import (
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"inkboard/internal/gesture"
	"inkboard/internal/scene"
	"inkboard/internal/viewport"
)

// zoomStep is the factor applied by the ZoomIn/ZoomOut menu actions.
const zoomStep = 1.25

// SketchCanvas displays the scene with pan and zoom over an unbounded plane.
type SketchCanvas struct {
	widget.BaseWidget

	scene *scene.Scene

	// Display state
	raster          *fynecanvas.Raster
	backgroundColor string

	mu      sync.RWMutex
	vp      viewport.State
	mounted bool

	// Gesture wiring
	dragPan   *gesture.DragPan
	teardowns []func()
	wheelL    wheelListeners
	pointerL  pointerListeners
	touchL    touchListeners

	// Raw input state adapted into gesture events
	pressedButtons gesture.PointerButton
	panModifier    bool
	lockModifier   bool
	touches        []gesture.TouchPoint
	nextTouchID    int
	panning        bool

	// Callbacks
	onViewportChange func(vp viewport.State)
	onContextMenu    func(worldX, worldY float64)
	onTap            func(worldX, worldY float64)
}

// NewSketchCanvas creates a canvas for the given scene and attaches the
// gesture handlers.
func NewSketchCanvas(sc *scene.Scene) *SketchCanvas {
	c := &SketchCanvas{
		scene:           sc,
		vp:              viewport.Default(),
		backgroundColor: "white",
	}
	c.raster = fynecanvas.NewRaster(c.draw)
	c.raster.ScaleMode = fynecanvas.ImageScalePixels

	c.attachGestures()

	c.ExtendBaseWidget(c)
	return c
}

// attachGestures wires the wheel, touch, and drag-pan handlers to this
// widget's event stream.
func (c *SketchCanvas) attachGestures() {
	c.teardowns = append(c.teardowns, gesture.SetupWheel(c, c))
	c.teardowns = append(c.teardowns, gesture.SetupTouch(c, c, func(x, y float64) {
		if c.onContextMenu != nil {
			vp, _ := c.Viewport()
			wx, wy := vp.WorldFromScreen(x, y)
			c.onContextMenu(wx, wy)
		}
	}))

	drag, dragTeardown := gesture.SetupDragPan(c, c, gesture.NewFrameScheduler())
	drag.OnCursor(func(panning bool) {
		c.panning = panning
	})
	c.dragPan = drag
	c.teardowns = append(c.teardowns, dragTeardown)
}

// Detach releases all gesture listeners and pending scheduled work. Safe to
// call more than once.
func (c *SketchCanvas) Detach() {
	for _, td := range c.teardowns {
		td()
	}
}

// --- gesture.Host ---

// Viewport returns the current viewport state. The second return is false
// until the canvas has been laid out, during which gesture handlers no-op.
func (c *SketchCanvas) Viewport() (viewport.State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vp, c.mounted
}

// SetViewport applies a proposed viewport state, clamping zoom. Degenerate
// proposals are dropped rather than corrupting the view.
func (c *SketchCanvas) SetViewport(vp viewport.State) {
	vp.Zoom = viewport.ClampZoom(vp.Zoom)
	if !vp.Valid() {
		return
	}

	c.mu.Lock()
	c.vp = vp
	c.mu.Unlock()

	c.raster.Refresh()
	if c.onViewportChange != nil {
		c.onViewportChange(vp)
	}
}

// --- gesture.Surface ---

func (c *SketchCanvas) AddWheelListener(fn func(gesture.WheelEvent)) func() {
	return c.wheelL.add(fn)
}

func (c *SketchCanvas) AddPointerListener(fn func(gesture.PointerEvent)) func() {
	return c.pointerL.add(fn)
}

func (c *SketchCanvas) AddTouchListener(fn func([]gesture.TouchPoint)) func() {
	return c.touchL.add(fn)
}

// --- input adaptation ---

// Scrolled adapts a Fyne scroll event into a wheel gesture event. Handled
// events end here; Fyne has no native scroll on this widget to suppress.
func (c *SketchCanvas) Scrolled(ev *fyne.ScrollEvent) {
	wev := gesture.WheelEvent{
		ClientX:      float64(ev.Position.X),
		ClientY:      float64(ev.Position.Y),
		DeltaX:       -float64(ev.Scrolled.DX),
		DeltaY:       -float64(ev.Scrolled.DY),
		ModifierPan:  c.panModifier,
		ModifierLock: c.lockModifier,
		OnSurface:    true,
	}
	c.wheelL.dispatchWheel(wev)
}

// SetPanModifier toggles wheel-pan mode (held modifier key, wired by the
// main window from canvas key events).
func (c *SketchCanvas) SetPanModifier(held bool) {
	c.panModifier = held
}

// SetLockModifier toggles the reserved scroll-lock modifier.
func (c *SketchCanvas) SetLockModifier(held bool) {
	c.lockModifier = held
}

// MouseDown implements desktop.Mouseable.
func (c *SketchCanvas) MouseDown(ev *desktop.MouseEvent) {
	btn := mapButton(ev.Button)
	c.pressedButtons |= btn
	c.pointerL.dispatchPointer(gesture.PointerEvent{
		Kind:      gesture.PointerDown,
		Button:    btn,
		Buttons:   c.pressedButtons,
		ClientX:   float64(ev.Position.X),
		ClientY:   float64(ev.Position.Y),
		OnSurface: true,
	})
}

// MouseUp implements desktop.Mouseable.
func (c *SketchCanvas) MouseUp(ev *desktop.MouseEvent) {
	btn := mapButton(ev.Button)
	c.pressedButtons &^= btn
	c.pointerL.dispatchPointer(gesture.PointerEvent{
		Kind:      gesture.PointerUp,
		Button:    btn,
		Buttons:   c.pressedButtons,
		ClientX:   float64(ev.Position.X),
		ClientY:   float64(ev.Position.Y),
		OnSurface: true,
	})
}

// MouseIn implements desktop.Hoverable.
func (c *SketchCanvas) MouseIn(ev *desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (c *SketchCanvas) MouseMoved(ev *desktop.MouseEvent) {
	c.pointerL.dispatchPointer(gesture.PointerEvent{
		Kind:      gesture.PointerMove,
		Buttons:   c.pressedButtons,
		ClientX:   float64(ev.Position.X),
		ClientY:   float64(ev.Position.Y),
		OnSurface: true,
	})
}

// MouseOut implements desktop.Hoverable. Leaving the surface cancels any
// drag in progress.
func (c *SketchCanvas) MouseOut() {
	c.pointerL.dispatchPointer(gesture.PointerEvent{
		Kind:    gesture.PointerCancel,
		Buttons: c.pressedButtons,
	})
	c.pressedButtons = 0
}

// TouchDown implements mobile.Touchable.
func (c *SketchCanvas) TouchDown(ev *mobile.TouchEvent) {
	c.nextTouchID++
	c.touches = append(c.touches, gesture.TouchPoint{
		ID: c.nextTouchID,
		X:  float64(ev.Position.X),
		Y:  float64(ev.Position.Y),
	})
	c.touchL.dispatchTouch(c.touches)
}

// TouchUp implements mobile.Touchable.
func (c *SketchCanvas) TouchUp(ev *mobile.TouchEvent) {
	c.removeNearestTouch(float64(ev.Position.X), float64(ev.Position.Y))
	c.touchL.dispatchTouch(c.touches)
}

// TouchCancel implements mobile.Touchable.
func (c *SketchCanvas) TouchCancel(ev *mobile.TouchEvent) {
	c.touches = nil
	c.touchL.dispatchTouch(nil)
}

// removeNearestTouch drops the tracked touch closest to the lift position.
// The mobile driver does not carry contact ids, so proximity is the best
// available match.
func (c *SketchCanvas) removeNearestTouch(x, y float64) {
	if len(c.touches) == 0 {
		return
	}
	best := 0
	bestDist := -1.0
	for i, tp := range c.touches {
		dx := tp.X - x
		dy := tp.Y - y
		d := dx*dx + dy*dy
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	c.touches = append(c.touches[:best], c.touches[best+1:]...)
}

// Tapped reports a primary tap in world coordinates.
func (c *SketchCanvas) Tapped(ev *fyne.PointEvent) {
	if c.onTap == nil {
		return
	}
	vp, ok := c.Viewport()
	if !ok {
		return
	}
	wx, wy := vp.WorldFromScreen(float64(ev.Position.X), float64(ev.Position.Y))
	c.onTap(wx, wy)
}

// TappedSecondary opens the context menu, unless a drag-pan just ended on
// this button, in which case the menu event is swallowed exactly once.
func (c *SketchCanvas) TappedSecondary(ev *fyne.PointEvent) {
	if c.dragPan != nil && c.dragPan.ConsumeContextMenu() {
		return
	}
	if c.onContextMenu == nil {
		return
	}
	vp, ok := c.Viewport()
	if !ok {
		return
	}
	wx, wy := vp.WorldFromScreen(float64(ev.Position.X), float64(ev.Position.Y))
	c.onContextMenu(wx, wy)
}

// Cursor implements desktop.Cursorable.
func (c *SketchCanvas) Cursor() desktop.Cursor {
	if c.panning {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

// --- view commands ---

// ZoomIn zooms one step, anchored at the canvas center.
func (c *SketchCanvas) ZoomIn() {
	c.zoomBy(zoomStep)
}

// ZoomOut zooms out one step, anchored at the canvas center.
func (c *SketchCanvas) ZoomOut() {
	c.zoomBy(1 / zoomStep)
}

func (c *SketchCanvas) zoomBy(factor float64) {
	vp, ok := c.Viewport()
	if !ok {
		return
	}
	size := c.Size()
	cx := float64(size.Width) / 2
	cy := float64(size.Height) / 2
	c.SetViewport(viewport.ZoomAtPoint(cx, cy, vp, viewport.ClampZoom(vp.Zoom*factor)))
}

// ResetView returns to the origin at zoom 1.
func (c *SketchCanvas) ResetView() {
	c.SetViewport(viewport.Default())
}

// ZoomToFit adjusts the viewport so all scene content is visible with a
// small margin.
func (c *SketchCanvas) ZoomToFit() {
	bounds, ok := c.scene.Bounds()
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	size := c.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}

	zoomX := float64(size.Width) / bounds.Width
	zoomY := float64(size.Height) / bounds.Height
	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	zoom = viewport.ClampZoom(zoom * 0.9) // Leave a small margin

	center := bounds.Center()
	c.SetViewport(viewport.State{
		ScrollX: float64(size.Width)/2 - center.X*zoom,
		ScrollY: float64(size.Height)/2 - center.Y*zoom,
		Zoom:    zoom,
	})
}

// SetBackgroundColor sets the canvas background (hex string or color name).
func (c *SketchCanvas) SetBackgroundColor(col string) {
	c.backgroundColor = col
	c.raster.Refresh()
}

// OnViewportChange sets a callback for viewport updates.
func (c *SketchCanvas) OnViewportChange(callback func(vp viewport.State)) {
	c.onViewportChange = callback
}

// OnContextMenu sets a callback for context-menu requests (secondary tap or
// two-finger tap), with the location in world coordinates.
func (c *SketchCanvas) OnContextMenu(callback func(worldX, worldY float64)) {
	c.onContextMenu = callback
}

// OnTap sets a callback for primary taps in world coordinates.
func (c *SketchCanvas) OnTap(callback func(worldX, worldY float64)) {
	c.onTap = callback
}

// Refresh redraws the canvas.
func (c *SketchCanvas) Refresh() {
	c.raster.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (c *SketchCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &sketchCanvasRenderer{canvas: c}
}

type sketchCanvasRenderer struct {
	canvas *SketchCanvas
}

func (r *sketchCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
	if size.Width > 0 && size.Height > 0 {
		r.canvas.mu.Lock()
		r.canvas.mounted = true
		r.canvas.mu.Unlock()
	}
}

func (r *sketchCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *sketchCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *sketchCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *sketchCanvasRenderer) Destroy() {
	r.canvas.Detach()
}

func mapButton(b desktop.MouseButton) gesture.PointerButton {
	switch b {
	case desktop.MouseButtonSecondary:
		return gesture.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return gesture.ButtonTertiary
	default:
		return gesture.ButtonPrimary
	}
}
