package gesture

// PointerKind identifies the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

// PointerButton is a button bitmask matching the usual buttons field.
type PointerButton int

const (
	ButtonPrimary PointerButton = 1 << iota
	ButtonSecondary
	ButtonTertiary
)

// PointerEvent is one raw pointer event, pre-translated by the surface
// adapter. Button is the button that changed on down/up; Buttons is the
// bitmask of buttons currently held.
type PointerEvent struct {
	Kind      PointerKind
	PointerID int
	Button    PointerButton
	Buttons   PointerButton
	ClientX   float64
	ClientY   float64

	// OnSurface is true when the event target is the canvas render surface.
	OnSurface bool
}
