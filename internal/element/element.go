// Package element defines the drawable element graph: element records plus
// their cross-references (grouping, containment, frame membership, connector
// bindings).
package element

import (
	"github.com/google/uuid"

	"inkboard/pkg/geometry"
)

// Kind identifies the element shape.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindFrame     Kind = "frame"
)

// BoundElement references a decoration bound to an element, such as a text
// label bound to a shape or an arrow attached to it.
type BoundElement struct {
	ID   string `json:"id"`
	Type Kind   `json:"type"`
}

// Binding attaches a connector endpoint to another element.
type Binding struct {
	ElementID string  `json:"element_id"`
	Focus     float64 `json:"focus,omitempty"`
	Gap       float64 `json:"gap,omitempty"`
}

// Element is a drawable record on the canvas. Geometry is in world
// coordinates. The reference fields (GroupIDs, FrameID, ContainerID,
// BoundElements, StartBinding, EndBinding) must only ever point at ids that
// exist in the same scene; the merge engine rewrites or clears them when a
// foreign batch is spliced in.
type Element struct {
	ID   string `json:"id"`
	Kind Kind   `json:"type"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle,omitempty"`

	// Style
	StrokeColor     string  `json:"stroke_color,omitempty"`
	BackgroundColor string  `json:"background_color,omitempty"`
	StrokeWidth     float64 `json:"stroke_width,omitempty"`
	Opacity         float64 `json:"opacity,omitempty"`

	// Line/arrow geometry, relative to (X, Y)
	Points []geometry.Point2D `json:"points,omitempty"`

	// Text content (text elements and labels)
	Text string `json:"text,omitempty"`

	// Image payload reference (image elements)
	FileID string `json:"file_id,omitempty"`

	// Structural references into the same scene
	GroupIDs      []string       `json:"group_ids,omitempty"`
	FrameID       string         `json:"frame_id,omitempty"`
	ContainerID   string         `json:"container_id,omitempty"`
	BoundElements []BoundElement `json:"bound_elements,omitempty"`
	StartBinding  *Binding       `json:"start_binding,omitempty"`
	EndBinding    *Binding       `json:"end_binding,omitempty"`

	Locked    bool `json:"locked,omitempty"`
	IsDeleted bool `json:"is_deleted,omitempty"`
}

// NewID mints a globally-unique element identifier.
func NewID() string {
	return uuid.NewString()
}

// New creates an element of the given kind with a fresh id and default style.
func New(kind Kind, x, y, width, height float64) *Element {
	return &Element{
		ID:          NewID(),
		Kind:        kind,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		StrokeColor: "black",
		StrokeWidth: 1,
		Opacity:     1,
	}
}

// Clone returns a deep copy of the element. Reference slices and bindings
// are copied so mutating the clone never touches the original.
func (e *Element) Clone() *Element {
	out := *e

	if e.Points != nil {
		out.Points = make([]geometry.Point2D, len(e.Points))
		copy(out.Points, e.Points)
	}
	if e.GroupIDs != nil {
		out.GroupIDs = make([]string, len(e.GroupIDs))
		copy(out.GroupIDs, e.GroupIDs)
	}
	if e.BoundElements != nil {
		out.BoundElements = make([]BoundElement, len(e.BoundElements))
		copy(out.BoundElements, e.BoundElements)
	}
	if e.StartBinding != nil {
		b := *e.StartBinding
		out.StartBinding = &b
	}
	if e.EndBinding != nil {
		b := *e.EndBinding
		out.EndBinding = &b
	}

	return &out
}

// Bounds returns the element's axis-aligned bounding box in world
// coordinates. Line and arrow elements derive their box from their points.
func (e *Element) Bounds() geometry.Rect {
	if (e.Kind == KindLine || e.Kind == KindArrow) && len(e.Points) > 0 {
		box := geometry.BoundingBox(e.Points)
		box.X += e.X
		box.Y += e.Y
		return box
	}
	return geometry.NewRect(e.X, e.Y, e.Width, e.Height)
}
