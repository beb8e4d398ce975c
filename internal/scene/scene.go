// Package scene owns the live element graph and the image files elements
// reference. It is the destination side of every merge: foreign batches go
// through the remap engine before they are appended here.
package scene

import (
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"inkboard/internal/element"
	"inkboard/internal/merge"
	"inkboard/pkg/geometry"
)

// Scene holds the element graph for one open document.
type Scene struct {
	mu       sync.RWMutex
	elements []*element.Element
	files    map[string]*ImageFile

	onChange func()
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		files: make(map[string]*ImageFile),
	}
}

// OnChange sets a callback invoked after every mutation.
func (s *Scene) OnChange(callback func()) {
	s.onChange = callback
}

func (s *Scene) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Elements returns a copy of the element list in draw order.
func (s *Scene) Elements() []*element.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*element.Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Len returns the number of elements in the scene.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}

// ExistingIDs returns the set of element ids currently in the scene.
func (s *Scene) ExistingIDs() merge.IDSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(merge.IDSet, len(s.elements))
	for _, el := range s.elements {
		ids[el.ID] = struct{}{}
	}
	return ids
}

// ReplaceAll swaps in a new element list (project load, undo by the host).
func (s *Scene) ReplaceAll(elements []*element.Element) {
	s.mu.Lock()
	s.elements = make([]*element.Element, len(elements))
	copy(s.elements, elements)
	s.mu.Unlock()
	s.changed()
}

// Append adds elements that already carry scene-unique ids (new drawings).
func (s *Scene) Append(elements ...*element.Element) {
	s.mu.Lock()
	s.elements = append(s.elements, elements...)
	s.mu.Unlock()
	s.changed()
}

// InsertForeign splices a foreign element batch into the scene: the batch is
// remapped onto fresh ids with all cross-references rewritten, then
// appended. Returns the remapped batch that was actually inserted.
func (s *Scene) InsertForeign(batch []*element.Element) []*element.Element {
	remapped := merge.RemapElementIDsForAppend(s.ExistingIDs(), batch)

	s.mu.Lock()
	s.elements = append(s.elements, remapped...)
	s.mu.Unlock()
	s.changed()
	return remapped
}

// Bounds returns the bounding box of all visible elements in world
// coordinates, and false when the scene has no visible content.
func (s *Scene) Bounds() (geometry.Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var xs, ys []float64
	for _, el := range s.elements {
		if el.IsDeleted {
			continue
		}
		box := el.Bounds()
		xs = append(xs, box.X, box.X+box.Width)
		ys = append(ys, box.Y, box.Y+box.Height)
	}
	if len(xs) == 0 {
		return geometry.Rect{}, false
	}

	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)
	return geometry.NewRect(minX, minY, maxX-minX, maxY-minY), true
}

// Centroid returns the mean center of all visible elements. Used to pick a
// sensible focus point when fitting the viewport to content.
func (s *Scene) Centroid() geometry.Point2D {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var xs, ys []float64
	for _, el := range s.elements {
		if el.IsDeleted {
			continue
		}
		c := el.Bounds().Center()
		xs = append(xs, c.X)
		ys = append(ys, c.Y)
	}
	if len(xs) == 0 {
		return geometry.Point2D{}
	}
	return geometry.Point2D{
		X: stat.Mean(xs, nil),
		Y: stat.Mean(ys, nil),
	}
}
