// Package merge grafts foreign element graphs onto an existing scene by
// minting fresh identifiers and rewriting every internal cross-reference.
package merge

import (
	"github.com/google/uuid"

	"inkboard/internal/element"
)

// IDSet is the set of identifiers already present in the destination scene.
type IDSet map[string]struct{}

// RemapElementIDsForAppend returns a structurally-equivalent copy of the
// incoming element batch with fresh unique ids and every internal reference
// rewritten consistently. Used whenever a foreign graph (clipboard paste,
// file import, cross-document copy) is about to be merged.
//
// Rules:
//   - One fresh id is minted per first occurrence of an original id;
//     later occurrences of the same original id reuse it, so duplicated
//     inputs still come out with matching ids per position.
//   - Group ids are remapped the same way, over every GroupIDs entry.
//   - FrameID and ContainerID are rewritten when the referenced id travelled
//     with the batch, otherwise cleared. A stale reference into the foreign
//     document must never survive.
//   - BoundElements pointing outside the batch are dropped, not rewritten.
//   - StartBinding/EndBinding are rewritten or cleared, never left dangling.
//
// Output ids are disjoint from existing and pairwise distinct with the
// collision probability of the uuid generator; no further collision handling
// is done. The input slice, its elements, and existing are never mutated,
// and input order is preserved exactly. Splicing the result into the live
// scene is the caller's responsibility.
func RemapElementIDsForAppend(existing IDSet, elements []*element.Element) []*element.Element {
	idMap := buildIDMap(elements)
	groupIDMap := buildGroupIDMap(elements)

	out := make([]*element.Element, 0, len(elements))
	for _, el := range elements {
		c := el.Clone()
		c.ID = idMap[el.ID]

		for i, gid := range c.GroupIDs {
			// Every entry seen while building the map resolves; anything
			// else collapses to the empty marker rather than dangling.
			c.GroupIDs[i] = groupIDMap[gid]
		}

		if c.FrameID != "" {
			c.FrameID = idMap[c.FrameID] // "" when the frame didn't travel
		}
		if c.ContainerID != "" {
			c.ContainerID = idMap[c.ContainerID]
		}

		if len(c.BoundElements) > 0 {
			kept := c.BoundElements[:0]
			for _, be := range c.BoundElements {
				if fresh, ok := idMap[be.ID]; ok {
					be.ID = fresh
					kept = append(kept, be)
				}
			}
			if len(kept) == 0 {
				c.BoundElements = nil
			} else {
				c.BoundElements = kept
			}
		}

		c.StartBinding = remapBinding(c.StartBinding, idMap)
		c.EndBinding = remapBinding(c.EndBinding, idMap)

		out = append(out, c)
	}
	return out
}

// buildIDMap assigns a fresh id to the first occurrence of every element id.
func buildIDMap(elements []*element.Element) map[string]string {
	idMap := make(map[string]string, len(elements))
	for _, el := range elements {
		if _, seen := idMap[el.ID]; !seen {
			idMap[el.ID] = uuid.NewString()
		}
	}
	return idMap
}

// buildGroupIDMap assigns a fresh id to the first occurrence of every group id.
func buildGroupIDMap(elements []*element.Element) map[string]string {
	groupIDMap := make(map[string]string)
	for _, el := range elements {
		for _, gid := range el.GroupIDs {
			if _, seen := groupIDMap[gid]; !seen {
				groupIDMap[gid] = uuid.NewString()
			}
		}
	}
	return groupIDMap
}

// remapBinding rewrites a binding's target, or clears the binding entirely
// when the target is not part of the batch.
func remapBinding(b *element.Binding, idMap map[string]string) *element.Binding {
	if b == nil {
		return nil
	}
	fresh, ok := idMap[b.ElementID]
	if !ok {
		return nil
	}
	b.ElementID = fresh
	return b
}
