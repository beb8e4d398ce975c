package scene

import (
	"encoding/json"
	"fmt"

	"inkboard/internal/element"
)

// batchType marks clipboard payloads produced by inkboard so foreign text
// on the clipboard is rejected cleanly.
const batchType = "inkboard/elements"

// batchVersion is bumped when the element schema changes incompatibly.
const batchVersion = 1

// Batch is the JSON envelope for element graphs travelling over the
// clipboard or a scene-fragment file. Ids inside are from the source
// document and must be remapped before the batch touches a live scene.
type Batch struct {
	Type     string             `json:"type"`
	Version  int                `json:"version"`
	Elements []*element.Element `json:"elements"`
}

// EncodeBatch serializes elements into a clipboard payload.
func EncodeBatch(elements []*element.Element) ([]byte, error) {
	return json.MarshalIndent(Batch{
		Type:     batchType,
		Version:  batchVersion,
		Elements: elements,
	}, "", "  ")
}

// DecodeBatch parses a clipboard payload back into an element batch.
func DecodeBatch(data []byte) ([]*element.Element, error) {
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	if b.Type != batchType {
		return nil, fmt.Errorf("clipboard: unrecognized payload type %q", b.Type)
	}
	if b.Version > batchVersion {
		return nil, fmt.Errorf("clipboard: payload version %d is newer than supported %d", b.Version, batchVersion)
	}
	return b.Elements, nil
}
