package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/tiff"

	"inkboard/internal/element"
)

// ImageFile is a decoded image payload referenced by image elements through
// their FileID.
type ImageFile struct {
	ID     string
	Name   string
	Format string
	Image  image.Image
}

// LoadImageFile reads and decodes an image from disk, minting a fresh file
// id. PNG, JPEG, and TIFF are supported.
func LoadImageFile(path string) (*ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &ImageFile{
		ID:     element.NewID(),
		Name:   filepath.Base(path),
		Format: format,
		Image:  img,
	}, nil
}

// AddFiles registers decoded image files with the scene. Existing entries
// with the same id are replaced.
func (s *Scene) AddFiles(files ...*ImageFile) {
	s.mu.Lock()
	for _, f := range files {
		if f != nil {
			s.files[f.ID] = f
		}
	}
	s.mu.Unlock()
	s.changed()
}

// File returns the image file with the given id, or nil.
func (s *Scene) File(id string) *ImageFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files[id]
}
