// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"fmt"
	"sync"

	"inkboard/internal/element"
	"inkboard/internal/project"
	"inkboard/internal/scene"
	"inkboard/internal/viewport"
)

// State holds the application state: the open document's scene, project
// path, and the event bus the UI subscribes to.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	ProjectName string
	Modified    bool

	// Document
	Scene *scene.Scene

	// Viewport restored from / saved to the project file. The canvas widget
	// owns the live value; this is only the persisted snapshot.
	SavedViewport viewport.State

	Settings project.Settings

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventSceneChanged
	EventElementsMerged
	EventFilesAdded
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with an empty scene.
func NewState() *State {
	s := &State{
		ProjectName:   "Untitled",
		Scene:         scene.New(),
		SavedViewport: viewport.Default(),
		Settings:      project.Settings{BackgroundColor: "white"},
		listeners:     make(map[EventType][]EventListener),
	}
	s.Scene.OnChange(func() {
		s.Emit(EventSceneChanged, nil)
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadProject loads a project from the specified path.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.ProjectName = proj.Name
	s.Modified = false
	s.SavedViewport = proj.Viewport
	s.Settings = proj.Settings
	s.mu.Unlock()

	s.Scene.ReplaceAll(proj.Elements)

	s.Emit(EventProjectLoaded, path)
	return nil
}

// SaveProject saves the current document to the specified path. The caller
// supplies the live viewport so it survives a reload.
func (s *State) SaveProject(path string, vp viewport.State) error {
	s.mu.RLock()
	proj := project.New(s.ProjectName)
	proj.Viewport = vp
	proj.Settings = s.Settings
	s.mu.RUnlock()
	proj.Elements = s.Scene.Elements()

	if err := proj.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.SavedViewport = vp
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}

// PasteElements decodes a clipboard payload and splices it into the scene
// through the remap engine. Returns the inserted (remapped) batch.
func (s *State) PasteElements(data []byte) ([]*element.Element, error) {
	batch, err := scene.DecodeBatch(data)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("paste: empty element batch")
	}

	inserted := s.Scene.InsertForeign(batch)
	s.SetModified(true)
	s.Emit(EventElementsMerged, inserted)
	return inserted, nil
}

// ImportScene reads a scene-fragment file and merges its elements into the
// open document.
func (s *State) ImportScene(path string) ([]*element.Element, error) {
	proj, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	if len(proj.Elements) == 0 {
		return nil, fmt.Errorf("import %s: no elements", path)
	}

	inserted := s.Scene.InsertForeign(proj.Elements)
	s.SetModified(true)
	s.Emit(EventElementsMerged, inserted)
	return inserted, nil
}

// ImportImage loads an image file and places it as an image element centered
// at the given world position.
func (s *State) ImportImage(path string, worldX, worldY float64) (*element.Element, error) {
	file, err := scene.LoadImageFile(path)
	if err != nil {
		return nil, err
	}

	bounds := file.Image.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	el := element.New(element.KindImage, worldX-w/2, worldY-h/2, w, h)
	el.FileID = file.ID

	s.Scene.AddFiles(file)
	s.Scene.Append(el)
	s.SetModified(true)
	s.Emit(EventFilesAdded, file)
	return el, nil
}

// CopyElements serializes the given elements into a clipboard payload.
func (s *State) CopyElements(elements []*element.Element) ([]byte, error) {
	return scene.EncodeBatch(elements)
}
