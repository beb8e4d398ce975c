// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"inkboard/internal/element"
	"inkboard/internal/viewport"
)

// currentVersion is the .inkproj schema version written by this build.
const currentVersion = 1

// File represents an inkboard project file (.inkproj). The whole document
// travels in one JSON file: elements plus the last viewport.
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	Viewport viewport.State     `json:"viewport"`
	Elements []*element.Element `json:"elements"`

	Settings Settings `json:"settings,omitempty"`
}

// Settings holds user preferences for the project.
type Settings struct {
	BackgroundColor string `json:"background_color,omitempty"`
	GridEnabled     bool   `json:"grid_enabled"`
}

// New creates a new project file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  currentVersion,
		Name:     name,
		Created:  now,
		Modified: now,
		Viewport: viewport.Default(),
		Settings: Settings{
			BackgroundColor: "white",
		},
	}
}

// Load loads a project from an .inkproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}
	if proj.Version > currentVersion {
		return nil, fmt.Errorf("project %s: version %d is newer than supported %d",
			path, proj.Version, currentVersion)
	}

	// Old files may carry a zero viewport; never let that reach the canvas.
	if !proj.Viewport.Valid() {
		proj.Viewport = viewport.Default()
	}

	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
