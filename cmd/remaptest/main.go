// Command remaptest runs the identifier remap engine on a scene fragment and
// prints what would be merged into a destination project.
package main

import (
	"flag"
	"fmt"
	"os"

	"inkboard/internal/merge"
	"inkboard/internal/project"
)

func main() {
	dest := flag.String("dest", "", "Destination project (.inkproj); may be empty for a blank scene")
	batch := flag.String("batch", "", "Scene fragment to merge (.inkproj)")
	verbose := flag.Bool("v", false, "Print per-element id mapping")
	flag.Parse()

	if *batch == "" {
		fmt.Println("Usage: remaptest -batch <fragment.inkproj> [-dest <project.inkproj>] [-v]")
		os.Exit(1)
	}

	existing := make(merge.IDSet)
	if *dest != "" {
		proj, err := project.Load(*dest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load destination: %v\n", err)
			os.Exit(1)
		}
		for _, el := range proj.Elements {
			existing[el.ID] = struct{}{}
		}
		fmt.Printf("Destination: %d elements\n", len(proj.Elements))
	}

	frag, err := project.Load(*batch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load batch: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Batch: %d elements\n", len(frag.Elements))

	remapped := merge.RemapElementIDsForAppend(existing, frag.Elements)

	var droppedBindings, droppedBound, clearedFrames int
	for i, el := range remapped {
		orig := frag.Elements[i]
		if orig.FrameID != "" && el.FrameID == "" {
			clearedFrames++
		}
		droppedBound += len(orig.BoundElements) - len(el.BoundElements)
		if orig.StartBinding != nil && el.StartBinding == nil {
			droppedBindings++
		}
		if orig.EndBinding != nil && el.EndBinding == nil {
			droppedBindings++
		}
		if *verbose {
			fmt.Printf("  %s -> %s (%s)\n", orig.ID, el.ID, el.Kind)
		}
	}

	fmt.Printf("Remapped %d elements\n", len(remapped))
	fmt.Printf("  cleared frame refs:   %d\n", clearedFrames)
	fmt.Printf("  dropped decorations:  %d\n", droppedBound)
	fmt.Printf("  cleared bindings:     %d\n", droppedBindings)
}
