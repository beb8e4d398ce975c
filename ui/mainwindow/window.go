// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"inkboard/internal/app"
	"inkboard/internal/element"
	"inkboard/internal/version"
	"inkboard/internal/viewport"
	"inkboard/ui/canvas"
	"inkboard/ui/prefs"
)

const (
	prefKeyLastDir = "lastDirectory"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.SketchCanvas

	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Inkboard")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupKeyModifiers()

	win.Resize(fyne.NewSize(1200, 800))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewSketchCanvas(mw.state.Scene)
	mw.canvas.SetBackgroundColor(mw.state.Settings.BackgroundColor)

	mw.statusBar = widget.NewLabel("Ready")

	mw.canvas.OnViewportChange(func(vp viewport.State) {
		mw.statusBar.SetText(fmt.Sprintf("Zoom %.0f%%  |  Scroll %.0f, %.0f",
			vp.Zoom*100, vp.ScrollX, vp.ScrollY))
	})
	mw.canvas.OnContextMenu(func(worldX, worldY float64) {
		mw.showContextMenu(worldX, worldY)
	})

	toolbar := mw.createToolbar()

	content := container.NewBorder(
		toolbar,      // top
		mw.statusBar, // bottom
		nil,
		nil,
		mw.canvas,
	)
	mw.SetContent(content)
}

// createToolbar builds the view-control toolbar.
func (mw *MainWindow) createToolbar() *widget.Toolbar {
	return widget.NewToolbar(
		widget.NewToolbarAction(theme.ZoomInIcon(), mw.canvas.ZoomIn),
		widget.NewToolbarAction(theme.ZoomOutIcon(), mw.canvas.ZoomOut),
		widget.NewToolbarAction(theme.ZoomFitIcon(), mw.canvas.ZoomToFit),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentPasteIcon(), mw.pasteFromClipboard),
	)
}

// setupMenus builds the menu bar.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New", mw.newProject),
		fyne.NewMenuItem("Open...", mw.openProject),
		fyne.NewMenuItem("Save...", mw.saveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Scene...", mw.importScene),
		fyne.NewMenuItem("Import Image...", mw.importImage),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Copy All", mw.copyAllToClipboard),
		fyne.NewMenuItem("Paste", mw.pasteFromClipboard),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Zoom to Fit", mw.canvas.ZoomToFit),
		fyne.NewMenuItem("Reset View", mw.canvas.ResetView),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("Inkboard",
				fmt.Sprintf("Inkboard %s (%s)", version.Version, version.GitCommit), mw.Window)
		}),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers subscribes to application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventSceneChanged, func(data interface{}) {
		mw.canvas.Refresh()
	})
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		mw.canvas.SetViewport(mw.state.SavedViewport)
		mw.canvas.SetBackgroundColor(mw.state.Settings.BackgroundColor)
		mw.updateTitle()
	})
	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		mw.updateTitle()
	})
	mw.state.On(app.EventModified, func(data interface{}) {
		mw.updateTitle()
	})
	mw.state.On(app.EventElementsMerged, func(data interface{}) {
		if batch, ok := data.([]*element.Element); ok {
			mw.statusBar.SetText(fmt.Sprintf("Merged %d elements", len(batch)))
		}
	})
}

// setupKeyModifiers tracks the wheel modifier keys through the desktop
// canvas so the wheel adapter can distinguish pan from zoom.
func (mw *MainWindow) setupKeyModifiers() {
	deskCanvas, ok := mw.Canvas().(desktop.Canvas)
	if !ok {
		return
	}
	deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case desktop.KeyControlLeft, desktop.KeyControlRight:
			mw.canvas.SetPanModifier(true)
		case desktop.KeyShiftLeft, desktop.KeyShiftRight:
			mw.canvas.SetLockModifier(true)
		}
	})
	deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case desktop.KeyControlLeft, desktop.KeyControlRight:
			mw.canvas.SetPanModifier(false)
		case desktop.KeyShiftLeft, desktop.KeyShiftRight:
			mw.canvas.SetLockModifier(false)
		}
	})
}

func (mw *MainWindow) updateTitle() {
	title := "Inkboard - " + mw.state.ProjectName
	if mw.state.Modified {
		title += " *"
	}
	mw.SetTitle(title)
}

// showContextMenu pops the canvas context menu at the current pointer.
func (mw *MainWindow) showContextMenu(worldX, worldY float64) {
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Paste Here", mw.pasteFromClipboard),
		fyne.NewMenuItem(fmt.Sprintf("Add Note at %.0f, %.0f", worldX, worldY), func() {
			el := element.New(element.KindText, worldX, worldY, 120, 30)
			el.Text = "Note"
			mw.state.Scene.Append(el)
			mw.state.SetModified(true)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Zoom to Fit", mw.canvas.ZoomToFit),
	)
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(mw.canvas)
	widget.ShowPopUpMenuAtPosition(menu, mw.Canvas(), pos)
}

func (mw *MainWindow) newProject() {
	mw.state.Scene.ReplaceAll(nil)
	mw.state.ProjectName = "Untitled"
	mw.state.ProjectPath = ""
	mw.state.SetModified(false)
	mw.canvas.ResetView()
	mw.updateTitle()
}

func (mw *MainWindow) openProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefKeyLastDir, filepath.Dir(path))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".inkproj"}))
	fd.Show()
}

func (mw *MainWindow) saveProject() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()

		vp, _ := mw.canvas.Viewport()
		if err := mw.state.SaveProject(path, vp); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefKeyLastDir, filepath.Dir(path))
	}, mw.Window)
	fd.SetFileName(mw.state.ProjectName + ".inkproj")
	fd.Show()
}

func (mw *MainWindow) importScene() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		inserted, err := mw.state.ImportScene(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		log.Printf("Imported %d elements from %s", len(inserted), path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".inkproj"}))
	fd.Show()
}

func (mw *MainWindow) importImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		// Drop the image at the center of the current view.
		vp, _ := mw.canvas.Viewport()
		size := mw.canvas.Size()
		wx, wy := vp.WorldFromScreen(float64(size.Width)/2, float64(size.Height)/2)

		if _, err := mw.state.ImportImage(path, wx, wy); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}))
	fd.Show()
}

// copyAllToClipboard serializes the scene onto the system clipboard.
func (mw *MainWindow) copyAllToClipboard() {
	data, err := mw.state.CopyElements(mw.state.Scene.Elements())
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.Clipboard().SetContent(string(data))
	mw.statusBar.SetText("Copied scene to clipboard")
}

// pasteFromClipboard merges a clipboard element batch into the scene through
// the remap engine.
func (mw *MainWindow) pasteFromClipboard() {
	content := mw.Clipboard().Content()
	if content == "" {
		return
	}
	if _, err := mw.state.PasteElements([]byte(content)); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}
