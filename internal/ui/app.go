package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/export"
	"SketchBoard/internal/state"
)

// App is the drawing window.
type App struct {
	App     fyne.App
	Window  fyne.Window
	Board   *BoardWidget
	Toolbar *Toolbar
}

// NewApp builds the main window around board. shareLink, when not empty,
// is shown so the user can hand it to viewers.
func NewApp(board *state.Board, sink export.FileSink, shareLink string) *App {
	myApp := app.New()
	myWindow := myApp.NewWindow("SketchBoard")
	myWindow.Resize(fyne.NewSize(1100, 850))

	bw := NewBoardWidget(board)
	toolbar := NewToolbar(bw, ExportButtons(myWindow, bw, sink)...)

	bottom := []fyne.CanvasObject{bw.StatusBar()}
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		bottom = append(bottom, widget.NewLabel("Viewers:"), link)
	}

	content := container.NewBorder(
		toolbar.Content(),
		container.NewHBox(bottom...),
		nil, nil,
		container.NewScroll(bw),
	)
	myWindow.SetContent(content)
	return &App{App: myApp, Window: myWindow, Board: bw, Toolbar: toolbar}
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() { a.Window.ShowAndRun() }

// Viewer is a read-only window that shows snapshots pushed by a host.
type Viewer struct {
	App    fyne.App
	Window fyne.Window
	image  *canvas.Image
	status *widget.Label
}

func NewViewer(link string) *Viewer {
	myApp := app.New()
	myWindow := myApp.NewWindow("SketchBoard viewer")
	myWindow.Resize(fyne.NewSize(1024, 768))

	v := &Viewer{
		App:    myApp,
		Window: myWindow,
		image:  canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
		status: widget.NewLabel("Connecting to " + link),
	}
	v.image.FillMode = canvas.ImageFillContain
	myWindow.SetContent(container.NewBorder(nil, v.status, nil, nil, v.image))
	return v
}

// SetSnapshot is safe to call from any goroutine.
func (v *Viewer) SetSnapshot(img image.Image) {
	fyne.Do(func() {
		v.image.Image = img
		v.image.Refresh()
	})
}

// SetStatus is safe to call from any goroutine.
func (v *Viewer) SetStatus(text string) {
	fyne.Do(func() {
		v.status.SetText(text)
	})
}

func (v *Viewer) Run() { v.Window.ShowAndRun() }
