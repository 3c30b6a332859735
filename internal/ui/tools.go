package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/tools"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Palette is the set of swatches offered in the toolbar.
var Palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},         // Red
	color.NRGBA{G: 255, A: 255},         // Green
	color.NRGBA{B: 255, A: 255},         // Blue
	color.NRGBA{R: 255, G: 255, A: 255}, // Yellow
}

// Toolbar holds the panel controls wired to a board widget.
type Toolbar struct {
	board *BoardWidget

	ToolSelect  *widget.Select
	WidthSlider *widget.Slider
	Undo        *widget.Button
	Redo        *widget.Button
	Clear       *widget.Button

	content fyne.CanvasObject
}

// NewToolbar builds the toolbar. extra objects, such as save buttons, are
// appended at the end.
func NewToolbar(board *BoardWidget, extra ...fyne.CanvasObject) *Toolbar {
	t := &Toolbar{board: board}

	names := make([]string, 0, len(tools.All()))
	for _, id := range tools.All() {
		names = append(names, id.String())
	}
	t.ToolSelect = widget.NewSelect(names, func(name string) {
		if id, err := tools.ParseID(name); err == nil {
			board.SetTool(id)
		}
	})
	t.ToolSelect.SetSelected(board.Board().Tool().Tool.String())

	onColorTapped := func(c color.Color) {
		board.SetColor(c)
		if board.Board().Tool().Tool == tools.Eraser {
			t.ToolSelect.SetSelected(tools.Pencil.String())
		}
	}
	colorBox := container.NewHBox()
	for _, c := range Palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	t.WidthSlider = widget.NewSlider(1.0, 50.0)
	t.WidthSlider.Step = 1
	t.WidthSlider.SetValue(float64(board.Board().Tool().Width))
	t.WidthSlider.OnChanged = board.SetStroke
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.WidthSlider)

	t.Undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), board.Undo)
	t.Redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), board.Redo)
	t.Clear = widget.NewButtonWithIcon("", theme.ContentClearIcon(), board.ClearPaths)
	board.OnHistoryChanged = t.Refresh
	t.Refresh()

	objects := []fyne.CanvasObject{
		widget.NewLabel("Tool:"),
		t.ToolSelect,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		t.Undo,
		t.Redo,
		t.Clear,
	}
	objects = append(objects, extra...)
	objects = append(objects, layout.NewSpacer())
	t.content = container.NewHBox(objects...)
	return t
}

// Content is the toolbar's canvas object.
func (t *Toolbar) Content() fyne.CanvasObject { return t.content }

// Refresh enables undo and redo only when they would do something.
func (t *Toolbar) Refresh() {
	setEnabled(t.Undo, t.board.CanUndo())
	setEnabled(t.Redo, t.board.CanRedo())
}

func setEnabled(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

// ApplyDefaults moves the controls, and so the board, to new tool defaults.
func (t *Toolbar) ApplyDefaults(tool tools.ID, c color.RGBA, width int) {
	t.board.SetColor(c)
	t.board.SetTool(tool)
	t.board.SetStroke(float64(width))
	t.ToolSelect.SetSelected(tool.String())
	t.WidthSlider.SetValue(float64(width))
	t.board.SetStatus(fmt.Sprintf("Defaults: %s, width %d", tool, width))
}
