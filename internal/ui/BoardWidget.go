package ui

import (
	"errors"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	sketch "SketchBoard/internal/canvas"
	"SketchBoard/internal/history"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tools"
)

// BoardWidget shows a board and feeds it mouse input.
type BoardWidget struct {
	widget.BaseWidget
	board     *state.Board
	statusBar *widget.Label

	// restoreFailed disables undo/redo until the next snapshot lands.
	restoreFailed bool

	// OnHistoryChanged runs after anything that may change CanUndo/CanRedo.
	OnHistoryChanged func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(board *state.Board) *BoardWidget {
	b := &BoardWidget{
		board:     board,
		statusBar: widget.NewLabel("Ready"),
	}
	board.OnChange = b.Refresh
	b.ExtendBaseWidget(b)
	return b
}

// Board returns the engine behind the widget.
func (b *BoardWidget) Board() *state.Board { return b.board }

// StatusBar is the label the widget reports to.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetStatus is safe to call from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

func (b *BoardWidget) SetTool(id tools.ID) {
	b.board.SetTool(id)
	if !tools.Drawable(id) {
		b.SetStatus(id.String() + " is not available yet")
	}
}

func (b *BoardWidget) SetColor(c color.Color) {
	r, g, bl, _ := c.RGBA()
	b.board.SetColor(color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 255})
}

func (b *BoardWidget) SetStroke(s float64) {
	if err := b.board.SetWidth(int(s + 0.5)); err != nil {
		log.Printf("[BOARD] Ignoring stroke width %.1f: %v", s, err)
	}
}

func (b *BoardWidget) CanUndo() bool { return !b.restoreFailed && b.board.CanUndo() }
func (b *BoardWidget) CanRedo() bool { return !b.restoreFailed && b.board.CanRedo() }

func (b *BoardWidget) Undo() {
	b.step(b.board.Undo, "Undo")
}

func (b *BoardWidget) Redo() {
	b.step(b.board.Redo, "Redo")
}

func (b *BoardWidget) step(fn func() (bool, error), name string) {
	if b.restoreFailed {
		return
	}
	if _, err := fn(); err != nil {
		log.Printf("[BOARD] %s failed: %v", name, err)
		if errors.Is(err, history.ErrRestore) {
			b.restoreFailed = true
		}
		b.SetStatus(name + " failed, draw to continue")
	}
	b.historyChanged()
}

// ClearPaths wipes the board. Clearing can be undone.
func (b *BoardWidget) ClearPaths() {
	if err := b.board.Clear(); err != nil {
		log.Printf("[BOARD] Clear failed: %v", err)
		b.SetStatus("Clear failed")
		return
	}
	b.restoreFailed = false
	b.historyChanged()
}

func (b *BoardWidget) historyChanged() {
	if b.OnHistoryChanged != nil {
		b.OnHistoryChanged()
	}
}

func toPoint(p fyne.Position) sketch.Point { return sketch.Pt(p.X, p.Y) }

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.board.OnPointerDown(toPoint(e.Position))
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.release(b.board.OnPointerUp)
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.board.OnPointerMove(toPoint(e.Position))
}

func (b *BoardWidget) DragEnd() {
	b.release(b.board.OnPointerUp)
}

func (b *BoardWidget) MouseOut() {
	b.release(b.board.OnPointerLeave)
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) release(end func() error) {
	if !b.board.Drawing() {
		return
	}
	before := b.board.Revision()
	if err := end(); err != nil {
		log.Printf("[BOARD] Stroke kept but not undoable: %v", err)
		b.SetStatus("Could not record stroke")
	} else if b.board.Revision() != before {
		b.restoreFailed = false
	}
	b.historyChanged()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.Gray{Y: 0xe0})
	r.image = canvas.NewImageFromImage(b.board.Image())
	r.image.FillMode = canvas.ImageFillStretch
	r.image.ScaleMode = canvas.ImageScalePixels
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	image      *canvas.Image
}

func (r *boardWidgetRenderer) surfaceSize() fyne.Size {
	bounds := r.board.board.Bounds()
	return fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy()))
}

// Layout centres the surface when the widget is larger than it and tells
// the board where the surface now sits.
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	s := r.surfaceSize()
	origin := fyne.NewPos(max(0, (size.Width-s.Width)/2), max(0, (size.Height-s.Height)/2))
	r.image.Move(origin)
	r.image.Resize(s)
	r.board.board.SetOrigin(toPoint(origin))
}

func (r *boardWidgetRenderer) MinSize() fyne.Size { return r.surfaceSize() }

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image}
}

func (r *boardWidgetRenderer) Refresh() {
	r.image.Image = r.board.board.Image()
	r.image.Refresh()
	r.background.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
