package state

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"time"

	"github.com/google/uuid"

	"SketchBoard/internal/canvas"
	"SketchBoard/internal/history"
	"SketchBoard/internal/tools"
)

var (
	ErrInvalidSize   = errors.New("board: width and height must be positive")
	ErrInvalidWidth  = errors.New("board: stroke width must be positive")
	ErrSessionActive = errors.New("board: a stroke is in progress")
)

// Board is a drawing engine: a raster surface, the tool selection, an
// undo history and the pointer state machine that ties them together.
//
// A Board is not safe for concurrent use. Hosts call it from their event
// loop and every call finishes before returning.
type Board struct {
	id       string
	surface  *canvas.Surface
	renderer *canvas.Renderer
	history  *history.Manager
	tool     tools.State
	origin   canvas.Point
	session  *Session
	last     *Session

	// OnChange, if set, runs after every change to the visible surface.
	OnChange func()
	// OnCommit, if set, runs when the history moves: a new snapshot, an
	// undo or a redo.
	OnCommit func()
}

// NewBoard creates a blank board and seeds its history.
func NewBoard(opts Options) (*Board, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrInvalidSize
	}
	if opts.StrokeWidth <= 0 {
		return nil, ErrInvalidWidth
	}
	codec := opts.SnapshotCodec
	if codec == nil {
		c, err := history.CodecByName(opts.Codec)
		if err != nil {
			return nil, err
		}
		codec = c
	}
	surface, err := canvas.NewSurface(opts.Width, opts.Height, opts.Background)
	if err != nil {
		return nil, err
	}
	h, err := history.New(surface, codec)
	if err != nil {
		return nil, err
	}
	b := &Board{
		id:       uuid.NewString(),
		surface:  surface,
		renderer: canvas.NewRenderer(surface),
		history:  h,
		origin:   opts.Origin,
		tool: tools.State{
			Tool:  opts.Tool,
			Color: opts.Color,
			Width: opts.StrokeWidth,
		},
	}
	log.Printf("[BOARD] %s created: %dx%d, %s snapshots", b.id, opts.Width, opts.Height, codec.Name())
	return b, nil
}

// ID identifies this board instance in logs and share links.
func (b *Board) ID() string { return b.id }

func (b *Board) SetTool(id tools.ID) { b.tool.Tool = id }

// SetColor selects the pencil color. Alpha is ignored.
func (b *Board) SetColor(c color.RGBA) {
	c.A = 0xff
	b.tool.Color = c
}

// SetWidth sets the stroke width in pixels.
func (b *Board) SetWidth(px int) error {
	if px <= 0 {
		return ErrInvalidWidth
	}
	b.tool.Width = px
	return nil
}

// SetOrigin moves the surface inside the host viewport.
func (b *Board) SetOrigin(p canvas.Point) { b.origin = p }

func (b *Board) Tool() tools.State       { return b.tool }
func (b *Board) Origin() canvas.Point    { return b.origin }
func (b *Board) Background() color.RGBA  { return b.surface.Background() }
func (b *Board) Bounds() image.Rectangle { return b.surface.Bounds() }

// Drawing reports whether a stroke is in progress.
func (b *Board) Drawing() bool { return b.session != nil }

// Session returns the open stroke, or nil when idle.
func (b *Board) Session() *Session { return b.session }

// LastStroke returns the most recently finished stroke, or nil.
func (b *Board) LastStroke() *Session { return b.last }

func (b *Board) local(p canvas.Point) canvas.Point { return p.Sub(b.origin) }

// OnPointerDown starts a stroke if p, in viewport coordinates, is on the
// surface. Presses outside the surface are ignored.
func (b *Board) OnPointerDown(p canvas.Point) {
	if b.session != nil {
		return
	}
	lp := b.local(p)
	if !b.surface.Contains(lp) {
		return
	}
	params := b.tool.Params(b.surface.Background())
	b.session = &Session{
		ID:     uuid.NewString(),
		Tool:   b.tool.Tool,
		Params: params,
		Start:  time.Now(),
	}
	b.renderer.BeginPath(lp, params)
}

// OnPointerMove extends the open stroke to p. Points off the surface are
// clamped to its nearest edge so the line stays continuous.
func (b *Board) OnPointerMove(p canvas.Point) {
	if b.session == nil {
		return
	}
	if err := b.renderer.ExtendPath(b.surface.Clamp(b.local(p))); err != nil {
		return
	}
	b.session.Moves++
	if b.session.Params.Active() {
		b.changed()
	}
}

// OnPointerUp ends the stroke and records it. The returned error is a
// failed capture; the stroke stays on the surface either way.
func (b *Board) OnPointerUp() error {
	return b.endSession()
}

// OnPointerLeave ends the stroke like OnPointerUp, since a release outside
// the host element is never delivered.
func (b *Board) OnPointerLeave() error {
	return b.endSession()
}

func (b *Board) endSession() error {
	s := b.session
	if s == nil {
		return nil
	}
	b.session = nil
	if err := b.renderer.EndPath(); err != nil {
		return nil
	}
	s.End = time.Now()
	b.last = s
	if !s.Params.Active() {
		log.Printf("[BOARD] %s stroke ignored, tool has no strategy", s.Tool)
		return nil
	}
	log.Printf("[BOARD] %s stroke finished: %d moves in %s", s.Tool, s.Moves, s.Duration().Round(time.Millisecond))
	added, err := b.history.Capture()
	if added {
		b.committed()
	}
	return err
}

// Clear wipes the surface to the background and records it, so a clear
// can be undone. It is refused while a stroke is open.
func (b *Board) Clear() error {
	if b.session != nil {
		return ErrSessionActive
	}
	b.surface.Fill()
	b.changed()
	added, err := b.history.Capture()
	if err != nil {
		return err
	}
	if added {
		log.Printf("[BOARD] %s cleared", b.id)
		b.committed()
	}
	return nil
}

// Undo restores the previous snapshot. It returns false when there is
// nothing to undo or a stroke is open.
func (b *Board) Undo() (bool, error) {
	if b.session != nil {
		return false, nil
	}
	ok, err := b.history.Undo()
	if ok {
		b.changed()
		b.committed()
	}
	return ok, err
}

// Redo restores the next snapshot. It returns false at the newest entry
// or while a stroke is open.
func (b *Board) Redo() (bool, error) {
	if b.session != nil {
		return false, nil
	}
	ok, err := b.history.Redo()
	if ok {
		b.changed()
		b.committed()
	}
	return ok, err
}

func (b *Board) CanUndo() bool { return b.session == nil && b.history.CanUndo() }
func (b *Board) CanRedo() bool { return b.session == nil && b.history.CanRedo() }

// HistoryLen returns the number of snapshots, including the blank one.
func (b *Board) HistoryLen() int { return b.history.Len() }

// Cursor returns the index of the snapshot currently shown.
func (b *Board) Cursor() int { return b.history.Cursor() }

// Revision identifies the snapshot currently shown. It changes whenever
// the history moves.
func (b *Board) Revision() uint64 { return b.history.Current().Revision }

// Image returns a copy of the surface for display.
func (b *Board) Image() *image.RGBA { return b.surface.Snapshot() }

// ExportSnapshot encodes the surface as PNG.
func (b *Board) ExportSnapshot() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.surface.Snapshot()); err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *Board) changed() {
	if b.OnChange != nil {
		b.OnChange()
	}
}

func (b *Board) committed() {
	if b.OnCommit != nil {
		b.OnCommit()
	}
}
