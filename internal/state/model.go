package state

import (
	"image/color"
	"time"

	"SketchBoard/internal/canvas"
	"SketchBoard/internal/history"
	"SketchBoard/internal/tools"
)

// Session is the transient state of one pointer-down to pointer-up stroke.
type Session struct {
	ID     string
	Tool   tools.ID
	Params canvas.StrokeParams
	Start  time.Time
	End    time.Time
	// Moves counts accepted pointer moves, including clamped ones.
	Moves int
}

// Duration is how long the stroke was held, or zero while it is open.
func (s *Session) Duration() time.Duration {
	if s.End.IsZero() {
		return 0
	}
	return s.End.Sub(s.Start)
}

// Options configures a new Board.
type Options struct {
	Width      int
	Height     int
	Background color.RGBA
	// Origin is where the surface's top-left pixel sits in viewport space.
	Origin canvas.Point

	Tool        tools.ID
	Color       color.RGBA
	StrokeWidth int

	// Codec names the snapshot codec and defaults to PNG when empty.
	// SnapshotCodec, when set, takes precedence.
	Codec         string
	SnapshotCodec history.Codec
}

// DefaultOptions returns a white 1024x768 board with a black pencil.
func DefaultOptions() Options {
	return Options{
		Width:       1024,
		Height:      768,
		Background:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Tool:        tools.Pencil,
		Color:       color.RGBA{A: 255},
		StrokeWidth: 3,
		Codec:       "png",
	}
}
