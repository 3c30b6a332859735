package canvas

import (
	"errors"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// ErrNoPath is returned when a path operation arrives without BeginPath.
var ErrNoPath = errors.New("canvas: no open path")

// Mode selects how a stroke reaches the surface.
type Mode int

const (
	// ModeInactive strokes open and close normally but never touch pixels.
	ModeInactive Mode = iota
	// ModePaint composites the stroke color over the surface.
	ModePaint
)

func (m Mode) String() string {
	switch m {
	case ModePaint:
		return "paint"
	default:
		return "inactive"
	}
}

// StrokeParams are the resolved settings of a single stroke.
type StrokeParams struct {
	Color color.RGBA
	Width float32
	Mode  Mode
}

// Active reports whether strokes with these params draw anything.
func (p StrokeParams) Active() bool { return p.Mode == ModePaint && p.Width > 0 }

type path struct {
	params StrokeParams
	last   Point
}

// Renderer draws incremental stroke segments straight onto a Surface.
type Renderer struct {
	surface *Surface
	stroker *rasterx.Stroker
	path    *path
}

// NewRenderer returns a renderer bound to s.
func NewRenderer(s *Surface) *Renderer {
	w, h := s.Width(), s.Height()
	scanner := rasterx.NewScannerGV(w, h, s.img, s.img.Rect)
	return &Renderer{
		surface: s,
		stroker: rasterx.NewStroker(w, h, scanner),
	}
}

// BeginPath opens a sub-path at p. Any path still open is discarded.
func (r *Renderer) BeginPath(p Point, params StrokeParams) {
	r.path = &path{params: params, last: p}
}

// ExtendPath draws the segment from the last point to p and moves the
// last point to p. Zero-length segments draw nothing.
func (r *Renderer) ExtendPath(p Point) error {
	if r.path == nil {
		return ErrNoPath
	}
	from := r.path.last
	r.path.last = p
	if from == p || !r.path.params.Active() {
		return nil
	}
	r.segment(from, p, r.path.params)
	return nil
}

// EndPath closes the open sub-path.
func (r *Renderer) EndPath() error {
	if r.path == nil {
		return ErrNoPath
	}
	r.path = nil
	return nil
}

// Open reports whether a sub-path is in progress.
func (r *Renderer) Open() bool { return r.path != nil }

// segment strokes a single line with round caps and joins so that coarse
// pointer sampling still produces a continuous line.
func (r *Renderer) segment(a, b Point, params StrokeParams) {
	s := r.stroker
	s.Clear()
	s.SetStroke(toFixed(params.Width), 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	s.SetColor(params.Color)
	s.Start(toPoint(a))
	s.Line(toPoint(b))
	s.Stop(false)
	s.Draw()
	s.Clear()
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func toPoint(p Point) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
}
