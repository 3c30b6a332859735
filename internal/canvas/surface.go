package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// ErrSizeMismatch is returned when a restore image does not cover the surface exactly.
var ErrSizeMismatch = errors.New("canvas: image size does not match surface")

// Point is a position in surface-local pixel coordinates.
type Point struct{ X, Y float32 }

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Sub returns p translated by -o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Surface is the fixed-size raster that holds the visible drawing.
// Pixels can only be written by the Renderer, Fill and Restore.
type Surface struct {
	img        *image.RGBA
	background color.RGBA
}

// NewSurface creates a width x height surface filled with the background color.
// The background is forced opaque.
func NewSurface(width, height int, background color.RGBA) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: invalid surface size %dx%d", width, height)
	}
	background.A = 0xff
	s := &Surface{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	s.Fill()
	return s, nil
}

func (s *Surface) Width() int  { return s.img.Rect.Dx() }
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Bounds returns the surface rectangle, always anchored at (0,0).
func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }

// Background returns the color used by Fill and by the eraser.
func (s *Surface) Background() color.RGBA { return s.background }

// Contains reports whether p lies on a pixel of the surface.
func (s *Surface) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < float32(s.Width()) && p.Y < float32(s.Height())
}

// Clamp returns the nearest point to p that lies on the surface.
func (s *Surface) Clamp(p Point) Point {
	maxX, maxY := float32(s.Width()-1), float32(s.Height()-1)
	return Point{X: clamp(p.X, 0, maxX), Y: clamp(p.Y, 0, maxY)}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// At returns the color of a single pixel.
func (s *Surface) At(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	cp := image.NewRGBA(s.img.Rect)
	copy(cp.Pix, s.img.Pix)
	return cp
}

// Fill wipes the whole surface to the background color.
func (s *Surface) Fill() {
	draw.Draw(s.img, s.img.Rect, image.NewUniform(s.background), image.Point{}, draw.Src)
}

// Restore overwrites every pixel with img. Nothing is blended and nothing
// is written when the sizes differ.
func (s *Surface) Restore(img *image.RGBA) error {
	if img == nil || img.Rect.Dx() != s.Width() || img.Rect.Dy() != s.Height() {
		return ErrSizeMismatch
	}
	draw.Draw(s.img, s.img.Rect, img, img.Rect.Min, draw.Src)
	return nil
}
