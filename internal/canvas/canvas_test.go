package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func newTestSurface(t *testing.T) *Surface {
	t.Helper()
	s, err := NewSurface(100, 80, white)
	require.NoError(t, err)
	return s
}

func TestNewSurfaceRejectsEmptySize(t *testing.T) {
	_, err := NewSurface(0, 10, white)
	assert.Error(t, err)
	_, err = NewSurface(10, -1, white)
	assert.Error(t, err)
}

func TestSurfaceStartsBlank(t *testing.T) {
	s := newTestSurface(t)
	assert.Equal(t, white, s.At(0, 0))
	assert.Equal(t, white, s.At(99, 79))
	assert.Equal(t, image.Rect(0, 0, 100, 80), s.Bounds())
}

func TestSurfaceBackgroundIsOpaque(t *testing.T) {
	s, err := NewSurface(4, 4, color.RGBA{R: 10, G: 20, B: 30})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, s.At(1, 1))
}

func TestSurfaceContainsAndClamp(t *testing.T) {
	s := newTestSurface(t)
	tests := []struct {
		p       Point
		inside  bool
		clamped Point
	}{
		{Pt(0, 0), true, Pt(0, 0)},
		{Pt(99.5, 79.5), true, Pt(99, 79)},
		{Pt(100, 10), false, Pt(99, 10)},
		{Pt(-3, -7), false, Pt(0, 0)},
		{Pt(50, 200), false, Pt(50, 79)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.inside, s.Contains(tt.p), "contains %v", tt.p)
		assert.Equal(t, tt.clamped, s.Clamp(tt.p), "clamp %v", tt.p)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSurface(t)
	snap := s.Snapshot()
	snap.SetRGBA(5, 5, red)
	assert.Equal(t, white, s.At(5, 5))
}

func TestRestoreOverwritesAndChecksSize(t *testing.T) {
	s := newTestSurface(t)
	img := image.NewRGBA(s.Bounds())
	img.SetRGBA(3, 4, red)
	require.NoError(t, s.Restore(img))
	assert.Equal(t, red, s.At(3, 4))
	// replace, not blend: transparent pixels in img stay transparent
	assert.Equal(t, color.RGBA{}, s.At(0, 0))

	before := s.Snapshot()
	err := s.Restore(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	assert.ErrorIs(t, err, ErrSizeMismatch)
	assert.Equal(t, before.Pix, s.Snapshot().Pix)
	assert.ErrorIs(t, s.Restore(nil), ErrSizeMismatch)
}

func TestFillWipesToBackground(t *testing.T) {
	s := newTestSurface(t)
	r := NewRenderer(s)
	r.BeginPath(Pt(10, 10), StrokeParams{Color: red, Width: 6, Mode: ModePaint})
	require.NoError(t, r.ExtendPath(Pt(60, 10)))
	require.Equal(t, red, s.At(30, 10))
	s.Fill()
	assert.Equal(t, white, s.At(30, 10))
}

func TestRendererWithoutPath(t *testing.T) {
	r := NewRenderer(newTestSurface(t))
	assert.ErrorIs(t, r.ExtendPath(Pt(1, 1)), ErrNoPath)
	assert.ErrorIs(t, r.EndPath(), ErrNoPath)
	assert.False(t, r.Open())
}

func TestRendererDrawsSegment(t *testing.T) {
	s := newTestSurface(t)
	r := NewRenderer(s)
	r.BeginPath(Pt(10, 40), StrokeParams{Color: red, Width: 8, Mode: ModePaint})
	assert.True(t, r.Open())
	assert.Equal(t, white, s.At(50, 40), "BeginPath must not touch pixels")

	require.NoError(t, r.ExtendPath(Pt(90, 40)))
	assert.Equal(t, red, s.At(50, 40))
	assert.Equal(t, red, s.At(50, 42))
	assert.Equal(t, white, s.At(50, 50))
	// round caps extend past the end points
	assert.Equal(t, red, s.At(92, 40))
	assert.Equal(t, white, s.At(97, 40))

	require.NoError(t, r.EndPath())
	assert.False(t, r.Open())
}

func TestRendererSegmentsJoinUp(t *testing.T) {
	s := newTestSurface(t)
	r := NewRenderer(s)
	r.BeginPath(Pt(10, 10), StrokeParams{Color: red, Width: 6, Mode: ModePaint})
	require.NoError(t, r.ExtendPath(Pt(50, 10)))
	require.NoError(t, r.ExtendPath(Pt(50, 60)))
	assert.Equal(t, red, s.At(30, 10))
	assert.Equal(t, red, s.At(50, 10))
	assert.Equal(t, red, s.At(50, 35))
}

func TestRendererSkipsZeroLengthAndInactive(t *testing.T) {
	s := newTestSurface(t)
	r := NewRenderer(s)
	blank := s.Snapshot()

	r.BeginPath(Pt(20, 20), StrokeParams{Color: red, Width: 10, Mode: ModePaint})
	require.NoError(t, r.ExtendPath(Pt(20, 20)))
	require.NoError(t, r.EndPath())
	assert.Equal(t, blank.Pix, s.Snapshot().Pix)

	r.BeginPath(Pt(20, 20), StrokeParams{Mode: ModeInactive})
	require.NoError(t, r.ExtendPath(Pt(70, 70)))
	require.NoError(t, r.EndPath())
	assert.Equal(t, blank.Pix, s.Snapshot().Pix)
}
