package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(1, 1, color.RGBA{R: 200, A: 255})
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", PNG},
		{".PDF", PDF},
		{" bmp", BMP},
		{"", PNG},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseFormat("tiff")
	assert.Error(t, err)
	assert.Equal(t, ".pdf", PDF.Ext())
}

func TestEncodePNGAndBMP(t *testing.T) {
	img := testImage(4, 3)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, PNG))
	got, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, img, BMP))
	got, err = bmp.Decode(&buf)
	require.NoError(t, err)
	r, _, _, _ := got.At(1, 1).RGBA()
	assert.Equal(t, uint32(200*0x101), r)

	assert.Error(t, Encode(&buf, img, Format(9)))
}

func TestEncodePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testImage(40, 20), PDF))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/Subtype /Image")
}

func TestThumbnail(t *testing.T) {
	img := testImage(200, 100)
	th := Thumbnail(img, 50)
	assert.Equal(t, 50, th.Bounds().Dx())
	assert.Equal(t, 25, th.Bounds().Dy())

	small := testImage(10, 10)
	assert.Same(t, small, Thumbnail(small, 50))
	assert.Same(t, img, Thumbnail(img, 0))
}

func TestFileSinkSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := FileSink{Dir: dir, Format: PNG, Thumbs: 8}
	path, err := sink.Save("sketch", testImage(16, 16))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sketch.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "sketch.thumb.png"))
	assert.NoError(t, err)
}
