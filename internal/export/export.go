// Package export turns board snapshots into files: PNG, BMP and PDF, plus
// thumbnails for previews.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
)

// Format is an output file format.
type Format int

const (
	PNG Format = iota
	BMP
	PDF
)

func (f Format) String() string {
	switch f {
	case BMP:
		return "bmp"
	case PDF:
		return "pdf"
	default:
		return "png"
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + f.String() }

// ParseFormat accepts a format name or an extension such as ".pdf".
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png", "":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "pdf":
		return PDF, nil
	}
	return PNG, fmt.Errorf("unknown export format %q", s)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case PDF:
		return WritePDF(w, img)
	}
	return fmt.Errorf("unsupported export format %d", int(f))
}

// Thumbnail scales img down so that neither side exceeds maxSide,
// keeping the aspect ratio. Smaller images are returned as is.
func Thumbnail(img image.Image, maxSide uint) image.Image {
	b := img.Bounds()
	if maxSide == 0 || (uint(b.Dx()) <= maxSide && uint(b.Dy()) <= maxSide) {
		return img
	}
	return resize.Thumbnail(maxSide, maxSide, img, resize.Bilinear)
}
