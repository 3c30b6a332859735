package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF writes a single page PDF with img filling the page, one
// point per pixel.
func WritePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetCreator("SketchBoard", false)
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opts, &buf)
	p.ImageOptions("board", 0, 0, wd, ht, false, opts, 0, "")
	if err := p.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return p.Output(w)
}
