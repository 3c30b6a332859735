package history

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
)

// Codec serialises surface snapshots into history entries and back.
// Encode must be deterministic so identical surfaces compare equal.
type Codec interface {
	Name() string
	Encode(img *image.RGBA) ([]byte, error)
	Decode(data []byte) (*image.RGBA, error)
}

// CodecByName returns "png" or "raw".
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "png":
		return PNG{}, nil
	case "raw":
		return Raw{}, nil
	}
	return nil, fmt.Errorf("unknown snapshot codec %q", name)
}

// PNG stores each entry as a PNG image.
type PNG struct{}

func (PNG) Name() string { return "png" }

func (PNG) Encode(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (PNG) Decode(data []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Rect, img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// Raw keeps an uncompressed pixel copy behind an 8 byte size header.
// It trades memory for skipping compression on every capture.
type Raw struct{}

var errShortRaw = errors.New("raw snapshot too short")

func (Raw) Name() string { return "raw" }

func (Raw) Encode(img *image.RGBA) ([]byte, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, 8, 8+w*h*4)
	binary.BigEndian.PutUint32(out[0:], uint32(w))
	binary.BigEndian.PutUint32(out[4:], uint32(h))
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		i := img.PixOffset(img.Rect.Min.X, y)
		out = append(out, img.Pix[i:i+w*4]...)
	}
	return out, nil
}

func (Raw) Decode(data []byte) (*image.RGBA, error) {
	if len(data) < 8 {
		return nil, errShortRaw
	}
	w := int(binary.BigEndian.Uint32(data[0:]))
	h := int(binary.BigEndian.Uint32(data[4:]))
	if len(data)-8 != w*h*4 {
		return nil, fmt.Errorf("raw snapshot: %dx%d needs %d bytes, have %d", w, h, w*h*4, len(data)-8)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, data[8:])
	return img, nil
}
