package tools

import (
	"fmt"
	"image/color"
	"strings"

	"SketchBoard/internal/canvas"
)

// ID identifies a drawing tool.
type ID int

const (
	Pencil ID = iota
	Eraser
	Text
	Rectangle
	Circle
	Image
)

// EraserMultiplier scales the configured width when erasing.
const EraserMultiplier = 3

var names = map[ID]string{
	Pencil:    "pencil",
	Eraser:    "eraser",
	Text:      "text",
	Rectangle: "rectangle",
	Circle:    "circle",
	Image:     "image",
}

// All lists every tool in toolbar order.
func All() []ID {
	return []ID{Pencil, Eraser, Text, Rectangle, Circle, Image}
}

func (id ID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("tool(%d)", int(id))
}

// ParseID maps a tool name to its ID. Matching is case-insensitive.
func ParseID(s string) (ID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for id, n := range names {
		if n == s {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// State is the user's current tool selection.
type State struct {
	Tool  ID
	Color color.RGBA
	Width int
}

// Strategy turns the selection into stroke parameters.
type Strategy func(c color.RGBA, width int, background color.RGBA) canvas.StrokeParams

var strategies = map[ID]Strategy{
	Pencil: pencil,
	Eraser: eraser,
}

func pencil(c color.RGBA, width int, _ color.RGBA) canvas.StrokeParams {
	c.A = 0xff
	return canvas.StrokeParams{Color: c, Width: float32(width), Mode: canvas.ModePaint}
}

// eraser paints with the background; the selected color is ignored.
func eraser(_ color.RGBA, width int, background color.RGBA) canvas.StrokeParams {
	background.A = 0xff
	return canvas.StrokeParams{Color: background, Width: float32(width * EraserMultiplier), Mode: canvas.ModePaint}
}

// Inactive is returned for tools that have no drawing strategy yet.
var Inactive = canvas.StrokeParams{Mode: canvas.ModeInactive}

// Resolve returns the parameters the renderer uses for the next stroke.
func Resolve(tool ID, c color.RGBA, width int, background color.RGBA) canvas.StrokeParams {
	strategy, ok := strategies[tool]
	if !ok || width <= 0 {
		return Inactive
	}
	return strategy(c, width, background)
}

// Params resolves the whole state at once.
func (s State) Params(background color.RGBA) canvas.StrokeParams {
	return Resolve(s.Tool, s.Color, s.Width, background)
}

// Drawable reports whether id has a strategy that touches pixels.
func Drawable(id ID) bool {
	_, ok := strategies[id]
	return ok
}
