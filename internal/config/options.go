package config

import (
	"SketchBoard/internal/export"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tools"
)

// BoardOptions converts the canvas, tool and history sections into
// options for a new board. The config must be valid.
func (c Config) BoardOptions() (state.Options, error) {
	opts := state.DefaultOptions()
	bg, err := ParseColor(c.Canvas.Background)
	if err != nil {
		return opts, err
	}
	fg, err := ParseColor(c.Tools.Color)
	if err != nil {
		return opts, err
	}
	tool, err := tools.ParseID(c.Tools.Default)
	if err != nil {
		return opts, err
	}
	opts.Width, opts.Height = c.Canvas.Width, c.Canvas.Height
	opts.Background = bg
	opts.Tool = tool
	opts.Color = fg
	opts.StrokeWidth = c.Tools.Width
	opts.Codec = c.History.Codec
	return opts, nil
}

// Sink returns the file sink described by the export section.
func (c Config) Sink() (export.FileSink, error) {
	f, err := export.ParseFormat(c.Export.Format)
	if err != nil {
		return export.FileSink{}, err
	}
	return export.FileSink{Dir: c.Export.Dir, Format: f, Thumbs: c.Export.Thumbnail}, nil
}
