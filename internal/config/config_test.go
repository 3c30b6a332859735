package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/export"
	"SketchBoard/internal/tools"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "board.toml", `
[canvas]
width = 640
height = 480
background = "#fafafa"

[tools]
default = "eraser"
color = "#f00"
width = 5

[history]
codec = "raw"

[share]
enabled = true
port = 9000
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Canvas.Width)
	assert.Equal(t, "eraser", cfg.Tools.Default)
	assert.Equal(t, "raw", cfg.History.Codec)
	assert.True(t, cfg.Share.Enabled)
	assert.Equal(t, 9000, cfg.Share.Port)
	// untouched sections keep their defaults
	assert.Equal(t, "exports", cfg.Export.Dir)

	opts, err := cfg.BoardOptions()
	require.NoError(t, err)
	assert.Equal(t, tools.Eraser, opts.Tool)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, opts.Color)
	assert.Equal(t, color.RGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 255}, opts.Background)
	assert.Equal(t, 5, opts.StrokeWidth)
	assert.Equal(t, 480, opts.Height)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "board.yaml", `
canvas:
  width: 300
  height: 200
export:
  dir: /tmp/sketches
  format: pdf
  thumbnail: 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Canvas.Width)
	sink, err := cfg.Sink()
	require.NoError(t, err)
	assert.Equal(t, export.FileSink{Dir: "/tmp/sketches", Format: export.PDF}, sink)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(write(t, "board.ini", "width=1"))
	assert.Error(t, err)

	_, err = Load(write(t, "bad.toml", "[canvas\nwidth ="))
	assert.Error(t, err)

	_, err = Load(write(t, "invalid.toml", `
[canvas]
width = -1
[tools]
default = "spray"
color = "red"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canvas size")
	assert.Contains(t, err.Error(), "spray")
	assert.Contains(t, err.Error(), "tool color")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#000000", color.RGBA{A: 255}, true},
		{"#1a2B3c", color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}, true},
		{"fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"#12345", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, FormatColor(got)))
	}
}

func mustParse(t *testing.T, s string) color.RGBA {
	t.Helper()
	c, err := ParseColor(s)
	require.NoError(t, err)
	return c
}

func TestWatchReloads(t *testing.T) {
	path := write(t, "board.toml", "[tools]\nwidth = 2\n")
	got := make(chan Config, 4)
	w, err := Watch(path, func(c Config) {
		select {
		case got <- c:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[tools]\nwidth = 7\n"), 0o644))
	// the truncate may be seen on its own first
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.Tools.Width == 7 {
				return
			}
		case <-timeout:
			t.Fatal("no reload after write")
		}
	}
}
