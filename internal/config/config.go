// Package config loads SketchBoard settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"SketchBoard/internal/export"
	"SketchBoard/internal/history"
	"SketchBoard/internal/tools"
)

type Canvas struct {
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Background string `toml:"background" yaml:"background"`
}

type Tools struct {
	Default string `toml:"default" yaml:"default"`
	Color   string `toml:"color" yaml:"color"`
	Width   int    `toml:"width" yaml:"width"`
}

type History struct {
	Codec string `toml:"codec" yaml:"codec"`
}

type Export struct {
	Dir       string `toml:"dir" yaml:"dir"`
	Format    string `toml:"format" yaml:"format"`
	Thumbnail uint   `toml:"thumbnail" yaml:"thumbnail"`
}

type Share struct {
	Enabled   bool `toml:"enabled" yaml:"enabled"`
	Port      int  `toml:"port" yaml:"port"`
	Advertise bool `toml:"advertise" yaml:"advertise"`
}

// Config is the whole settings file.
type Config struct {
	Canvas  Canvas  `toml:"canvas" yaml:"canvas"`
	Tools   Tools   `toml:"tools" yaml:"tools"`
	History History `toml:"history" yaml:"history"`
	Export  Export  `toml:"export" yaml:"export"`
	Share   Share   `toml:"share" yaml:"share"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Canvas:  Canvas{Width: 1024, Height: 768, Background: "#ffffff"},
		Tools:   Tools{Default: "pencil", Color: "#000000", Width: 3},
		History: History{Codec: "png"},
		Export:  Export{Dir: "exports", Format: "png", Thumbnail: 256},
		Share:   Share{Port: 8888},
	}
}

// Load reads path on top of Default. The format follows the extension:
// .toml, or .yaml / .yml.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return cfg, cfg.Validate()
}

// Validate checks every field that has a restricted set of values.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if _, err := ParseColor(c.Canvas.Background); err != nil {
		errs = append(errs, fmt.Errorf("canvas background: %w", err))
	}
	if _, err := tools.ParseID(c.Tools.Default); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseColor(c.Tools.Color); err != nil {
		errs = append(errs, fmt.Errorf("tool color: %w", err))
	}
	if c.Tools.Width <= 0 {
		errs = append(errs, fmt.Errorf("tool width %d must be positive", c.Tools.Width))
	}
	if _, err := history.CodecByName(c.History.Codec); err != nil {
		errs = append(errs, err)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Share.Enabled && (c.Share.Port <= 0 || c.Share.Port > 65535) {
		errs = append(errs, fmt.Errorf("share port %d out of range", c.Share.Port))
	}
	return errors.Join(errs...)
}

// ParseColor parses "#rrggbb" or "#rgb". The result is always opaque.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if len(hex) != 6 || err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
