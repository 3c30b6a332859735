package export

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
)

// FileSink saves snapshots into a directory.
type FileSink struct {
	Dir    string
	Format Format
	// Thumbs, when non-zero, also writes a PNG thumbnail no larger than
	// Thumbs pixels per side next to each file.
	Thumbs uint
}

// Save writes img as <Dir>/<name><ext> and returns the path.
func (s FileSink) Save(name string, img image.Image) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.Dir, name+s.Format.Ext())
	var buf bytes.Buffer
	if err := Encode(&buf, img, s.Format); err != nil {
		return "", fmt.Errorf("encode %s: %w", s.Format, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if s.Thumbs > 0 {
		var tb bytes.Buffer
		if err := Encode(&tb, Thumbnail(img, s.Thumbs), PNG); err != nil {
			return "", fmt.Errorf("encode thumbnail: %w", err)
		}
		if err := os.WriteFile(filepath.Join(s.Dir, name+".thumb.png"), tb.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("write thumbnail: %w", err)
		}
	}
	log.Printf("[EXPORT] Saved %s (%d bytes)", path, buf.Len())
	return path, nil
}
