// Package storage persists cropped strip images to the output folder.
package storage

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Store writes cropped images as PNG files under a single root directory.
// It holds no mutable state beyond the root path, so one Store can serve
// concurrent requests.
type Store struct {
	root string
}

// New creates the output directory if needed and returns a Store rooted at
// it.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output folder %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the directory the store writes into.
func (s *Store) Root() string {
	return s.root
}

// Save writes img as <name>.png under the store root and returns the full
// path. name must already be safe; callers go through SafeName or
// GeneratedName.
func (s *Store) Save(name string, img image.Image) (string, error) {
	path := filepath.Join(s.root, name+".png")
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("failed to save image to %s: %w", path, err)
	}
	return path, nil
}

// SafeName strips a requested filename down to letters, digits, hyphens and
// underscores, dropping path separators and anything else that could
// escape the output folder. Returns "" when nothing survives.
func SafeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GeneratedName builds a unique filename for a saved crop from the given
// timestamp and a short random suffix, e.g. "cropped_20260829_153012_1a2b3c4d".
func GeneratedName(now time.Time) string {
	stamp := now.UTC().Format("20060102_150405")
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("cropped_%s_%s", stamp, suffix)
}
