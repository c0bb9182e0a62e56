package storage

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "my-strip_1", "my-strip_1"},
		{"path traversal", "../../etc/passwd", "etcpasswd"},
		{"spaces and dots", "my strip.png", "mystrippng"},
		{"empty", "", ""},
		{"only unsafe", "../ /..", ""},
		{"mixed case digits", "Crop42", "Crop42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeName(tt.in); got != tt.want {
				t.Errorf("SafeName(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGeneratedName(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 30, 12, 0, time.UTC)

	name := GeneratedName(now)
	if !strings.HasPrefix(name, "cropped_20260829_153012_") {
		t.Errorf("unexpected prefix: %q", name)
	}
	if got := len(name); got != len("cropped_20260829_153012_")+8 {
		t.Errorf("length %d, want 8-char suffix", got)
	}

	if other := GeneratedName(now); other == name {
		t.Error("two generated names collided")
	}
}

func TestStore_Save(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "crops"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}

	path, err := store.Save("test_crop", img)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "test_crop.png" {
		t.Errorf("unexpected filename: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("saved file is empty")
	}
}

func TestNew_CreatesNestedFolder(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "c")

	store, err := New(root)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if store.Root() != root {
		t.Errorf("root: got %s, want %s", store.Root(), root)
	}
	if _, err := os.Stat(root); err != nil {
		t.Errorf("folder not created: %v", err)
	}
}
