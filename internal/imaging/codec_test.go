package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecode_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(40, 30, color.RGBA{R: 200, A: 255})); err != nil {
		t.Fatal(err)
	}

	img, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %q, want png", format)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(20, 20, color.White), nil); err != nil {
		t.Fatal(err)
	}

	_, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format: got %q, want jpeg", format)
	}
}

func TestDecode_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage(16, 8, color.Black)); err != nil {
		t.Fatal(err)
	}

	img, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != "bmp" {
		t.Errorf("format: got %q, want bmp", format)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("dimensions: got %dx%d, want 16x8", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not an image")},
		{"truncated png header", []byte{0x89, 'P', 'N', 'G'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Decode(tt.data); err == nil {
				t.Error("Decode should fail")
			}
		})
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	src := testImage(25, 35, color.RGBA{G: 255, A: 255})

	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	img, format, err := Decode(data)
	if err != nil {
		t.Fatalf("decoding encoded bytes failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %q, want png", format)
	}
	if img.Bounds().Dx() != 25 || img.Bounds().Dy() != 35 {
		t.Errorf("dimensions: got %dx%d, want 25x35", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestEncodeJPEG(t *testing.T) {
	data, err := EncodeJPEG(testImage(10, 10, color.White), 90)
	if err != nil {
		t.Fatalf("EncodeJPEG failed: %v", err)
	}
	if _, format, err := Decode(data); err != nil || format != "jpeg" {
		t.Errorf("round trip: format=%q err=%v", format, err)
	}
}
