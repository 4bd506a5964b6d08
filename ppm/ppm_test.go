package ppm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/echoflaresat/skyray/colors"
)

func TestEncode(t *testing.T) {
	pm := &Pixmap{
		Width:  2,
		Height: 2,
		Pixels: []colors.RGB{{1, 2, 3}, {255, 255, 255}, {0, 0, 0}, {10, 20, 30}},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, pm); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := "P3 2 2 255\n1 2 3 255 255 255 0 0 0 10 20 30 "
	if got := buf.String(); got != expected {
		t.Errorf("Encode wrote %q, expected %q", got, expected)
	}
}

func TestEncode_PixelCountMismatch(t *testing.T) {
	pm := &Pixmap{Width: 3, Height: 1, Pixels: []colors.RGB{{}, {}}}
	err := Encode(&bytes.Buffer{}, pm)
	if !errors.Is(err, ErrPixelCount) {
		t.Fatalf("Expected ErrPixelCount, got %v", err)
	}
}

func TestEncode_GenericImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 9, G: 8, B: 7, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got := buf.String(); got != "P3 2 1 255\n9 8 7 200 100 50 " {
		t.Errorf("Encode wrote %q", got)
	}
}

func TestDecode(t *testing.T) {
	input := `P3
# written by hand
2 1
# maxval below
255
0 128 255   # first pixel
17 34 51
`
	pm, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if pm.Width != 2 || pm.Height != 1 || pm.MaxVal != 255 {
		t.Fatalf("header = %dx%d max %d", pm.Width, pm.Height, pm.MaxVal)
	}
	expected := []colors.RGB{{0, 128, 255}, {17, 34, 51}}
	for i, p := range expected {
		if pm.Pixels[i] != p {
			t.Errorf("pixel %d: expected %v, got %v", i, p, pm.Pixels[i])
		}
	}
	if pm.At(1, 0) != expected[1] {
		t.Errorf("At(1,0) = %v", pm.At(1, 0))
	}
}

func TestDecode_RescalesMaxVal(t *testing.T) {
	pm, err := Decode(strings.NewReader("P3 1 1 15 15 0 5"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if pm.Pixels[0] != (colors.RGB{R: 255, G: 0, B: 85}) {
		t.Errorf("pixel = %v", pm.Pixels[0])
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"binary magic", "P6 1 1 255 0 0 0", ErrInvalidHeader},
		{"empty", "", ErrInvalidHeader},
		{"zero width", "P3 0 1 255", ErrInvalidHeader},
		{"maxval too large", "P3 1 1 65535 0 0 0", ErrInvalidHeader},
		{"missing height", "P3 1", ErrInvalidHeader},
		{"truncated", "P3 2 1 255 1 2 3 4", ErrTruncated},
		{"pixel count wraps to zero", "P3 4294967296 4294967296 255\n", ErrInvalidHeader},
		{"pixel count wraps negative", "P3 3037000500 3037000500 255\n", ErrInvalidHeader},
		{"above pixel cap", "P3 65536 65536 255\n", ErrInvalidHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}

	if _, err := Decode(strings.NewReader("P3 1 1 255 1 2 300")); err == nil {
		t.Error("Expected error for sample above maxval")
	}
	if _, err := Decode(strings.NewReader("P3 1 1 255 1 x 3")); err == nil {
		t.Error("Expected error for non-numeric sample")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.ppm")
	if err := os.WriteFile(path, []byte("P3 1 2 255\n4 5 6 7 8 9 "), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}

	pm, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if pm.Width != 1 || pm.Height != 2 {
		t.Fatalf("dimensions = %dx%d", pm.Width, pm.Height)
	}
	if pm.Pixels[1] != (colors.RGB{7, 8, 9}) {
		t.Errorf("pixel 1 = %v", pm.Pixels[1])
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.ppm")); err == nil {
		t.Error("Expected error loading a missing file")
	}
}
