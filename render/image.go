package render

import (
	"image"
	"image/color"

	"github.com/echoflaresat/skyray/colors"
)

// Image is a row-major buffer of colors. Height is derived from Width and
// AspectRatio; Pixels is filled once by a Renderer.
type Image struct {
	AspectRatio float64
	Width       int
	Height      int
	Pixels      []colors.RGB
}

// NewImage returns an empty image whose height is Width/AspectRatio
// truncated toward zero.
func NewImage(aspectRatio float64, width int) *Image {
	return &Image{
		AspectRatio: aspectRatio,
		Width:       width,
		Height:      int(float64(width) / aspectRatio),
	}
}

// RGBPixels exposes the buffer to encoders that write it verbatim.
func (m *Image) RGBPixels() []colors.RGB {
	return m.Pixels
}

func (m *Image) ColorModel() color.Model {
	return colors.Model
}

func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At returns the color at column x, row y, or black outside the filled buffer.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return colors.Black()
	}
	i := y*m.Width + x
	if i >= len(m.Pixels) {
		return colors.Black()
	}
	return m.Pixels[i]
}
