package render

import (
	"github.com/echoflaresat/skyray/vectors"
)

const FocalLength = 1.0

// Camera models a pinhole camera looking down -Z with its eye at the origin.
// The viewport sits one focal length in front of the eye.
type Camera struct {
	FocalLength    float64
	ViewportHeight float64
	ViewportWidth  int
	Eye            vectors.Vec3

	// Edge vectors of the viewport. Vertical points down the image.
	ViewportHorizontal vectors.Vec3
	ViewportVertical   vectors.Vec3

	PixelDeltaHorizontal vectors.Vec3
	PixelDeltaVertical   vectors.Vec3

	ViewportUpperLeft vectors.Vec3
	Pixel00           vectors.Vec3
}

// NewCamera derives the viewport for img from viewportHeight.
//
// The viewport width is int(viewportHeight) * (img.Width / img.Height) with
// both operands truncated to integers, so a 16:9 image gets a 2x2 viewport
// for a viewport height of 2. img.Width and img.Height must be positive.
func NewCamera(viewportHeight float64, img *Image) Camera {
	viewportWidth := int(viewportHeight) * (img.Width / img.Height)
	eye := vectors.Zero()

	horizontal := vectors.Vec3{X: float64(viewportWidth)}
	vertical := vectors.Vec3{Y: -viewportHeight}

	upperLeft := eye.
		Sub(vectors.Vec3{Z: FocalLength}).
		Sub(horizontal.DivInt(2)).
		Sub(vertical.DivInt(2))

	deltaH := horizontal.DivInt(img.Width)
	deltaV := vertical.DivInt(img.Height)

	return Camera{
		FocalLength:          FocalLength,
		ViewportHeight:       viewportHeight,
		ViewportWidth:        viewportWidth,
		Eye:                  eye,
		ViewportHorizontal:   horizontal,
		ViewportVertical:     vertical,
		PixelDeltaHorizontal: deltaH,
		PixelDeltaVertical:   deltaV,
		ViewportUpperLeft:    upperLeft,
		Pixel00:              upperLeft.Add(deltaH.Add(deltaV).Scale(0.5)),
	}
}

// PixelCenter returns the viewport point sampled for pixel (col, row).
func (c Camera) PixelCenter(col, row int) vectors.Vec3 {
	return c.Pixel00.
		Add(c.PixelDeltaHorizontal.ScaleInt(col)).
		Add(c.PixelDeltaVertical.ScaleInt(row))
}

// ComputeRay returns the ray from the eye through the center of pixel (col, row).
// The direction is not normalized.
func (c Camera) ComputeRay(col, row int) Ray {
	return NewRay(c.Eye, c.PixelCenter(col, row).Sub(c.Eye))
}
