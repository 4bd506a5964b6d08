package colors

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// RGB is an opaque color with 8 bits per channel.
//
// Every conversion from a float product into a channel saturates to [0,255]
// (NaN becomes 0), and Add saturates at 255. Channels never wrap.
type RGB struct {
	R, G, B uint8
}

// Model converts any color.Color into an RGB.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	return FromStandardColor(c)
})

// FromPacked extracts channels from a 0xRRGGBB value. Bits above 23 are ignored.
func FromPacked(value uint32) RGB {
	return RGB{
		R: uint8((value & 0xFF0000) >> 16),
		G: uint8((value & 0x00FF00) >> 8),
		B: uint8(value & 0x0000FF),
	}
}

// FromPercent builds a color from channel intensities in [-1,1], truncating
// 255*v toward zero. Negative intensities produce 0.
// It panics if any channel is outside [-1,1] or NaN.
func FromPercent(r, g, b float64) RGB {
	mustPercent("red", r)
	mustPercent("green", g)
	mustPercent("blue", b)
	return RGB{
		R: to8bit(255.0 * r),
		G: to8bit(255.0 * g),
		B: to8bit(255.0 * b),
	}
}

func FromStandardColor(c color.Color) RGB {
	// Fast path: already an RGB
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	r16, g16, b16, _ := c.RGBA()
	return RGB{R: uint8(r16 >> 8), G: uint8(g16 >> 8), B: uint8(b16 >> 8)}
}

func White() RGB {
	return RGB{R: 255, G: 255, B: 255}
}

func Black() RGB {
	return RGB{}
}

// RGBA implements color.Color. RGB is always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

// Scale returns c * s per channel, truncated.
func (c RGB) Scale(s float64) RGB {
	return RGB{
		R: to8bit(float64(c.R) * s),
		G: to8bit(float64(c.G) * s),
		B: to8bit(float64(c.B) * s),
	}
}

// Add returns c + o (component-wise).
func (c RGB) Add(o RGB) RGB {
	return RGB{
		R: addSat(c.R, o.R),
		G: addSat(c.G, o.G),
		B: addSat(c.B, o.B),
	}
}

// Packed returns the color as 0xRRGGBB.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Text renders the color as "R G B " with a trailing space.
func (c RGB) Text() string {
	return string(c.AppendText(make([]byte, 0, 12)))
}

// AppendText appends the Text form of c to b.
func (c RGB) AppendText(b []byte) []byte {
	b = strconv.AppendUint(b, uint64(c.R), 10)
	b = append(b, ' ')
	b = strconv.AppendUint(b, uint64(c.G), 10)
	b = append(b, ' ')
	b = strconv.AppendUint(b, uint64(c.B), 10)
	return append(b, ' ')
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// --- helpers ---

func mustPercent(channel string, v float64) {
	if !(v >= -1.0 && v <= 1.0) {
		panic(fmt.Sprintf("colors: %s percent %v outside [-1, 1]", channel, v))
	}
}

// to8bit truncates toward zero and saturates into [0,255].
func to8bit(x float64) uint8 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}
