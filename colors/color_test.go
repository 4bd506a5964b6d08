package colors

import (
	"image/color"
	"math"
	"testing"
)

func TestFromPacked(t *testing.T) {
	p := FromPacked(0xA0FFB0)
	if p.R != 0xA0 || p.G != 0xFF || p.B != 0xB0 {
		t.Fatalf("Expected a0/ff/b0, got %v", p)
	}
	if got := FromPacked(0xFF123456); got != (RGB{0x12, 0x34, 0x56}) {
		t.Errorf("high byte leaked into channels: %v", got)
	}
	if got := p.Packed(); got != 0xA0FFB0 {
		t.Errorf("Packed() = %#x", got)
	}
}

func TestFromPercent(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  float64
		expected RGB
	}{
		{"white", 1, 1, 1, RGB{255, 255, 255}},
		{"black", 0, 0, 0, RGB{0, 0, 0}},
		{"sky blue", 0.5, 0.7, 1.0, RGB{127, 178, 255}},
		{"negative saturates to zero", -1, -0.5, 0.2, RGB{0, 0, 51}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromPercent(tt.r, tt.g, tt.b); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFromPercentOutOfRangePanics(t *testing.T) {
	cases := [][3]float64{
		{1.01, 0, 0},
		{0, -1.5, 0},
		{0, 0, math.NaN()},
	}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("FromPercent(%v) did not panic", c)
				}
			}()
			FromPercent(c[0], c[1], c[2])
		}()
	}
}

func TestScale(t *testing.T) {
	c := RGB{R: 127, G: 178, B: 255}
	tests := []struct {
		name     string
		factor   float64
		expected RGB
	}{
		{"identity", 1, c},
		{"truncates", 0.5, RGB{63, 89, 127}},
		{"zero", 0, RGB{}},
		{"saturates high", 2, RGB{254, 255, 255}},
		{"saturates low", -1, RGB{}},
		{"nan", math.NaN(), RGB{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Scale(tt.factor); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	if got := (RGB{1, 2, 3}).Add(RGB{10, 20, 30}); got != (RGB{11, 22, 33}) {
		t.Errorf("Expected (11,22,33), got %v", got)
	}
	if got := (RGB{200, 255, 0}).Add(RGB{100, 1, 0}); got != (RGB{255, 255, 0}) {
		t.Errorf("Add did not saturate: %v", got)
	}
}

func TestText(t *testing.T) {
	if got := (RGB{0, 17, 255}).Text(); got != "0 17 255 " {
		t.Errorf("Text() = %q", got)
	}
	b := White().AppendText([]byte("x"))
	if string(b) != "x255 255 255 " {
		t.Errorf("AppendText = %q", b)
	}
}

func TestStandardColorConversion(t *testing.T) {
	c := RGB{R: 10, G: 128, B: 255}
	if got := FromStandardColor(color.NRGBA{R: 10, G: 128, B: 255, A: 255}); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if got := Model.Convert(c); got != c {
		t.Errorf("Model.Convert round trip = %v", got)
	}
	_, _, _, a := c.RGBA()
	if a != 0xFFFF {
		t.Errorf("Expected opaque alpha, got %#x", a)
	}
}
