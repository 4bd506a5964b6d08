// Package ppm reads and writes the plain-text (P3) portable pixel-map format.
package ppm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/echoflaresat/skyray/colors"
	"golang.org/x/exp/mmap"
)

const (
	Magic  = "P3"
	MaxVal = 255

	// MaxPixels caps width*height accepted by Decode.
	MaxPixels = 1 << 28
)

var (
	ErrPixelCount    = errors.New("ppm: pixel count does not match dimensions")
	ErrInvalidHeader = errors.New("ppm: invalid header")
	ErrTruncated     = errors.New("ppm: truncated pixel data")
)

// rgbSource is implemented by buffers that can be written without going
// through image.Image.At.
type rgbSource interface {
	RGBPixels() []colors.RGB
}

// Encode writes m as "P3 <w> <h> 255\n" followed by one "R G B " triplet per
// pixel in row-major order.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	width, height := b.Dx(), b.Dy()

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s %d %d %d\n", Magic, width, height, MaxVal); err != nil {
		return err
	}

	buf := make([]byte, 0, 12)
	if src, ok := m.(rgbSource); ok {
		pixels := src.RGBPixels()
		if len(pixels) != width*height {
			return fmt.Errorf("%w: %dx%d needs %d, have %d", ErrPixelCount, width, height, width*height, len(pixels))
		}
		for _, p := range pixels {
			if _, err := bw.Write(p.AppendText(buf[:0])); err != nil {
				return err
			}
		}
		return bw.Flush()
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := colors.FromStandardColor(m.At(x, y))
			if _, err := bw.Write(p.AppendText(buf[:0])); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Pixmap is a decoded pixel map with channels rescaled to 0..255.
type Pixmap struct {
	Width, Height int
	MaxVal        int
	Pixels        []colors.RGB
}

func (p *Pixmap) RGBPixels() []colors.RGB {
	return p.Pixels
}

func (p *Pixmap) ColorModel() color.Model {
	return colors.Model
}

func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return colors.Black()
	}
	return p.Pixels[y*p.Width+x]
}

// Decode reads a P3 pixel map. Header and samples may be separated by any
// whitespace, and '#' starts a comment running to the end of the line.
func Decode(r io.Reader) (*Pixmap, error) {
	tok := newTokenizer(r)

	magic, err := tok.next()
	if err != nil || magic != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidHeader, magic)
	}

	var header [3]int
	for i, name := range []string{"width", "height", "maxval"} {
		header[i], err = tok.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidHeader, name, err)
		}
	}
	width, height, maxVal := header[0], header[1], header[2]
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidHeader, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: dimensions %dx%d exceed %d pixels", ErrInvalidHeader, width, height, MaxPixels)
	}
	if maxVal <= 0 || maxVal > MaxVal {
		return nil, fmt.Errorf("%w: maxval %d", ErrInvalidHeader, maxVal)
	}

	pm := &Pixmap{
		Width:  width,
		Height: height,
		MaxVal: maxVal,
		Pixels: make([]colors.RGB, width*height),
	}
	var ch [3]uint8
	for i := range pm.Pixels {
		for c := range ch {
			v, err := tok.nextInt()
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: got %d of %d pixels", ErrTruncated, i, len(pm.Pixels))
			}
			if err != nil {
				return nil, fmt.Errorf("ppm: pixel %d: %w", i, err)
			}
			if v < 0 || v > maxVal {
				return nil, fmt.Errorf("ppm: pixel %d: sample %d outside 0..%d", i, v, maxVal)
			}
			ch[c] = uint8(v * MaxVal / maxVal)
		}
		pm.Pixels[i] = colors.RGB{R: ch[0], G: ch[1], B: ch[2]}
	}
	return pm, nil
}

// Load decodes the pixel map at path through a read-only memory map.
func Load(path string) (*Pixmap, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	pm, err := Decode(io.NewSectionReader(reader, 0, int64(reader.Len())))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pm, nil
}

type tokenizer struct {
	sc *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Split(scanTokens)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next() (string, error) {
	if t.sc.Scan() {
		return t.sc.Text(), nil
	}
	if err := t.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (t *tokenizer) nextInt() (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

// scanTokens is bufio.ScanWords with '#' comments stripped.
func scanTokens(data []byte, atEOF bool) (int, []byte, error) {
	start := 0
	for start < len(data) {
		switch c := data[start]; {
		case c == '#':
			nl := bytes.IndexByte(data[start:], '\n')
			if nl < 0 {
				if atEOF {
					return len(data), nil, nil
				}
				return start, nil, nil
			}
			start += nl + 1
		case isSpace(c):
			start++
		default:
			for i := start; i < len(data); i++ {
				if isSpace(data[i]) || data[i] == '#' {
					return i, data[start:i], nil
				}
			}
			if atEOF {
				return len(data), data[start:], nil
			}
			return start, nil, nil
		}
	}
	return start, nil, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
