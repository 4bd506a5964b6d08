// Package raster persists rendered images in a format chosen by file extension.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/echoflaresat/skyray/ppm"
	"github.com/echoflaresat/tiff"
	xtiff "golang.org/x/image/tiff"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Save encodes img into path. The extension selects the encoder:
// .ppm (plain text P3), .png, .jpg/.jpeg or .tif/.tiff. A file whose
// encoding fails is removed.
func Save(path string, img image.Image) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return ppm.Encode, nil
	case ".png":
		return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
		}, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return xtiff.Encode(w, img, &xtiff.Options{Compression: xtiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Load reads an image from path. Pixel maps are decoded by package ppm;
// anything else is tried as TIFF first, then with the registered image codecs.
func Load(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".ppm") {
		pm, err := ppm.Load(path)
		if err != nil {
			return nil, err
		}
		return pm, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err == nil {
		return img, nil
	}
	slog.Debug("not a TIFF, trying image codecs", "path", path, "error", err)

	// fallback to image codecs
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err = image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
