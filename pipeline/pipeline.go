// Package pipeline wires the camera, renderer and image writer into one
// deterministic batch: build the camera, shade every pixel, save the buffer.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/echoflaresat/skyray/raster"
	"github.com/echoflaresat/skyray/render"
)

const (
	DefaultAspectRatio    = 16.0 / 9.0
	DefaultImageWidth     = 400
	DefaultViewportHeight = 2.0
	DefaultOutputPath     = "./image.ppm"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything a render needs. Workers <= 0 means GOMAXPROCS.
type Config struct {
	AspectRatio    float64
	ImageWidth     int
	ViewportHeight float64
	OutputPath     string
	Workers        int
}

func DefaultConfig() Config {
	return Config{
		AspectRatio:    DefaultAspectRatio,
		ImageWidth:     DefaultImageWidth,
		ViewportHeight: DefaultViewportHeight,
		OutputPath:     DefaultOutputPath,
	}
}

// Validate rejects configurations that would produce an empty image or
// divide by zero when deriving the camera.
func (c Config) Validate() error {
	if !(c.AspectRatio > 0) {
		return fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidConfig, c.AspectRatio)
	}
	if c.ImageWidth < 1 {
		return fmt.Errorf("%w: image width %d must be at least 1", ErrInvalidConfig, c.ImageWidth)
	}
	if !(c.ViewportHeight > 0) {
		return fmt.Errorf("%w: viewport height %v must be positive", ErrInvalidConfig, c.ViewportHeight)
	}
	if h := render.NewImage(c.AspectRatio, c.ImageWidth).Height; h < 1 {
		return fmt.Errorf("%w: width %d at aspect %v gives height %d", ErrInvalidConfig, c.ImageWidth, c.AspectRatio, h)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: empty output path", ErrInvalidConfig)
	}
	return nil
}

// Render builds the camera for cfg and returns the filled image buffer.
func Render(ctx context.Context, cfg Config) (*render.Image, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	img := render.NewImage(cfg.AspectRatio, cfg.ImageWidth)
	camera := render.NewCamera(cfg.ViewportHeight, img)
	renderer, err := render.NewRenderer(camera, render.DefaultSky, cfg.Workers)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	slog.Info("rendering",
		"width", img.Width,
		"height", img.Height,
		"viewport_width", camera.ViewportWidth,
		"viewport_height", camera.ViewportHeight,
		"workers", renderer.Workers())
	if err := renderer.Render(ctx, img); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	slog.Info("render complete", "pixels", len(img.Pixels), "elapsed", time.Since(start))
	return img, nil
}

// Run renders cfg and writes the result to cfg.OutputPath.
func Run(ctx context.Context, cfg Config) error {
	img, err := Render(ctx, cfg)
	if err != nil {
		return err
	}
	if err := raster.Save(cfg.OutputPath, img); err != nil {
		return fmt.Errorf("save %s: %w", cfg.OutputPath, err)
	}
	slog.Info("saved", "path", cfg.OutputPath)
	return nil
}
