package render

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/echoflaresat/skyray/colors"
	"github.com/echoflaresat/skyray/vectors"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"
)

// ShadeCacheSize bounds the number of memoized sky colors. Rows are looked up
// once each, so one entry per row is enough.
const ShadeCacheSize = 4096

// Renderer casts one ray per pixel through a Camera and shades it against a Sky.
// Rows are rendered in parallel; the result is always row-major.
type Renderer struct {
	camera  Camera
	sky     Sky
	workers int
	shades  *lru.Cache // direction.Y -> colors.RGB
}

// NewRenderer creates a renderer using up to workers goroutines.
// workers <= 0 means GOMAXPROCS.
func NewRenderer(camera Camera, sky Sky, workers int) (*Renderer, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	cache, err := lru.New(ShadeCacheSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		camera:  camera,
		sky:     sky,
		workers: workers,
		shades:  cache,
	}, nil
}

func (r *Renderer) Camera() Camera {
	return r.camera
}

func (r *Renderer) Workers() int {
	return r.workers
}

// PixelColor returns the color of pixel (col, row).
func (r *Renderer) PixelColor(col, row int) colors.RGB {
	ray := r.camera.ComputeRay(col, row)
	return r.sky.Shade(ray.Direction)
}

// cachedShade memoizes Sky.Shade, which only reads direction.Y.
func (r *Renderer) cachedShade(direction vectors.Vec3) colors.RGB {
	if v, ok := r.shades.Get(direction.Y); ok {
		return v.(colors.RGB)
	}
	c := r.sky.Shade(direction)
	r.shades.Add(direction.Y, c)
	return c
}

// renderRow shades image row y into row. The cache is consulted once, for the
// first pixel; any pixel whose direction.Y matches it reuses that color.
func (r *Renderer) renderRow(row []colors.RGB, y int) {
	if len(row) == 0 {
		return
	}
	first := r.camera.ComputeRay(0, y).Direction
	rowColor := r.cachedShade(first)
	for x := range row {
		direction := r.camera.ComputeRay(x, y).Direction
		if direction.Y == first.Y {
			row[x] = rowColor
			continue
		}
		row[x] = r.sky.Shade(direction)
	}
}

// Render fills img.Pixels with img.Width*img.Height colors in row-major order.
// img.Pixels is left untouched if ctx is cancelled before all rows finish.
func (r *Renderer) Render(ctx context.Context, img *Image) error {
	W, H := img.Width, img.Height
	pixels := make([]colors.RGB, W*H)

	var rowsDone atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for y := 0; y < H; y++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.renderRow(pixels[y*W:(y+1)*W], y)
			reportProgress(int(rowsDone.Add(1)), H)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	img.Pixels = pixels
	return nil
}

// reportProgress logs at every 10% of completed rows.
func reportProgress(done, total int) {
	if done*10/total == (done-1)*10/total {
		return
	}
	slog.Debug("render progress", "percent", done*100/total, "rows", done, "of", total)
}
