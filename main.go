package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/echoflaresat/skyray/pipeline"
	"github.com/echoflaresat/skyray/raster"
	"github.com/spf13/cobra"
)

type options struct {
	aspect         string
	width          int
	viewportHeight float64
	out            string
	workers        int
	verbose        bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "skyray",
		Short: "Render a sky-gradient background with a pinhole camera",
		Long: `skyray casts one ray per pixel through a pinhole camera and shades it
with a white to sky-blue vertical gradient. The output format follows the
extension of --out (.ppm, .png, .jpg, .tif).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			aspect, err := parseAspect(opts.aspect)
			if err != nil {
				return err
			}
			cfg := pipeline.Config{
				AspectRatio:    aspect,
				ImageWidth:     opts.width,
				ViewportHeight: opts.viewportHeight,
				OutputPath:     opts.out,
				Workers:        opts.workers,
			}
			return pipeline.Run(cmd.Context(), cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.aspect, "aspect", "16:9", "Aspect ratio as W:H or a decimal number")
	flags.IntVarP(&opts.width, "width", "w", pipeline.DefaultImageWidth, "Image width in pixels")
	flags.Float64Var(&opts.viewportHeight, "viewport-height", pipeline.DefaultViewportHeight, "Camera viewport height")
	flags.StringVarP(&opts.out, "out", "o", pipeline.DefaultOutputPath, "Output image path")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "Rows rendered in parallel (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log render progress")

	rootCmd.AddCommand(newConvertCmd())
	return rootCmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert an image between ppm, png, jpg and tif",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := raster.Load(args[0])
			if err != nil {
				return err
			}
			if err := raster.Save(args[1], img); err != nil {
				return err
			}
			slog.Info("converted", "from", args[0], "to", args[1])
			return nil
		},
	}
}

// parseAspect accepts "16:9" or "1.7777".
func parseAspect(s string) (float64, error) {
	if w, h, ok := strings.Cut(s, ":"); ok {
		wf, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid aspect width %q: %w", w, err)
		}
		hf, err := strconv.ParseFloat(h, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid aspect height %q: %w", h, err)
		}
		if hf == 0 {
			return 0, fmt.Errorf("invalid aspect %q: zero height", s)
		}
		return wf / hf, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid aspect %q: %w", s, err)
	}
	return v, nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
