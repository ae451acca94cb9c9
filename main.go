package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/logging"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "pathtracer: %v\n", err)
		os.Exit(1)
	}
}

// run renders one scene. The image goes to stdout unless a bucket is configured;
// logs, progress and the stats report go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Parse(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printScenes(stderr)
		}
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger, renderID := logging.WithRenderID(logging.New(stderr, level))

	assets, err := loaders.NewSource(ctx, cfg.Assets)
	if err != nil {
		return err
	}
	if c, ok := assets.(io.Closer); ok {
		defer c.Close()
	}

	s, err := scene.Build(ctx, cfg.Scene, scene.Options{Seed: cfg.Seed, Assets: assets, Logger: logger})
	if err != nil {
		return err
	}
	if err := cfg.Apply(s); err != nil {
		return err
	}

	var progress renderer.ProgressFunc
	if cfg.Progress {
		progress = logging.NewProgressBar(stderr, 40)
	}

	rt := s.NewRaytracer()
	canvas, stats, err := rt.Render(ctx, renderer.RenderOptions{
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
		Logger:  logger.With("scene", s.Name),
	}, progress)
	if err != nil {
		return err
	}
	stats.RenderID = renderID

	target := cfg.Target()
	if err := output.Write(ctx, target, stdout, canvas); err != nil {
		return err
	}
	logger.Info("image written", "target", target, "format", target.Format())

	if cfg.Stats {
		return stats.WriteJSON(stderr)
	}
	return nil
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "\nScenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %2d  %-20s %s\n", info.ID, info.Name, info.Description)
	}
}
