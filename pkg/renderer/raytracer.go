package renderer

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate rejects sample counts and depths the estimator cannot use
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return core.InvalidConfigf("samples per pixel %d must be positive", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return core.InvalidConfigf("max depth %d must not be negative", c.MaxDepth)
	}
	return nil
}

// RenderOptions controls how a frame is scheduled
type RenderOptions struct {
	Seed             uint64        // Master seed; rows derive their samplers from it
	Workers          int           // Concurrent rows; 0 uses runtime.NumCPU()
	ProgressInterval time.Duration // 0 uses DefaultProgressInterval
	Logger           *slog.Logger  // nil discards log output
}

// Raytracer renders a world through a camera into a Canvas
type Raytracer struct {
	world      core.Hittable
	camera     *Camera
	background integrator.Background
	integrator integrator.Integrator
	width      int
	height     int
	config     SamplingConfig
}

// NewRaytracer creates a new raytracer using unidirectional path tracing
func NewRaytracer(world core.Hittable, camera *Camera, background integrator.Background, width, height int) *Raytracer {
	config := DefaultSamplingConfig()
	return &Raytracer{
		world:      world,
		camera:     camera,
		background: background,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		width:      width,
		height:     height,
		config:     config,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
	rt.integrator = integrator.NewPathTracingIntegrator(config.MaxDepth)
}

// SetIntegrator replaces the radiance estimator
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// SamplingConfig returns the current sampling configuration
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.config
}

// SamplePixel traces SamplesPerPixel jittered camera rays through pixel (x, y)
// and returns the sum of their radiance. Row 0 is the bottom of the image.
func (rt *Raytracer) SamplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	// A one pixel wide or tall image maps its only column or row to 0
	du := float64(max(rt.width-1, 1))
	dv := float64(max(rt.height-1, 1))

	colorAccum := core.Vec3{}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		s := (float64(x) + sampler.Get1D()) / du
		t := (float64(y) + sampler.Get1D()) / dv

		ray := rt.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, rt.background, sampler))
	}
	return colorAccum
}

// Render renders the whole frame and returns the filled canvas
func (rt *Raytracer) Render(ctx context.Context, opts RenderOptions, progress ProgressFunc) (*Canvas, RenderStats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	canvas, err := NewCanvas(rt.width, rt.height, rt.config.SamplesPerPixel)
	if err != nil {
		return nil, RenderStats{}, err
	}
	canvas.Seed = opts.Seed
	canvas.Workers = opts.Workers
	canvas.ProgressInterval = opts.ProgressInterval

	workers := NewWorkerPool(opts.Workers, opts.Seed).GetNumWorkers()
	logger.Info("render started",
		"width", rt.width, "height", rt.height,
		"spp", rt.config.SamplesPerPixel, "max_depth", rt.config.MaxDepth,
		"workers", workers, "seed", opts.Seed)

	start := time.Now()
	if err := canvas.Render(ctx, rt.SamplePixel, progress); err != nil {
		return nil, RenderStats{}, err
	}
	stats := newRenderStats(canvas, rt.config, workers, time.Since(start))

	logger.Info("render finished",
		"duration", stats.Duration().Round(time.Millisecond),
		"samples", stats.TotalSamples,
		"samples_per_second", int64(stats.SamplesPerSecond))
	return canvas, stats, nil
}
