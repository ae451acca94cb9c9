package scene

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// EarthTexture is the asset name of the equirectangular earth map
const EarthTexture = "earthmap.jpg"

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          core.Hittable // Root of the scene graph, usually a BVH
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Background     integrator.Background
	Width          int
	Height         int
	SamplingConfig renderer.SamplingConfig
}

// Options controls how scenes are built
type Options struct {
	Seed   uint64         // Seeds random layouts and noise tables
	Assets loaders.Source // Image textures; nil reads from the working directory
	Logger *slog.Logger   // nil discards log output
}

// Build constructs the scene named by mode. mode is a scene name such as
// "cornell-box" or its numeric id.
func Build(ctx context.Context, mode string, opts Options) (*Scene, error) {
	info, err := Lookup(mode)
	if err != nil {
		return nil, err
	}

	b := newBuilder(ctx, opts)
	s, err := info.build(b)
	if err != nil {
		return nil, errors.Wrapf(err, "build scene %s", info.Name)
	}
	s.Name = info.Name

	b.logger.Debug("scene built", "scene", s.Name, "width", s.Width, "height", s.Height,
		"spp", s.SamplingConfig.SamplesPerPixel, "max_depth", s.SamplingConfig.MaxDepth)
	return s, nil
}

// Resize changes the output resolution and rebuilds the camera for the new aspect ratio
func (s *Scene) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return core.InvalidConfigf("image size %dx%d must be positive", width, height)
	}
	config := s.CameraConfig
	config.AspectRatio = float64(width) / float64(height)
	camera, err := renderer.NewCamera(config)
	if err != nil {
		return err
	}
	s.Camera, s.CameraConfig = camera, config
	s.Width, s.Height = width, height
	return nil
}

// NewRaytracer returns a raytracer for the scene with its sampling configuration
func (s *Scene) NewRaytracer() *renderer.Raytracer {
	rt := renderer.NewRaytracer(s.World, s.Camera, s.Background, s.Width, s.Height)
	rt.SetSamplingConfig(s.SamplingConfig)
	return rt
}

// builder carries per-build state shared by the scene constructors
type builder struct {
	ctx     context.Context
	assets  loaders.Source
	logger  *slog.Logger
	sampler core.Sampler
	images  map[string]core.Texture
}

func newBuilder(ctx context.Context, opts Options) *builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	assets := opts.Assets
	if assets == nil {
		assets = loaders.DirSource{}
	}
	return &builder{
		ctx:     ctx,
		assets:  assets,
		logger:  logger,
		sampler: core.NewRandomSampler(opts.Seed),
		images:  make(map[string]core.Texture),
	}
}

// imageTexture loads the named image once. An image that cannot be loaded
// becomes a black texture and is reported once.
func (b *builder) imageTexture(name string) core.Texture {
	if tex, ok := b.images[name]; ok {
		return tex
	}

	var tex *material.ImageTexture
	data, err := loaders.Load(b.ctx, b.assets, name)
	if err != nil {
		b.logger.Warn("image texture unavailable, rendering it black", "asset", name, "error", err)
		tex = material.NewImageTexture(0, 0, nil)
	} else {
		tex = material.NewImageTexture(data.Width, data.Height, data.Pixels)
	}
	b.images[name] = tex
	return tex
}

// newCamera builds a camera whose shutter is open over [0, 1]
func newCamera(config renderer.CameraConfig) (*renderer.Camera, renderer.CameraConfig, error) {
	config.Time0, config.Time1 = 0, 1
	camera, err := renderer.NewCamera(config)
	return camera, config, err
}

// finish fills in the camera and wraps the objects in a BVH
func finish(s *Scene, objects []core.Hittable, config renderer.CameraConfig) (*Scene, error) {
	config.AspectRatio = float64(s.Width) / float64(s.Height)
	camera, config, err := newCamera(config)
	if err != nil {
		return nil, err
	}
	s.Camera, s.CameraConfig = camera, config

	if len(objects) == 0 {
		s.World = geometry.NewHittableList()
		return s, nil
	}
	bvh, err := geometry.NewBVH(objects, config.Time0, config.Time1)
	if err != nil {
		return nil, err
	}
	s.World = bvh
	return s, nil
}
