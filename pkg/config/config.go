// Package config gathers render settings from scene defaults, a config file and flags.
package config

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/logging"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Render holds every setting of one render. Zero sizes, sample counts and
// depths mean "use the scene default".
type Render struct {
	Scene           string `yaml:"scene" json:"scene"`
	Width           int    `yaml:"width" json:"width"`
	Height          int    `yaml:"height" json:"height"`
	SamplesPerPixel int    `yaml:"samples_per_pixel" json:"samples_per_pixel"`
	MaxDepth        int    `yaml:"max_depth" json:"max_depth"`
	Seed            uint64 `yaml:"seed" json:"seed"`
	Workers         int    `yaml:"workers" json:"workers"` // 0 uses every CPU

	Bucket string `yaml:"bucket" json:"bucket"` // Output bucket URL; empty writes the PPM to stdout
	Key    string `yaml:"key" json:"key"`       // Output key; a .png suffix selects PNG
	Assets string `yaml:"assets" json:"assets"` // Texture directory or bucket URL

	Progress bool   `yaml:"progress" json:"progress"`   // Draw a progress bar on stderr
	Stats    bool   `yaml:"stats" json:"stats"`         // Print a JSON render report on stderr
	LogLevel string `yaml:"log_level" json:"log_level"` // debug, info, warn or error
}

// Default returns the settings used when nothing is configured
func Default() *Render {
	return &Render{
		Scene:    "random-spheres",
		Seed:     1,
		Progress: true,
		LogLevel: "info",
	}
}

// Parse reads flags from args. Values come from, lowest priority first:
// Default, the file named by -config, then flags present in args.
// A request for help returns flag.ErrHelp.
func Parse(args []string, usage io.Writer) (*Render, error) {
	r := Default()
	var path string

	fs := r.flagSet(&path, usage)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, core.InvalidConfigf("unexpected arguments %q", fs.Args())
	}

	if path != "" {
		if err := r.LoadFile(path); err != nil {
			return nil, err
		}
		// Flags given on the command line win over the file, so parse them again
		// with the file values as defaults.
		fs = r.flagSet(&path, usage)
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// flagSet binds flags to r using the current values as defaults
func (r *Render) flagSet(configPath *string, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVar(configPath, "config", *configPath, "YAML (.yaml, .yml) or JSON (.json) file with render settings")
	fs.StringVar(&r.Scene, "scene", r.Scene, "Scene name or id: "+strings.Join(scene.SceneNames(), ", "))
	fs.IntVar(&r.Width, "width", r.Width, "Image width in pixels (0 uses the scene default)")
	fs.IntVar(&r.Height, "height", r.Height, "Image height in pixels (0 uses the scene default)")
	fs.IntVar(&r.SamplesPerPixel, "spp", r.SamplesPerPixel, "Samples per pixel (0 uses the scene default)")
	fs.IntVar(&r.MaxDepth, "depth", r.MaxDepth, "Maximum ray bounces (0 uses the scene default)")
	fs.Uint64Var(&r.Seed, "seed", r.Seed, "Master random seed")
	fs.IntVar(&r.Workers, "workers", r.Workers, "Rows rendered in parallel (0 uses every CPU)")
	fs.StringVar(&r.Bucket, "bucket", r.Bucket, "Output bucket URL such as file:///tmp/renders or gs://bucket (empty writes PPM to stdout)")
	fs.StringVar(&r.Key, "key", r.Key, "Output key inside the bucket; a .png suffix writes PNG")
	fs.StringVar(&r.Assets, "assets", r.Assets, "Texture directory or bucket URL")
	fs.BoolVar(&r.Progress, "progress", r.Progress, "Show a progress bar on stderr")
	fs.BoolVar(&r.Stats, "stats", r.Stats, "Print a JSON render report on stderr")
	fs.StringVar(&r.LogLevel, "log-level", r.LogLevel, "Log level: debug, info, warn or error")
	return fs
}

// LoadFile merges settings from a YAML or JSON file into r.
// Keys missing from the file keep their current values.
func (r *Render) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, r)
	case ".json":
		err = json.Unmarshal(data, r)
	default:
		return core.InvalidConfigf("config file %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return errors.Wrapf(core.ErrInvalidConfiguration, "config file %s: %v", path, err)
	}
	return nil
}

// Validate rejects settings that cannot describe a render
func (r *Render) Validate() error {
	if _, err := scene.Lookup(r.Scene); err != nil {
		return err
	}
	switch {
	case r.Width < 0 || r.Height < 0:
		return core.InvalidConfigf("image size %dx%d must not be negative", r.Width, r.Height)
	case r.SamplesPerPixel < 0:
		return core.InvalidConfigf("samples per pixel %d must not be negative", r.SamplesPerPixel)
	case r.MaxDepth < 0:
		return core.InvalidConfigf("max depth %d must not be negative", r.MaxDepth)
	case r.Workers < 0:
		return core.InvalidConfigf("workers %d must not be negative", r.Workers)
	}
	if _, err := r.Level(); err != nil {
		return err
	}
	return r.Target().Validate()
}

// Level returns the parsed log level
func (r *Render) Level() (slog.Level, error) {
	level, err := logging.ParseLevel(r.LogLevel)
	if err != nil {
		return level, core.InvalidConfigf("log level %q: %v", r.LogLevel, err)
	}
	return level, nil
}

// Target returns the output destination
func (r *Render) Target() output.Target {
	return output.Target{Bucket: r.Bucket, Key: r.Key}
}

// Apply overrides the scene defaults with every non-zero setting.
// Changing only one of width and height keeps the scene's aspect ratio.
func (r *Render) Apply(s *scene.Scene) error {
	width, height := r.Width, r.Height
	switch {
	case width > 0 && height == 0:
		height = max(1, int(float64(width)*float64(s.Height)/float64(s.Width)))
	case height > 0 && width == 0:
		width = max(1, int(float64(height)*float64(s.Width)/float64(s.Height)))
	}
	if width > 0 && (width != s.Width || height != s.Height) {
		if err := s.Resize(width, height); err != nil {
			return err
		}
	}

	if r.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = r.SamplesPerPixel
	}
	if r.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = r.MaxDepth
	}
	return s.SamplingConfig.Validate()
}
