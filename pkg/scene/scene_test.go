package scene

import (
	"bufio"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{"cornell-box", "cornell-box"},
		{"Cornell-Smoke", "cornell-smoke"},
		{" final ", "final"},
		{"1", "random-spheres"},
		{"6", "cornell-box"},
		{"10", "metal-mirror"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			info, err := Lookup(tt.mode)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", tt.mode, err)
			}
			if info.Name != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.mode, info.Name, tt.want)
			}
		})
	}

	for _, mode := range []string{"", "0", "11", "-3", "teapot"} {
		if _, err := Lookup(mode); !errors.Is(err, core.ErrInvalidConfiguration) {
			t.Errorf("Lookup(%q): expected ErrInvalidConfiguration, got %v", mode, err)
		}
	}
}

func TestListScenesIDs(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(SceneNames()) {
		t.Fatalf("ListScenes and SceneNames disagree: %d vs %d", len(scenes), len(SceneNames()))
	}
	for i, info := range scenes {
		if info.ID != i+1 {
			t.Errorf("Scene %s has id %d, want %d", info.Name, info.ID, i+1)
		}
		if info.Description == "" {
			t.Errorf("Scene %s has no description", info.Name)
		}
	}
}

func TestBuildAllScenes(t *testing.T) {
	assets := loaders.DirSource{Root: t.TempDir()} // empty, so the earth map is missing

	for _, info := range ListScenes() {
		t.Run(info.Name, func(t *testing.T) {
			var logs bytes.Buffer
			opts := Options{Seed: 1, Assets: assets, Logger: slog.New(slog.NewTextHandler(&logs, nil))}

			s, err := Build(context.Background(), info.Name, opts)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if s.Name != info.Name {
				t.Errorf("Expected scene name %s, got %s", info.Name, s.Name)
			}
			if s.Camera == nil || s.World == nil || s.Background == nil {
				t.Fatalf("Incomplete scene %+v", s)
			}
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Invalid default size %dx%d", s.Width, s.Height)
			}
			if err := s.SamplingConfig.Validate(); err != nil {
				t.Errorf("Invalid default sampling: %v", err)
			}
			if _, ok := s.World.BoundingBox(0, 1); !ok {
				t.Error("Expected a bounded world")
			}

			// The earth map is the only external asset and is reported once per build
			wantWarnings := 0
			if info.Name == "earth" || info.Name == "final" {
				wantWarnings = 1
			}
			if got := strings.Count(logs.String(), "image texture unavailable"); got != wantWarnings {
				t.Errorf("Expected %d missing asset warnings, got %d:\n%s", wantWarnings, got, logs.String())
			}
		})
	}
}

func TestBuildIsReproducible(t *testing.T) {
	build := func(seed uint64) []byte {
		s, err := Build(context.Background(), "random-spheres", Options{Seed: seed})
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Resize(16, 9); err != nil {
			t.Fatal(err)
		}
		s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 2, MaxDepth: 4}

		canvas, _, err := s.NewRaytracer().Render(context.Background(), renderer.RenderOptions{Seed: 3}, nil)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := canvas.WritePPM(&buf); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}

	if !bytes.Equal(build(5), build(5)) {
		t.Error("Expected the same seed to produce the same layout and image")
	}
}

func TestMissingAssetLoggedOnce(t *testing.T) {
	var logs bytes.Buffer
	b := newBuilder(context.Background(), Options{
		Assets: loaders.DirSource{Root: t.TempDir()},
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})

	first := b.imageTexture("nope.png")
	second := b.imageTexture("nope.png")
	if first != second {
		t.Error("Expected the texture to be cached")
	}
	if got := first.Value(0.5, 0.5, core.Vec3{}); got != (core.Vec3{}) {
		t.Errorf("Expected a black texture, got %v", got)
	}
	if got := strings.Count(logs.String(), "image texture unavailable"); got != 1 {
		t.Errorf("Expected one warning, got %d:\n%s", got, logs.String())
	}
}

func TestImageTextureFromBucket(t *testing.T) {
	ctx := context.Background()
	src, err := loaders.OpenBucketSource(ctx, "mem://")
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := src.Bucket.WriteAll(ctx, EarthTexture, buf.Bytes(), nil); err != nil {
		t.Fatal(err)
	}

	b := newBuilder(ctx, Options{Assets: src})
	if got := b.imageTexture(EarthTexture).Value(0.5, 0.5, core.Vec3{}); got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected red texel, got %v", got)
	}
}

// renderScene renders s at the given size and returns the canvas
func renderScene(t *testing.T, s *Scene, width, height, spp, depth int) *renderer.Canvas {
	t.Helper()
	if err := s.Resize(width, height); err != nil {
		t.Fatal(err)
	}
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: spp, MaxDepth: depth}
	canvas, _, err := s.NewRaytracer().Render(context.Background(), renderer.RenderOptions{Seed: 42}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return canvas
}

func TestSingleSphereOnChecker(t *testing.T) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(groundChecker())),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
	)
	camera, err := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		FocusDistance: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	rt := renderer.NewRaytracer(world, camera, integrator.NewSkyBackground(), 200, 112)
	rt.SetSamplingConfig(renderer.SamplingConfig{SamplesPerPixel: 8, MaxDepth: 8})
	canvas, _, err := rt.Render(context.Background(), renderer.RenderOptions{Seed: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := canvas.WritePPM(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("P3\n200 112\n255\n")) {
		t.Fatalf("Unexpected header %q", buf.Bytes()[:16])
	}

	lines := 0
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		lines++
	}
	if lines-3 != 22400 {
		t.Errorf("Expected 22400 pixel lines, got %d", lines-3)
	}
}

func TestMetalMirrorCenterSeesSky(t *testing.T) {
	s, err := Build(context.Background(), "metal-mirror", Options{})
	if err != nil {
		t.Fatal(err)
	}
	canvas := renderScene(t, s, 61, 61, 16, 20)

	// The centre pixel looks through the gap between the mirrors
	center := canvas.Pixels[30*canvas.Width+30]
	r, g, b := canvas.ColorBytes(center)

	sky := s.Background.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0))
	wr, wg, wb := canvas.ColorBytes(sky.Multiply(float64(canvas.SamplesPerPixel)))
	for _, c := range [][2]uint8{{r, wr}, {g, wg}, {b, wb}} {
		if diff := int(c[0]) - int(c[1]); diff < -1 || diff > 1 {
			t.Errorf("Centre pixel (%d, %d, %d), want sky (%d, %d, %d)", r, g, b, wr, wg, wb)
			break
		}
	}
}

func TestCornellBoxCeilingLight(t *testing.T) {
	s, err := Build(context.Background(), "cornell-box", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Background.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0)); got != (core.Vec3{}) {
		t.Errorf("Expected a black background, got %v", got)
	}

	// Indirect light off the walls needs a few hundred samples to reach most pixels
	canvas := renderScene(t, s, 40, 40, 256, 6)

	brightestY, brightest := -1, 0.0
	nonBlack := 0
	for y := 0; y < canvas.Height; y++ {
		for x := 0; x < canvas.Width; x++ {
			p := canvas.Pixels[y*canvas.Width+x]
			if sum := p.X + p.Y + p.Z; sum > brightest {
				brightest, brightestY = sum, y
			}
			if r, g, b := canvas.ColorBytes(p); r > 0 || g > 0 || b > 0 {
				nonBlack++
			}
		}
	}

	if brightestY < canvas.Height*3/4 {
		t.Errorf("Expected the brightest pixel near the ceiling, found it in row %d", brightestY)
	}
	if r, _, _ := canvas.ColorBytes(core.NewVec3(brightest, brightest, brightest).Divide(3)); r != 255 {
		t.Errorf("Expected the light to saturate, brightest value %f", brightest)
	}
	if nonBlack < canvas.Width*canvas.Height/3 {
		t.Errorf("Expected most of the box interior to be lit, only %d pixels are not black", nonBlack)
	}
}

func TestCornellSmokeLeavesClearRaysUnchanged(t *testing.T) {
	box, err := Build(context.Background(), "cornell-box", Options{})
	if err != nil {
		t.Fatal(err)
	}
	smoke, err := Build(context.Background(), "cornell-smoke", Options{})
	if err != nil {
		t.Fatal(err)
	}

	// Passes above both blocks to the back wall
	from := core.NewVec3(278, 278, -800)
	ray := core.NewRay(from, core.NewVec3(50, 500, 555).Subtract(from), 0)

	var boxHit, smokeHit core.HitRecord
	if !box.World.Hit(ray, 1e-3, core.Infinity, &boxHit, core.NewRandomSampler(1)) {
		t.Fatal("Expected the ray to hit the box scene")
	}
	if !smoke.World.Hit(ray, 1e-3, core.Infinity, &smokeHit, core.NewRandomSampler(1)) {
		t.Fatal("Expected the ray to hit the smoke scene")
	}
	if boxHit.T != smokeHit.T || boxHit.Point != smokeHit.Point {
		t.Errorf("Clear ray changed by the smoke: box t=%f, smoke t=%f", boxHit.T, smokeHit.T)
	}
}

func TestMotionBlurStreak(t *testing.T) {
	s, err := Build(context.Background(), "motion-blur", Options{})
	if err != nil {
		t.Fatal(err)
	}
	canvas := renderScene(t, s, 60, 30, 32, 4)

	// Sky blue is exactly 1 in every direction, so any blue below 255 means the sphere was seen
	row := 14
	covered := 0
	for x := 0; x < canvas.Width; x++ {
		_, _, b := canvas.ColorBytes(canvas.Pixels[row*canvas.Width+x])
		switch {
		case x < 14 || x > 45:
			if b != 255 {
				t.Errorf("Column %d is outside the streak but has blue %d", x, b)
			}
		case b < 250:
			covered++
		}
	}

	// A static sphere of radius 0.2 spans about 6 columns; the streak about 19
	if covered < 10 {
		t.Errorf("Expected a streak at least 10 columns wide, got %d", covered)
	}
}
