package material

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TestImageTextureValue tests basic texture sampling
func TestImageTextureValue(t *testing.T) {
	// Create a 2x2 checkerboard pattern
	// Layout:
	//   white black
	//   black white
	data := []byte{
		255, 255, 255, 0, 0, 0, // Row 0 (top in image coords)
		0, 0, 0, 255, 255, 255, // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, data)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		// V=0 is the bottom row of the image after the flip
		{"bottom-left", 0.1, 0.1, black},
		{"bottom-right", 0.9, 0.1, white},
		{"top-left", 0.1, 0.9, white},
		{"top-right", 0.9, 0.9, black},
		// u=1 and v=0 land exactly on the far edge and are clamped to the last texel
		{"far corner", 1.0, 0.0, white},
		{"origin", 0.0, 1.0, white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Value(tt.u, tt.v, core.Vec3{}); got != tt.expected {
				t.Errorf("UV(%v,%v): expected %v, got %v", tt.u, tt.v, tt.expected, got)
			}
		})
	}
}

// TestImageTextureClamping tests that UVs outside [0,1] clamp to the border
func TestImageTextureClamping(t *testing.T) {
	// 2x1: red on the left, blue on the right
	texture := NewImageTexture(2, 1, []byte{255, 0, 0, 0, 0, 255})
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)

	tests := []struct {
		u, v     float64
		expected core.Vec3
	}{
		{-0.5, 0.5, red},
		{-10, -10, red},
		{1.5, 0.5, blue},
		{2.3, 3.7, blue},
	}

	for _, tt := range tests {
		if got := texture.Value(tt.u, tt.v, core.Vec3{}); got != tt.expected {
			t.Errorf("UV(%v,%v): expected %v, got %v", tt.u, tt.v, tt.expected, got)
		}
	}
}

// TestImageTextureScalesBytes tests that channels are divided by 255
func TestImageTextureScalesBytes(t *testing.T) {
	texture := NewImageTexture(1, 1, []byte{51, 102, 204})
	want := core.NewVec3(0.2, 0.4, 0.8)
	if diff := cmp.Diff(want, texture.Value(0.5, 0.5, core.Vec3{}), approx); diff != "" {
		t.Errorf("Texel mismatch (-want +got):\n%s", diff)
	}
}

// TestImageTextureEmptyIsBlack tests that a texture without data renders black
func TestImageTextureEmptyIsBlack(t *testing.T) {
	textures := map[string]*ImageTexture{
		"nil data":   NewImageTexture(0, 0, nil),
		"zero size":  NewImageTexture(0, 4, []byte{1, 2, 3}),
		"short data": NewImageTexture(2, 2, []byte{255, 255, 255}),
	}
	for name, texture := range textures {
		if got := texture.Value(0.5, 0.5, core.Vec3{}); got != (core.Vec3{}) {
			t.Errorf("%s: expected black, got %v", name, got)
		}
	}
}

// TestSolidColor tests the solid color texture
func TestSolidColor(t *testing.T) {
	color := core.NewVec3(0.7, 0.3, 0.1)
	solid := NewSolidColor(color)

	testCases := []struct {
		u, v  float64
		point core.Vec3
	}{
		{0, 0, core.NewVec3(0, 0, 0)},
		{1, 1, core.NewVec3(5, 3, -2)},
		{0.5, 0.5, core.NewVec3(-1, -1, -1)},
	}

	for _, tc := range testCases {
		if result := solid.Value(tc.u, tc.v, tc.point); result != color {
			t.Errorf("SolidColor at UV(%v,%v), Point%v: expected %v, got %v", tc.u, tc.v, tc.point, color, result)
		}
	}
}

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(0.2, 0.3, 0.1)
	odd := core.NewVec3(0.9, 0.9, 0.9)
	checker := NewCheckerColors(even, odd)

	// sin(10·0.1) > 0 on every axis
	if got := checker.Value(0, 0, core.NewVec3(0.1, 0.1, 0.1)); got != even {
		t.Errorf("Expected even color, got %v", got)
	}
	// Flipping one axis flips the sign of the product
	if got := checker.Value(0, 0, core.NewVec3(-0.1, 0.1, 0.1)); got != odd {
		t.Errorf("Expected odd color, got %v", got)
	}
	// Two flips cancel
	if got := checker.Value(0, 0, core.NewVec3(-0.1, -0.1, 0.1)); got != even {
		t.Errorf("Expected even color, got %v", got)
	}

	// Nested textures are evaluated with the same arguments
	nested := NewCheckerTexture(checker, NewSolidColor(core.NewVec3(0, 0, 1)))
	if got := nested.Value(0, 0, core.NewVec3(0.1, 0.1, 0.1)); got != even {
		t.Errorf("Expected nested even color, got %v", got)
	}
}

func TestPerlin_Deterministic(t *testing.T) {
	a := NewPerlin(core.NewRandomSampler(17))
	b := NewPerlin(core.NewRandomSampler(17))

	sampler := core.NewRandomSampler(1)
	for i := 0; i < 100; i++ {
		p := core.RandomVec3(sampler, -50, 50)
		if a.Noise(p) != b.Noise(p) {
			t.Fatalf("Same seed produced different noise at %v", p)
		}
	}
}

func TestPerlin_PermutationsAreComplete(t *testing.T) {
	perlin := NewPerlin(core.NewRandomSampler(4))
	for name, perm := range map[string][perlinPointCount]int{"x": perlin.permX, "y": perlin.permY, "z": perlin.permZ} {
		seen := make(map[int]bool)
		moved := 0
		for i, v := range perm {
			seen[v] = true
			if v != i {
				moved++
			}
		}
		if len(seen) != perlinPointCount {
			t.Errorf("perm %s is not a permutation: %d distinct values", name, len(seen))
		}
		if moved == 0 {
			t.Errorf("perm %s was not shuffled", name)
		}
	}
}

func TestPerlin_NoiseProperties(t *testing.T) {
	perlin := NewPerlin(core.NewRandomSampler(23))

	// Gradient noise vanishes on lattice points
	for _, p := range []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(3, -7, 12), core.NewVec3(-255, 256, 1)} {
		if n := perlin.Noise(p); math.Abs(n) > 1e-12 {
			t.Errorf("Noise at lattice point %v = %g, want 0", p, n)
		}
	}

	sampler := core.NewRandomSampler(2)
	for i := 0; i < 2000; i++ {
		p := core.RandomVec3(sampler, -20, 20)
		n := perlin.Noise(p)
		if n < -2 || n > 2 || math.IsNaN(n) {
			t.Fatalf("Noise out of range at %v: %f", p, n)
		}
		turb := perlin.Turb(p, DefaultTurbulenceDepth)
		if turb < 0 || turb > 4 {
			t.Fatalf("Turbulence out of range at %v: %f", p, turb)
		}
	}
}

func TestNoiseTexture_Range(t *testing.T) {
	texture := NewNoiseTexture(core.NewRandomSampler(5), 4)
	sampler := core.NewRandomSampler(6)
	for i := 0; i < 1000; i++ {
		c := texture.Value(0, 0, core.RandomVec3(sampler, -5, 5))
		if c.X < 0 || c.X > 1 || c.X != c.Y || c.Y != c.Z {
			t.Fatalf("Noise texture should be grey in [0,1], got %v", c)
		}
	}
}
