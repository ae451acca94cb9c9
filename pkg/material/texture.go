package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two textures in a 3D checker pattern
type CheckerTexture struct {
	Even core.Texture
	Odd  core.Texture
}

// NewCheckerTexture creates a checker pattern from two textures
func NewCheckerTexture(even, odd core.Texture) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd}
}

// NewCheckerColors creates a checker pattern from two solid colors
func NewCheckerColors(even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(NewSolidColor(even), NewSolidColor(odd))
}

// Value picks Odd where sin(10x)·sin(10y)·sin(10z) is negative
func (c *CheckerTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	sines := math.Sin(10*p.X) * math.Sin(10*p.Y) * math.Sin(10*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}
