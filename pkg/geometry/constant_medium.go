package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ConstantMedium is a volume of constant density bounded by another hittable,
// such as smoke or fog. A ray travelling a distance L inside it survives with
// probability exp(-density·L).
type ConstantMedium struct {
	Boundary      core.Hittable
	Density       float64
	PhaseFunction core.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium whose scattering colour comes from a texture
func NewConstantMedium(boundary core.Hittable, density float64, albedo core.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewIsotropic(albedo),
		negInvDensity: -1 / density,
	}
}

// NewConstantMediumColor creates a medium with a solid scattering colour
func NewConstantMediumColor(boundary core.Hittable, density float64, color core.Vec3) *ConstantMedium {
	return NewConstantMedium(boundary, density, material.NewSolidColor(color))
}

// Hit samples a scattering distance inside the boundary.
// The boundary must be convex: only the first entry and exit are considered.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord, sampler core.Sampler) bool {
	var rec1, rec2 core.HitRecord

	if !m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), &rec1, sampler) {
		return false
	}
	if !m.Boundary.Hit(ray, rec1.T+0.0001, math.Inf(1), &rec2, sampler) {
		return false
	}

	t1, t2 := rec1.T, rec2.T
	if t1 < tMin {
		t1 = tMin
	}
	if t2 > tMax {
		t2 = tMax
	}
	if t1 >= t2 {
		return false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(core.OpenUnit(sampler))
	if hitDistance > distanceInsideBoundary {
		return false
	}

	rec.T = t1 + hitDistance/rayLength
	rec.Point = ray.At(rec.T)
	rec.Normal = core.NewVec3(1, 0, 0) // arbitrary
	rec.FrontFace = true               // also arbitrary
	rec.U, rec.V = 0, 0
	rec.Material = m.PhaseFunction
	return true
}

// BoundingBox is the boundary's box
func (m *ConstantMedium) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(t0, t1)
}
