package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Box represents an axis-aligned box made up of 6 rectangles
type Box struct {
	Min   core.Vec3     // Minimum corner
	Max   core.Vec3     // Maximum corner
	sides *HittableList // The 6 faces
}

// NewBox creates a box spanning the two corners p0 (minimum) and p1 (maximum)
func NewBox(p0, p1 core.Vec3, material core.Material) *Box {
	sides := NewHittableList(
		// Front and back (Z)
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, material),
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, material),
		// Top and bottom (Y)
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, material),
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, material),
		// Right and left (X)
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, material),
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, material),
	)

	return &Box{
		Min:   p0,
		Max:   p1,
		sides: sides,
	}
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord, sampler core.Sampler) bool {
	return b.sides.Hit(ray, tMin, tMax, rec, sampler)
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return b.sides.BoundingBox(t0, t1)
}
