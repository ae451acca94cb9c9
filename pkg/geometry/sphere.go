package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord, _ core.Sampler) bool {
	return hitSphere(s.Center, s.Radius, s.Material, ray, tMin, tMax, rec)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(_, _ float64) (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// hitSphere solves |o + t·d − c|² = r² for the nearest root in [tMin, tMax]
func hitSphere(center core.Vec3, radius float64, mat core.Material, ray core.Ray, tMin, tMax float64, rec *core.HitRecord) bool {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	outwardNormal := rec.Point.Subtract(center).Divide(radius)
	rec.SetFaceNormal(ray, outwardNormal)
	rec.U, rec.V = sphereUV(outwardNormal)
	rec.Material = mat
	return true
}

// sphereUV maps a point on the unit sphere to texture coordinates in [0,1]².
// u runs around the Y axis starting at X=-1, v runs from Y=-1 to Y=+1.
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(core.Clamp(-p.Y, -1, 1))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

func sphereBox(center core.Vec3, radius float64) core.AABB {
	r := math.Abs(radius)
	extent := core.NewVec3(r, r, r)
	return core.NewAABB(center.Subtract(extent), center.Add(extent))
}
