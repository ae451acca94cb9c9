package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// rectThickness pads the flat axis of a rectangle's bounding box
const rectThickness = 1e-4

// Plane identifies which pair of axes an axis-aligned rectangle spans
type Plane int

const (
	PlaneXY Plane = iota // spans X and Y, normal +Z
	PlaneXZ              // spans X and Z, normal +Y
	PlaneYZ              // spans Y and Z, normal +X
)

// axes returns the two in-plane axes and the normal axis
func (p Plane) axes() (a, b, normal int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

// AARect is an axis-aligned rectangle [A0,A1]×[B0,B1] lying in the plane normal-axis = K.
// For PlaneXY, A is X and B is Y; for PlaneXZ, A is X and B is Z; for PlaneYZ, A is Y and B is Z.
type AARect struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material core.Material
}

// NewXYRect creates a rectangle in the plane z = k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *AARect {
	return &AARect{Plane: PlaneXY, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: material}
}

// NewXZRect creates a rectangle in the plane y = k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *AARect {
	return &AARect{Plane: PlaneXZ, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: material}
}

// NewYZRect creates a rectangle in the plane x = k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *AARect {
	return &AARect{Plane: PlaneYZ, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: material}
}

// Hit intersects the ray with the rectangle's plane and checks the in-plane bounds
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord, _ core.Sampler) bool {
	aAxis, bAxis, nAxis := r.Plane.axes()

	dn := ray.Direction.Axis(nAxis)
	if dn == 0 {
		return false // parallel to the plane
	}
	t := (r.K - ray.Origin.Axis(nAxis)) / dn
	if t < tMin || t > tMax {
		return false
	}

	a := ray.Origin.Axis(aAxis) + t*ray.Direction.Axis(aAxis)
	b := ray.Origin.Axis(bAxis) + t*ray.Direction.Axis(bAxis)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return false
	}

	rec.U = (a - r.A0) / (r.A1 - r.A0)
	rec.V = (b - r.B0) / (r.B1 - r.B0)
	rec.T = t
	rec.Point = ray.At(t)
	rec.SetFaceNormal(ray, axisVec(nAxis, 1))
	rec.Material = r.Material
	return true
}

// BoundingBox pads the flat dimension so the box has non-zero width
func (r *AARect) BoundingBox(_, _ float64) (core.AABB, bool) {
	aAxis, bAxis, nAxis := r.Plane.axes()

	var min, max core.Vec3
	setAxis(&min, aAxis, r.A0)
	setAxis(&min, bAxis, r.B0)
	setAxis(&min, nAxis, r.K-rectThickness)
	setAxis(&max, aAxis, r.A1)
	setAxis(&max, bAxis, r.B1)
	setAxis(&max, nAxis, r.K+rectThickness)
	return core.NewAABB(min, max), true
}

func axisVec(axis int, value float64) core.Vec3 {
	var v core.Vec3
	setAxis(&v, axis, value)
	return v
}

func setAxis(v *core.Vec3, axis int, value float64) {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}
