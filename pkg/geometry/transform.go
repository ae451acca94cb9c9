package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Translate moves a hittable by a fixed offset
type Translate struct {
	Object core.Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears displaced by offset
func NewTranslate(object core.Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, forwards it and moves the hit point back
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord, sampler core.Sampler) bool {
	moved := core.NewRay(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	if !t.Object.Hit(moved, tMin, tMax, rec, sampler) {
		return false
	}
	// Translation keeps directions, so the face normal is still correct
	rec.Point = rec.Point.Add(t.Offset)
	return true
}

// BoundingBox is the object's box shifted by the offset
func (t *Translate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// RotateY rotates a hittable about the Y axis
type RotateY struct {
	Object   core.Hittable
	Angle    float64 // degrees
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
	hasBox   bool
}

// NewRotateY wraps object rotated by angle degrees about the Y axis.
// The bounding box is precomputed over the time interval [0, 1].
func NewRotateY(object core.Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		Angle:    angle,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}
	r.bbox, r.hasBox = r.rotatedBox(0, 1)
	return r
}

// toObject rotates a world space vector by -angle
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object space vector by +angle
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, forwards it and rotates the result back
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord, sampler core.Sampler) bool {
	rotated := core.NewRay(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	if !r.Object.Hit(rotated, tMin, tMax, rec, sampler) {
		return false
	}
	// Rotation preserves dot products, so FrontFace stays valid
	rec.Point = r.toWorld(rec.Point)
	rec.Normal = r.toWorld(rec.Normal)
	return true
}

// BoundingBox returns the world space box of the rotated object
func (r *RotateY) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	if t0 == 0 && t1 == 1 {
		return r.bbox, r.hasBox
	}
	return r.rotatedBox(t0, t1)
}

// rotatedBox rotates the 8 corners of the object's box and bounds the result
func (r *RotateY) rotatedBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := r.Object.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	corners := box.Corners()
	for i, corner := range corners {
		corners[i] = r.toWorld(corner)
	}
	return core.NewAABBFromPoints(corners[:]...), true
}
