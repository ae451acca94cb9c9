package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// HittableList is an ordered collection of hittables tested by linear scan
type HittableList struct {
	Objects []core.Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...core.Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object core.Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all objects in the list
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord, sampler core.Sampler) bool {
	hitAnything := false
	closestSoFar := tMax

	for _, object := range l.Objects {
		if object.Hit(ray, tMin, closestSoFar, rec, sampler) {
			hitAnything = true
			closestSoFar = rec.T
		}
	}

	return hitAnything
}

// BoundingBox returns the union of all object boxes.
// An empty list, or one containing an unbounded object, has no box.
func (l *HittableList) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	var box core.AABB
	for i, object := range l.Objects {
		objectBox, ok := object.BoundingBox(t0, t1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			box = objectBox
		} else {
			box = box.Union(objectBox)
		}
	}
	return box, true
}
