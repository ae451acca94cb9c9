package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name       string
		ray        Ray
		tMin, tMax float64
		expected   bool
	}{
		{"straight through", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0), 0), 0, 100, true},
		{"pointing away", NewRay(NewVec3(-5, 0, 0), NewVec3(-1, 0, 0), 0), 0, 100, false},
		{"interval ends before box", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0), 0), 0, 3, false},
		{"interval starts after box", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0), 0), 7, 100, false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1), 0), 0, 100, true},
		{"parallel inside slab", NewRay(NewVec3(-5, 0.5, 0.5), NewVec3(1, 0, 0), 0), 0, 100, true},
		{"parallel outside slab", NewRay(NewVec3(-5, 2, 0), NewVec3(1, 0, 0), 0), 0, 100, false},
		{"parallel on slab boundary", NewRay(NewVec3(-5, 1, 0), NewVec3(1, 0, 0), 0), 0, 100, true},
		{"negative zero direction", NewRay(NewVec3(-5, 0, 0), NewVec3(1, math.Copysign(0, -1), 0), 0), 0, 100, true},
		{"diagonal miss", NewRay(NewVec3(-5, 3, 0), NewVec3(1, 0.1, 0), 0), 0, 100, false},
		{"diagonal hit", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1), 0), 0, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.tMin, tt.tMax); got != tt.expected {
				t.Errorf("Expected hit=%t, got %t", tt.expected, got)
			}
		})
	}
}

// analyticInterval computes the entry and exit parameters of a ray through a box
// independently of the slab loop in AABB.Hit.
func analyticInterval(box AABB, ray Ray) (float64, float64, bool) {
	entry, exit := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o, d := ray.Origin.Axis(axis), ray.Direction.Axis(axis)
		lo, hi := box.Min.Axis(axis), box.Max.Axis(axis)
		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / d
		t0, t1 := (lo-o)*inv, (hi-o)*inv
		entry = math.Max(entry, math.Min(t0, t1))
		exit = math.Min(exit, math.Max(t0, t1))
	}
	return entry, exit, true
}

func TestAABB_HitMatchesAnalyticInterval(t *testing.T) {
	sampler := NewRandomSampler(1234)

	for i := 0; i < 5000; i++ {
		lo := RandomVec3(sampler, -5, 5)
		box := NewAABB(lo, lo.Add(RandomVec3(sampler, 0.1, 3)))
		dir := RandomVec3(sampler, -1, 1)
		// Exercise axis-parallel rays regularly
		switch i % 4 {
		case 1:
			dir.X = 0
		case 2:
			dir.Y, dir.Z = 0, 0
		}
		ray := NewRay(RandomVec3(sampler, -10, 10), dir, 0)
		tMin, tMax := 0.001, sampler.Range(1, 30)

		entry, exit, ok := analyticInterval(box, ray)
		want := ok && math.Max(entry, tMin) < math.Min(exit, tMax)
		if got := box.Hit(ray, tMin, tMax); got != want {
			t.Fatalf("case %d: box %v ray %v [%f,%f]: got %t want %t", i, box, ray, tMin, tMax, got, want)
		}
	}
}

func TestAABB_UnionAndCorners(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 2), NewVec3(0.5, 3, 4))
	u := a.Union(b)

	if u.Min != NewVec3(-1, 0, 0) || u.Max != NewVec3(1, 3, 4) {
		t.Errorf("Unexpected union %v", u)
	}
	if !u.Contains(a) || !u.Contains(b) {
		t.Error("Union must contain both inputs")
	}
	if !u.IsValid() {
		t.Error("Union must be valid")
	}

	corners := u.Corners()
	fromCorners := NewAABBFromPoints(corners[:]...)
	if fromCorners != u {
		t.Errorf("Box rebuilt from its corners %v differs from %v", fromCorners, u)
	}
	if got := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 5, 2)).LongestAxis(); got != 1 {
		t.Errorf("Expected longest axis 1, got %d", got)
	}
}
