package geometry

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
)

// BVHNode is a node in the Bounding Volume Hierarchy.
// A node holding a single object stores it as both children.
type BVHNode struct {
	Left  core.Hittable
	Right core.Hittable
	Box   core.AABB
	leaf  bool // Left and Right are the same object
}

// NewBVH constructs a BVH over objects for the time interval [t0, t1].
// Every object must have a bounding box.
func NewBVH(objects []core.Hittable, t0, t1 float64) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, errors.New("bvh: no objects to build from")
	}

	// Make a copy of the objects slice to avoid reordering the caller's slice
	objectsCopy := make([]core.Hittable, len(objects))
	copy(objectsCopy, objects)

	// Bounding boxes are computed once up front; the sort compares them repeatedly
	entries := make([]bvhEntry, len(objectsCopy))
	for i, object := range objectsCopy {
		box, ok := object.BoundingBox(t0, t1)
		if !ok {
			return nil, errors.Errorf("bvh: object %d (%T) has no bounding box", i, object)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	return buildBVH(entries), nil
}

type bvhEntry struct {
	object core.Hittable
	box    core.AABB
}

// buildBVH recursively splits entries at the median along the longest axis of their bounds
func buildBVH(entries []bvhEntry) *BVHNode {
	boundingBox := entries[0].box
	for _, e := range entries[1:] {
		boundingBox = boundingBox.Union(e.box)
	}

	switch len(entries) {
	case 1:
		return &BVHNode{
			Left:  entries[0].object,
			Right: entries[0].object,
			Box:   boundingBox,
			leaf:  true,
		}
	case 2:
		axis := boundingBox.LongestAxis()
		left, right := entries[0], entries[1]
		if boxCompare(right.box, left.box, axis) {
			left, right = right, left
		}
		return &BVHNode{Left: left.object, Right: right.object, Box: boundingBox}
	}

	// Deterministic longest-axis split keeps builds reproducible
	axis := boundingBox.LongestAxis()
	sortEntriesByAxis(entries, axis)

	mid := len(entries) / 2
	return &BVHNode{
		Left:  buildBVH(entries[:mid]),
		Right: buildBVH(entries[mid:]),
		Box:   boundingBox,
	}
}

// boxCompare orders boxes by their minimum along axis
func boxCompare(a, b core.AABB, axis int) bool {
	return a.Min.Axis(axis) < b.Min.Axis(axis)
}

// sortEntriesByAxis sorts entries by the minimum of their bounding box along the specified axis
func sortEntriesByAxis(entries []bvhEntry, axis int) {
	sort.SliceStable(entries, func(i, j int) bool {
		return boxCompare(entries[i].box, entries[j].box, axis)
	})
}

// Hit tests the children only when the ray enters this node's box.
// The right child is searched up to the left child's hit so the closest hit wins.
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord, sampler core.Sampler) bool {
	if !n.Box.Hit(ray, tMin, tMax) {
		return false
	}

	hitLeft := n.Left.Hit(ray, tMin, tMax, rec, sampler)
	if n.leaf {
		return hitLeft
	}
	if hitLeft {
		tMax = rec.T
	}
	hitRight := n.Right.Hit(ray, tMin, tMax, rec, sampler)

	return hitLeft || hitRight
}

// BoundingBox returns the union of the children's boxes
func (n *BVHNode) BoundingBox(_, _ float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	TotalNodes int // Interior and leaf nodes
	LeafNodes  int // Nodes holding a single object
	MaxDepth   int // Depth of the deepest node, root is 0
	Objects    int // Objects reachable through the tree
}

// Stats walks the tree and collects statistics about it
func (n *BVHNode) Stats() BVHStats {
	var stats BVHStats
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if n.leaf {
		stats.LeafNodes++
		stats.Objects++
		return
	}

	for _, child := range []core.Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.Objects++
		}
	}
}
