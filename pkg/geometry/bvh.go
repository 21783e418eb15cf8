package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Children are either further nodes or the scene's primitives; a single
// primitive span stores the same object as both children.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// NewBVH constructs a BVH over objects, choosing each split axis with sampler.
// An empty slice produces a node that never reports a hit.
func NewBVH(objects []Hittable, sampler core.Sampler) *BVHNode {
	if len(objects) == 0 {
		return &BVHNode{bbox: core.EmptyAABB}
	}

	// Sorting works on a copy so the caller's slice order is preserved
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, sampler)
}

// buildBVH recursively splits the span at its midpoint after ordering it along a random axis
func buildBVH(objects []Hittable, sampler core.Sampler) *BVHNode {
	axis := sampler.GetInt(0, 2)
	less := func(a, b Hittable) bool {
		return a.BoundingBox().Axis(axis).Min < b.BoundingBox().Axis(axis).Min
	}

	node := &BVHNode{}
	switch span := len(objects); span {
	case 1:
		node.Left = objects[0]
		node.Right = objects[0]
	case 2:
		if less(objects[1], objects[0]) {
			node.Left, node.Right = objects[1], objects[0]
		} else {
			node.Left, node.Right = objects[0], objects[1]
		}
	default:
		sort.SliceStable(objects, func(i, j int) bool {
			return less(objects[i], objects[j])
		})
		mid := span / 2
		node.Left = buildBVH(objects[:mid], sampler)
		node.Right = buildBVH(objects[mid:], sampler)
	}

	node.bbox = node.Left.BoundingBox().Union(node.Right.BoundingBox())
	return node
}

// Hit tests if a ray intersects any object in the BVH and keeps the closest hit
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if n.Left == nil || !n.bbox.Hit(ray, rayT) {
		return false
	}

	hitLeft := n.Left.Hit(ray, rayT, rec, sampler)

	// Right child only needs to beat the left hit
	rightT := rayT
	if hitLeft {
		rightT.Max = rec.T
	}
	hitRight := n.Right.Hit(ray, rightT, rec, sampler)

	return hitLeft || hitRight
}

// BoundingBox returns the union of both children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64
	TotalShapes int
}

// Stats returns statistics about the BVH structure
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	if n.Left == nil {
		return stats
	}

	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	leftNode, leftInternal := n.Left.(*BVHNode)
	rightNode, rightInternal := n.Right.(*BVHNode)

	if !leftInternal && !rightInternal {
		// Leaf node
		stats.LeafNodes++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		if n.Left == n.Right {
			stats.TotalShapes++
		} else {
			stats.TotalShapes += 2
		}
		return
	}

	// Internal node
	if leftInternal {
		leftNode.collectStats(depth+1, stats)
	}
	if rightInternal {
		rightNode.collectStats(depth+1, stats)
	}
}
