package core

import (
	"math"
	"testing"
)

func unitBox() AABB {
	return NewAABB(NewInterval(0, 1), NewInterval(0, 1), NewInterval(0, 1))
}

func TestAABB_HitThroughCenterAlongEachAxis(t *testing.T) {
	box := unitBox()

	tests := []struct {
		name      string
		origin    Vec3
		direction Vec3
	}{
		{"+x", NewVec3(-1, 0.5, 0.5), NewVec3(1, 0, 0)},
		{"-x", NewVec3(2, 0.5, 0.5), NewVec3(-1, 0, 0)},
		{"+y", NewVec3(0.5, -1, 0.5), NewVec3(0, 1, 0)},
		{"-y", NewVec3(0.5, 2, 0.5), NewVec3(0, -1, 0)},
		{"+z", NewVec3(0.5, 0.5, -1), NewVec3(0, 0, 1)},
		{"-z", NewVec3(0.5, 0.5, 2), NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(tt.origin, tt.direction)
			if !box.Hit(ray, UniverseInterval) {
				t.Fatal("Expected hit through box center")
			}
			// Entry at t=1, exit at t=2: [1,2] hits, [0,0.99] and [2.01,5] miss
			if !box.Hit(ray, NewInterval(0.5, 1.5)) {
				t.Error("Expected hit for interval overlapping [1,2]")
			}
			if box.Hit(ray, NewInterval(0, 0.99)) {
				t.Error("Expected miss for interval ending before entry at t=1")
			}
			if box.Hit(ray, NewInterval(2.01, 5)) {
				t.Error("Expected miss for interval starting after exit at t=2")
			}
		})
	}
}

func TestAABB_OffsetRayMisses(t *testing.T) {
	box := unitBox()

	tests := []struct {
		name string
		ray  Ray
	}{
		{"diagonal past corner", NewRay(NewVec3(3, 0.5, -1), NewVec3(0.5, 0.1, 1))},
		{"pointing away", NewRay(NewVec3(0.5, 0.5, 2), NewVec3(0.1, 0.1, 1))},
		{"above and skewed", NewRay(NewVec3(-1, 3, -1), NewVec3(1, 0.2, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if box.Hit(tt.ray, NewInterval(0, math.Inf(1))) {
				t.Errorf("Expected miss for ray %v", tt.ray)
			}
		})
	}
}

func TestAABB_ZeroDirectionAxisDoesNotConstrain(t *testing.T) {
	box := unitBox()
	ray := NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1))
	if !box.Hit(ray, NewInterval(0, 100)) {
		t.Error("Expected hit for axis-parallel ray through the box")
	}
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewInterval(0, 1), NewInterval(0, 1), NewInterval(0, 1))
	b := NewAABB(NewInterval(2, 3), NewInterval(-1, 0.5), NewInterval(0, 1))
	c := NewAABB(NewInterval(-4, -2), NewInterval(5, 6), NewInterval(0.5, 9))

	ab := a.Union(b)
	if ab.X != NewInterval(0, 3) {
		t.Errorf("Expected x in [0,3], got %v", ab.X)
	}
	if ab.Y != NewInterval(-1, 1) {
		t.Errorf("Expected y in [-1,1], got %v", ab.Y)
	}

	if a.Union(b) != b.Union(a) {
		t.Error("Union should be commutative")
	}
	if a.Union(b).Union(c) != a.Union(b.Union(c)) {
		t.Error("Union should be associative")
	}
	if a.Union(EmptyAABB) != a {
		t.Error("EmptyAABB should be the identity for Union")
	}
}

func TestAABB_PadFlatAxis(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 2, 0), NewVec3(1, 2, 1))
	if box.Y.Size() < 0.99*minAxisThickness {
		t.Errorf("Expected flat axis to be padded, size %g", box.Y.Size())
	}
	if math.Abs(box.Y.Min+box.Y.Max-4) > 1e-12 {
		t.Errorf("Padding should be symmetric around 2, got %v", box.Y)
	}
	if box.X != NewInterval(0, 1) {
		t.Errorf("Thick axis should be untouched, got %v", box.X)
	}
}

func TestAABB_Translate(t *testing.T) {
	box := unitBox().Translate(NewVec3(1, -1, 2))
	if box.X != NewInterval(1, 2) || box.Y != NewInterval(-1, 0) || box.Z != NewInterval(2, 3) {
		t.Errorf("Unexpected translated box %v", box)
	}
}
