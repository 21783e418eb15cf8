package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MockHittable records how often it is queried
type MockHittable struct {
	boundingBox core.AABB
	hitCount    *int
}

func (m MockHittable) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if m.hitCount != nil {
		*m.hitCount++
	}
	return false
}

func (m MockHittable) BoundingBox() core.AABB {
	return m.boundingBox
}

// randomScene builds a mix of spheres and quads scattered in a 20-unit cube
func randomScene(sampler core.Sampler, n int) []Hittable {
	objects := make([]Hittable, 0, n)
	for i := 0; i < n; i++ {
		center := core.RandomVec3InRange(sampler, -10, 10)
		if sampler.Get1D() < 0.7 {
			objects = append(objects, mustSphere(center, core.RandomInRange(sampler, 0.1, 2)))
			continue
		}
		u := core.RandomVec3InRange(sampler, -2, 2)
		v := core.RandomVec3InRange(sampler, -2, 2)
		if u.Cross(v).NearZero() {
			continue
		}
		objects = append(objects, mustQuad(center, u, v))
	}
	return objects
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		sampler := core.NewSeededSampler(seed)
		objects := randomScene(sampler, 1+int(seed)*7)

		bvh := NewBVH(objects, sampler)
		list := NewHittableList(objects...)

		for i := 0; i < 500; i++ {
			origin := core.RandomVec3InRange(sampler, -15, 15)
			direction := core.RandomVec3InRange(sampler, -1, 1)
			if direction.NearZero() {
				continue
			}
			ray := core.NewRay(origin, direction)

			var bvhRec, listRec material.HitRecord
			bvhHit := bvh.Hit(ray, hitInterval, &bvhRec, sampler)
			listHit := list.Hit(ray, hitInterval, &listRec, sampler)

			if bvhHit != listHit {
				t.Fatalf("seed %d ray %d: BVH hit=%t, linear scan hit=%t", seed, i, bvhHit, listHit)
			}
			if !bvhHit {
				continue
			}
			if math.Abs(bvhRec.T-listRec.T) > 1e-9 {
				t.Fatalf("seed %d ray %d: BVH t=%f, linear scan t=%f", seed, i, bvhRec.T, listRec.T)
			}
			if !vecNear(bvhRec.Point, listRec.Point, 1e-9) || !vecNear(bvhRec.Normal, listRec.Normal, 1e-9) {
				t.Fatalf("seed %d ray %d: BVH and linear scan disagree on the hit: %+v vs %+v", seed, i, bvhRec, listRec)
			}
		}
	}
}

func TestBVH_ClosestHitAcrossChildren(t *testing.T) {
	// Depending on the split axis the closest sphere lands in either subtree
	objects := []Hittable{
		mustSphere(core.NewVec3(-10, -10, -20), 1),
		mustSphere(core.NewVec3(0, 0, -20), 1),
		mustSphere(core.NewVec3(0, 0, -5), 1),
	}

	for seed := int64(0); seed < 10; seed++ {
		bvh := NewBVH(objects, core.NewSeededSampler(seed))
		var rec material.HitRecord
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
		if !bvh.Hit(ray, hitInterval, &rec, core.NewSeededSampler(seed)) {
			t.Fatal("Expected hit")
		}
		if math.Abs(rec.T-4) > 1e-9 {
			t.Errorf("seed %d: expected closest hit t=4, got %f", seed, rec.T)
		}
	}
}

func TestBVH_EmptyAndSingleObject(t *testing.T) {
	empty := NewBVH(nil, core.NewSeededSampler(1))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	var rec material.HitRecord
	if empty.Hit(ray, hitInterval, &rec, core.NewSeededSampler(1)) {
		t.Error("Expected no hit for empty BVH")
	}
	if !empty.BoundingBox().IsEmpty() {
		t.Errorf("Empty BVH should have an empty box, got %+v", empty.BoundingBox())
	}
	if stats := empty.Stats(); stats.TotalNodes != 0 {
		t.Errorf("Empty BVH should have no nodes, got %d", stats.TotalNodes)
	}

	sphere := mustSphere(core.NewVec3(5, 0, 0), 1)
	single := NewBVH([]Hittable{sphere}, core.NewSeededSampler(1))
	if single.Left != single.Right {
		t.Error("Single object should be aliased into both children")
	}
	if !single.Hit(ray, hitInterval, &rec, core.NewSeededSampler(1)) {
		t.Fatal("Expected hit on single sphere")
	}
	if math.Abs(rec.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", rec.T)
	}
}

func TestBVH_PrunesOnBoxMiss(t *testing.T) {
	count := 0
	objects := make([]Hittable, 16)
	for i := range objects {
		x := float64(i) * 2
		objects[i] = MockHittable{
			boundingBox: core.NewAABBFromPoints(core.NewVec3(x, 0, 0), core.NewVec3(x+1, 1, 1)),
			hitCount:    &count,
		}
	}
	bvh := NewBVH(objects, core.NewSeededSampler(3))

	// Ray far above every box and climbing; a zero Y component would leave Y unconstrained
	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(-5, 50, 0.5), core.NewVec3(1, 0.1, 0.01))
	bvh.Hit(ray, hitInterval, &rec, core.NewSeededSampler(1))
	if count != 0 {
		t.Errorf("Expected no primitive tests for a ray missing the root box, got %d", count)
	}
}

func TestBVH_DoesNotReorderInput(t *testing.T) {
	objects := []Hittable{
		mustSphere(core.NewVec3(5, 0, 0), 1),
		mustSphere(core.NewVec3(-5, 0, 0), 1),
		mustSphere(core.NewVec3(0, 5, 0), 1),
		mustSphere(core.NewVec3(0, -5, 0), 1),
	}
	original := make([]Hittable, len(objects))
	copy(original, objects)

	NewBVH(objects, core.NewSeededSampler(2))

	for i := range objects {
		if objects[i] != original[i] {
			t.Fatalf("NewBVH reordered the caller's slice at %d", i)
		}
	}
}

func TestBVH_Stats(t *testing.T) {
	objects := make([]Hittable, 9)
	for i := range objects {
		objects[i] = MockHittable{
			boundingBox: core.NewAABBFromPoints(core.NewVec3(float64(i), 0, 0), core.NewVec3(float64(i)+1, 1, 1)),
		}
	}

	stats := NewBVH(objects, core.NewSeededSampler(42)).Stats()
	if stats.TotalShapes != len(objects) {
		t.Errorf("Expected %d shapes in leaves, got %d", len(objects), stats.TotalShapes)
	}
	if stats.LeafNodes < 4 {
		t.Errorf("Expected at least 4 leaves for 9 objects, got %d", stats.LeafNodes)
	}
	if stats.MaxDepth < 2 || stats.AvgDepth <= 0 {
		t.Errorf("Unexpected depth stats: %+v", stats)
	}
}
