package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestQuad_IsInterior(t *testing.T) {
	tests := []struct {
		alpha, beta float64
		expected    bool
	}{
		{0.5, 0.5, true},
		{1.5, 0.5, false},
		{0, 0, true},
		{1, 1, true},
		{-0.01, 0.5, false},
		{0.5, 1.01, false},
	}

	for _, tt := range tests {
		if got := IsInterior(tt.alpha, tt.beta); got != tt.expected {
			t.Errorf("IsInterior(%f, %f) = %t, expected %t", tt.alpha, tt.beta, got, tt.expected)
		}
	}
}

func TestQuad_Hit_BasicIntersection(t *testing.T) {
	// 1x1 quad in the XZ plane at y=0
	quad := mustQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))

	ray := core.NewRay(core.NewVec3(0.5, 1, 0.25), core.NewVec3(0, -1, 0))

	var rec material.HitRecord
	if !quad.Hit(ray, hitInterval, &rec, core.NewSeededSampler(1)) {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(rec.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", rec.T)
	}
	if !vecNear(rec.Point, core.NewVec3(0.5, 0, 0.25), 1e-9) {
		t.Errorf("Expected hit point (0.5,0,0.25), got %v", rec.Point)
	}
	if math.Abs(rec.UV.X-0.5) > 1e-9 || math.Abs(rec.UV.Y-0.25) > 1e-9 {
		t.Errorf("Expected uv (0.5,0.25), got %v", rec.UV)
	}

	// U × V = X × Z = -Y, so a downward ray sees the back face
	if rec.FrontFace {
		t.Error("Expected back face hit")
	}
	if !vecNear(rec.Normal, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Normal should face the ray, got %v", rec.Normal)
	}
}

func TestQuad_Hit_OutsideBounds(t *testing.T) {
	quad := mustQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))

	tests := []struct {
		name      string
		rayOrigin core.Vec3
	}{
		{"past u edge", core.NewVec3(1.5, 1, 0.5)},
		{"before u edge", core.NewVec3(-0.5, 1, 0.5)},
		{"past v edge", core.NewVec3(0.5, 1, 1.5)},
		{"before v edge", core.NewVec3(0.5, 1, -0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec material.HitRecord
			ray := core.NewRay(tt.rayOrigin, core.NewVec3(0, -1, 0))
			if quad.Hit(ray, hitInterval, &rec, core.NewSeededSampler(1)) {
				t.Errorf("Expected miss, got hit at %v", rec.Point)
			}
		})
	}
}

func TestQuad_Hit_ParallelAndBehind(t *testing.T) {
	quad := mustQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	var rec material.HitRecord

	parallel := core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1))
	if quad.Hit(parallel, hitInterval, &rec, core.NewSeededSampler(1)) {
		t.Error("Parallel ray should miss")
	}

	behind := core.NewRay(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0))
	if quad.Hit(behind, hitInterval, &rec, core.NewSeededSampler(1)) {
		t.Error("Ray pointing away should miss")
	}
}

func TestQuad_BoundingBoxIsPadded(t *testing.T) {
	quad := mustQuad(core.NewVec3(0, 2, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	box := quad.BoundingBox()

	if box.Y.Size() <= 0 {
		t.Errorf("Flat quad should have a padded Y extent, got %v", box.Y)
	}
	if !box.Y.Contains(2) {
		t.Errorf("Padded Y extent should contain the plane, got %v", box.Y)
	}
	if box.X.Min > 0 || box.X.Max < 1 || box.Z.Min > 0 || box.Z.Max < 1 {
		t.Errorf("Box should cover all corners, got %+v", box)
	}
}

func TestNewQuad_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		u, v core.Vec3
	}{
		{"zero u", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)},
		{"zero v", core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 0)},
		{"parallel", core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuad(core.NewVec3(0, 0, 0), tt.u, tt.v, DummyMaterial{})
			if !errors.Is(err, ErrDegenerateQuad) {
				t.Errorf("Expected ErrDegenerateQuad, got %v", err)
			}
		})
	}
}

func TestNewBox(t *testing.T) {
	box, err := NewBox(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), DummyMaterial{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(box.Objects) != 6 {
		t.Fatalf("Expected 6 faces, got %d", len(box.Objects))
	}

	bbox := box.BoundingBox()
	if !vecNear(bbox.Min(), core.NewVec3(0, 0, 0), 1e-3) || !vecNear(bbox.Max(), core.NewVec3(1, 1, 1), 1e-3) {
		t.Errorf("Expected bounds (0,0,0)-(1,1,1), got %v-%v", bbox.Min(), bbox.Max())
	}

	// Rays along each axis from outside enter through a face at distance 1
	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		normal    core.Vec3
	}{
		{"from +X", core.NewVec3(2, 0.5, 0.5), core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0)},
		{"from -X", core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0)},
		{"from +Y", core.NewVec3(0.5, 2, 0.5), core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)},
		{"from -Y", core.NewVec3(0.5, -1, 0.5), core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)},
		{"from +Z", core.NewVec3(0.5, 0.5, 2), core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1)},
		{"from -Z", core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec material.HitRecord
			if !box.Hit(core.NewRay(tt.origin, tt.direction), hitInterval, &rec, core.NewSeededSampler(1)) {
				t.Fatal("Expected hit")
			}
			if math.Abs(rec.T-1) > 1e-9 {
				t.Errorf("Expected t=1, got %f", rec.T)
			}
			if !vecNear(rec.Normal, tt.normal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.normal, rec.Normal)
			}
		})
	}
}
