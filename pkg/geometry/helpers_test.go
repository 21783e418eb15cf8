package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DummyMaterial for testing
type DummyMaterial struct{}

func (d DummyMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

// mustSphere builds a sphere or panics; test inputs are always valid
func mustSphere(center core.Vec3, radius float64) *Sphere {
	s, err := NewSphere(center, radius, DummyMaterial{})
	if err != nil {
		panic(err)
	}
	return s
}

func mustQuad(corner, u, v core.Vec3) *Quad {
	q, err := NewQuad(corner, u, v, DummyMaterial{})
	if err != nil {
		panic(err)
	}
	return q
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

// hitInterval is the interval used by the renderer for primary and bounce rays
var hitInterval = core.NewInterval(0.001, math.Inf(1))
