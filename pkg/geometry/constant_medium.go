package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boundaryEpsilon separates the search for the exit crossing from the entry crossing
const boundaryEpsilon = 0.0001

// ConstantMedium is a volume of uniform density filling a convex boundary
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium with an isotropic phase function colored by albedo
func NewConstantMedium(boundary Hittable, density float64, albedo material.Texture) (*ConstantMedium, error) {
	if !(density > 0) || math.IsInf(density, 0) {
		return nil, fmt.Errorf("density %v: %w", density, ErrInvalidDensity)
	}
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewIsotropic(albedo),
		negInvDensity: -1 / density,
	}, nil
}

// NewConstantMediumFromColor creates a medium with a solid-color phase function
func NewConstantMediumFromColor(boundary Hittable, density float64, albedo core.Vec3) (*ConstantMedium, error) {
	return NewConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// Hit samples a free-flight distance and reports a scattering event if it falls inside the boundary
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	var entry, exit material.HitRecord

	if !m.Boundary.Hit(ray, core.UniverseInterval, &entry, sampler) {
		return false
	}
	if !m.Boundary.Hit(ray, core.NewInterval(entry.T+boundaryEpsilon, math.Inf(1)), &exit, sampler) {
		return false
	}

	if entry.T < rayT.Min {
		entry.T = rayT.Min
	}
	if exit.T > rayT.Max {
		exit.T = rayT.Max
	}
	if entry.T >= exit.T {
		return false
	}
	if entry.T < 0 {
		entry.T = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (exit.T - entry.T) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())

	if hitDistance > distanceInsideBoundary {
		return false
	}

	rec.T = entry.T + hitDistance/rayLength
	rec.Point = ray.At(rec.T)
	// Normal and face have no meaning inside a volume
	rec.Normal = core.NewVec3(1, 0, 0)
	rec.FrontFace = true
	rec.UV = core.Vec2{}
	rec.Material = m.PhaseFunction

	return true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
