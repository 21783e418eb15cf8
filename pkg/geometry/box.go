package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewBox returns the six quad faces of the axis-aligned box with opposite corners a and b
func NewBox(a, b core.Vec3, mat material.Material) (*HittableList, error) {
	minCorner := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	maxCorner := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := core.NewVec3(maxCorner.X-minCorner.X, 0, 0)
	dy := core.NewVec3(0, maxCorner.Y-minCorner.Y, 0)
	dz := core.NewVec3(0, 0, maxCorner.Z-minCorner.Z)

	faces := []struct {
		corner core.Vec3
		u, v   core.Vec3
	}{
		{core.NewVec3(minCorner.X, minCorner.Y, maxCorner.Z), dx, dy},          // front
		{core.NewVec3(maxCorner.X, minCorner.Y, maxCorner.Z), dz.Negate(), dy}, // right
		{core.NewVec3(maxCorner.X, minCorner.Y, minCorner.Z), dx.Negate(), dy}, // back
		{core.NewVec3(minCorner.X, minCorner.Y, minCorner.Z), dz, dy},          // left
		{core.NewVec3(minCorner.X, maxCorner.Y, maxCorner.Z), dx, dz.Negate()}, // top
		{core.NewVec3(minCorner.X, minCorner.Y, minCorner.Z), dx, dz},          // bottom
	}

	sides := NewHittableList()
	for _, f := range faces {
		quad, err := NewQuad(f.corner, f.u, f.v, mat)
		if err != nil {
			return nil, err
		}
		sides.Add(quad)
	}

	return sides, nil
}
