package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Normal   core.Vec3 // Unit normal (U × V normalized)
	Material material.Material
	D        float64   // Plane equation constant: normal · p = D
	W        core.Vec3 // n / (n · n) with n = U × V, for planar coordinates
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) (*Quad, error) {
	n := u.Cross(v)
	if n.NearZero() || !n.IsFinite() {
		return nil, fmt.Errorf("u=%v v=%v: %w", u, v, ErrDegenerateQuad)
	}

	normal := n.Normalize()
	q := &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        normal.Dot(corner),
		W:        n.Multiply(1.0 / n.Dot(n)),
	}

	diagonal1 := core.NewAABBFromPoints(corner, corner.Add(u).Add(v))
	diagonal2 := core.NewAABBFromPoints(corner.Add(u), corner.Add(v))
	q.bbox = diagonal1.Union(diagonal2).Pad()

	return q, nil
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	denominator := q.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(t) {
		return false
	}

	// Express the hit point in the plane's (U, V) basis
	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))

	if !IsInterior(alpha, beta) {
		return false
	}

	rec.T = t
	rec.Point = hitPoint
	rec.UV = core.NewVec2(alpha, beta)
	rec.Material = q.Material
	rec.SetFaceNormal(ray, q.Normal)

	return true
}

// IsInterior reports whether planar coordinates (alpha, beta) lie inside the unit square
func IsInterior(alpha, beta float64) bool {
	unit := core.NewInterval(0, 1)
	return unit.Contains(alpha) && unit.Contains(beta)
}

// BoundingBox returns the padded box of the four corners
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}
