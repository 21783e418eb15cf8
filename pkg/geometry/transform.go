package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate moves a shared child Hittable by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears displaced by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space, tests the child and moves the hit back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	if !t.Object.Hit(offsetRay, rayT, rec, sampler) {
		return false
	}

	rec.Point = rec.Point.Add(t.Offset)
	return true
}

// BoundingBox returns the child's box shifted by the offset
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// RotateY rotates a shared child Hittable about the Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Rebuild the box from the eight rotated corners of the child's box
	box := object.BoundingBox()
	minCorner := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	maxCorner := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				x := float64(i)*box.X.Max + float64(1-i)*box.X.Min
				y := float64(j)*box.Y.Max + float64(1-j)*box.Y.Min
				z := float64(k)*box.Z.Max + float64(1-k)*box.Z.Min

				corner := r.toWorld(core.NewVec3(x, y, z))
				minCorner = core.NewVec3(math.Min(minCorner.X, corner.X), math.Min(minCorner.Y, corner.Y), math.Min(minCorner.Z, corner.Z))
				maxCorner = core.NewVec3(math.Max(maxCorner.X, corner.X), math.Max(maxCorner.Y, corner.Y), math.Max(maxCorner.Z, corner.Z))
			}
		}
	}

	r.bbox = core.NewAABBFromPoints(minCorner, maxCorner)
	return r
}

// toObject applies the inverse rotation, taking world space into the child's frame
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld applies the rotation, taking the child's frame into world space
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, tests the child and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	if !r.Object.Hit(rotated, rayT, rec, sampler) {
		return false
	}

	rec.Point = r.toWorld(rec.Point)
	rec.Normal = r.toWorld(rec.Normal)
	return true
}

// BoundingBox returns the box enclosing the rotated child
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
