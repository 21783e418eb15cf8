package geometry

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays.
// Hit fills rec only when it reports a hit inside rayT. Implementations are
// read-only once built, so one Hittable may be shared by several parents.
type Hittable interface {
	Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool
	BoundingBox() core.AABB
}

// Construction errors
var (
	ErrInvalidRadius  = errors.New("sphere radius must be positive and finite")
	ErrDegenerateQuad = errors.New("quad edge vectors are parallel or zero")
	ErrInvalidDensity = errors.New("medium density must be positive")
)
