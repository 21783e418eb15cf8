package material

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides a color for a surface point given its UV coordinates and world position
type Texture interface {
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor is a texture with one color everywhere
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the constant color
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates two textures on a 3D lattice of cubes in world space
type CheckerTexture struct {
	invScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a checker texture with cubes of side scale.
// Scale must be positive and finite.
func NewCheckerTexture(scale float64, even, odd Texture) (*CheckerTexture, error) {
	if !(scale > 0) || math.IsInf(scale, 1) {
		return nil, fmt.Errorf("checker scale %v: %w", scale, ErrInvalidCheckerScale)
	}
	return &CheckerTexture{invScale: 1.0 / scale, Even: even, Odd: odd}, nil
}

// NewCheckerTextureFromColors creates a checker texture from two solid colors
func NewCheckerTextureFromColors(scale float64, even, odd core.Vec3) (*CheckerTexture, error) {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate picks Even or Odd based on the parity of the lattice cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * point.X))
	y := int(math.Floor(c.invScale * point.Y))
	z := int(math.Floor(c.invScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}
