package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// Background is the radiance returned by rays that escape the scene.
// It blends from Bottom to Top by the vertical component of the unit ray direction;
// equal colors give a constant background.
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewSolidBackground creates a constant background
func NewSolidBackground(color core.Vec3) Background {
	return Background{Top: color, Bottom: color}
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(top, bottom core.Vec3) Background {
	return Background{Top: top, Bottom: bottom}
}

// SkyBackground is the default white-to-blue sky
func SkyBackground() Background {
	return NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
}

// Radiance returns the background color seen along ray
func (b Background) Radiance(ray core.Ray) core.Vec3 {
	if b.Top.Equals(b.Bottom) {
		return b.Top
	}

	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}
