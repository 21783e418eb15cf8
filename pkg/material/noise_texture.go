package material

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NoiseStyle selects how Perlin noise is mapped to a gray level
type NoiseStyle int

const (
	// NoiseMarble produces sine-modulated veins along z
	NoiseMarble NoiseStyle = iota
	// NoiseSmooth produces plain remapped gradient noise
	NoiseSmooth
	// NoiseTurbulence produces a multi-octave camouflage pattern
	NoiseTurbulence
)

// String returns the style name used by scene options
func (s NoiseStyle) String() string {
	switch s {
	case NoiseSmooth:
		return "smooth"
	case NoiseTurbulence:
		return "turbulence"
	default:
		return "marble"
	}
}

// ParseNoiseStyle converts a style name into a NoiseStyle
func ParseNoiseStyle(name string) (NoiseStyle, error) {
	switch name {
	case "", "marble":
		return NoiseMarble, nil
	case "smooth":
		return NoiseSmooth, nil
	case "turbulence":
		return NoiseTurbulence, nil
	default:
		return NoiseMarble, fmt.Errorf("unknown noise style %q", name)
	}
}

// NoiseTexture is a gray procedural texture driven by Perlin noise
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
	Style NoiseStyle
}

// NewNoiseTexture creates a marble noise texture with its own Perlin generator
func NewNoiseTexture(sampler core.Sampler, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: NewPerlin(sampler), Scale: scale, Style: NoiseMarble}
}

// NewStyledNoiseTexture creates a noise texture with an explicit style
func NewStyledNoiseTexture(sampler core.Sampler, scale float64, style NoiseStyle) *NoiseTexture {
	return &NoiseTexture{Noise: NewPerlin(sampler), Scale: scale, Style: style}
}

// Evaluate returns a gray value in [0, 1] at point
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	var gray float64
	switch n.Style {
	case NoiseSmooth:
		gray = 0.5 * (1 + n.Noise.Noise(point.Multiply(n.Scale)))
	case NoiseTurbulence:
		// Turbulence can exceed 1 in principle; attenuation may not
		gray = math.Min(n.Noise.Turbulence(point.Multiply(n.Scale), defaultTurbulenceDepth), 1)
	default:
		gray = 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.Noise.Turbulence(point, defaultTurbulenceDepth)))
	}
	return core.NewVec3(gray, gray, gray)
}
