package scene

import (
	"fmt"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// EarthTexture is the image file the earth scenes look for in the texture directory
const EarthTexture = "earthmap.jpg"

var (
	skyBackground   = renderer.SkyBackground()
	blackBackground = renderer.NewSolidBackground(core.Vec3{})
)

// distantCamera frames objects near the origin from (13, 2, 3)
func distantCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        20,
	}
}

// NewTwoSpheresScene creates a small diffuse sphere resting on a large ground sphere
func NewTwoSpheresScene(sampler core.Sampler, opts Options) (*Scene, error) {
	b := newBuilder(sampler)
	b.add(
		b.sphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		b.sphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
	)

	camera := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90,
	}
	return b.finish("two-spheres", camera, renderer.DefaultSamplingConfig(), skyBackground)
}

// NewMaterialsScene creates a row of spheres showing each surface material
func NewMaterialsScene(sampler core.Sampler, opts Options) (*Scene, error) {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	b := newBuilder(sampler)
	glass := b.dielectric(1.5)
	bubble := b.dielectric(1.0 / 1.5)
	b.add(
		b.sphere(core.NewVec3(0, -100.5, -1), 100, ground),
		b.sphere(core.NewVec3(0, 0, -1.2), 0.5, center),
		b.sphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		b.sphere(core.NewVec3(-1, 0, -1), 0.4, bubble),
		b.sphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)

	camera := renderer.CameraConfig{
		Center:        core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		Aperture:      0.6, // roughly a 10 degree defocus cone
		FocusDistance: 3.4,
	}
	return b.finish("materials", camera, renderer.DefaultSamplingConfig(), skyBackground)
}

// NewBouncingSpheresScene creates a checkered ground covered with random small
// spheres, the diffuse ones moving upward during the shutter interval
func NewBouncingSpheresScene(sampler core.Sampler, opts Options) (*Scene, error) {
	b := newBuilder(sampler)

	checker := b.checker(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	b.add(b.sphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for c := -11; c < 11; c++ {
			chooseMat := sampler.Get1D()
			jitter := sampler.Get2D()
			center := core.NewVec3(float64(a)+0.9*jitter.X, 0.2, float64(c)+0.9*jitter.Y)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3InRange(sampler, 0, 1).MultiplyVec(core.RandomVec3InRange(sampler, 0, 1))
				center2 := center.Add(core.NewVec3(0, core.RandomInRange(sampler, 0, 0.5), 0))
				b.add(b.movingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3InRange(sampler, 0.5, 1)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				b.add(b.sphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				b.add(b.sphere(center, 0.2, b.dielectric(1.5)))
			}
		}
	}

	b.add(
		b.sphere(core.NewVec3(0, 1, 0), 1.0, b.dielectric(1.5)),
		b.sphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		b.sphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	camera := distantCamera()
	camera.Aperture = 0.1
	camera.FocusDistance = 10
	return b.finish("bouncing-spheres", camera, renderer.DefaultSamplingConfig(), skyBackground)
}

// NewCheckeredSpheresScene creates two large spheres sharing a 3D checker texture
func NewCheckeredSpheresScene(sampler core.Sampler, opts Options) (*Scene, error) {
	b := newBuilder(sampler)
	checker := material.NewTexturedLambertian(
		b.checker(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)

	b.add(
		b.sphere(core.NewVec3(0, -10, 0), 10, checker),
		b.sphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return b.finish("checkered-spheres", distantCamera(), renderer.DefaultSamplingConfig(), skyBackground)
}

// loadTexture reads an image texture from the texture directory.
// A missing or corrupt file fails the scene.
func loadTexture(opts Options, name string) (*material.ImageTexture, error) {
	path := filepath.Join(opts.TextureDir, name)
	img, err := loaders.LoadImage(path, opts.MaxTextureSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture: %w", err)
	}
	logger.Infof("loaded texture %s (%dx%d)", path, img.Width(), img.Height())
	return material.NewImageTexture(img), nil
}

// NewEarthScene creates a globe textured with EarthTexture
func NewEarthScene(sampler core.Sampler, opts Options) (*Scene, error) {
	earth, err := loadTexture(opts, EarthTexture)
	if err != nil {
		return nil, fmt.Errorf("scene earth: %w", err)
	}

	b := newBuilder(sampler)
	b.add(b.sphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earth)))

	camera := distantCamera()
	camera.Center = core.NewVec3(0, 0, 12)
	return b.finish("earth", camera, renderer.DefaultSamplingConfig(), skyBackground)
}

// perlinSpheres adds a marble ground sphere and a marble sphere above it
func perlinSpheres(b *builder) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(b.sampler, 4))
	b.add(
		b.sphere(core.NewVec3(0, -1000, 0), 1000, marble),
		b.sphere(core.NewVec3(0, 2, 0), 2, marble),
	)
}

// NewPerlinSpheresScene creates marble-textured spheres under a sky
func NewPerlinSpheresScene(sampler core.Sampler, opts Options) (*Scene, error) {
	b := newBuilder(sampler)
	perlinSpheres(b)
	return b.finish("perlin-spheres", distantCamera(), renderer.DefaultSamplingConfig(), skyBackground)
}
