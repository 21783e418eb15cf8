package scene

import (
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// Options carries settings that affect how scenes load external assets
type Options struct {
	TextureDir     string // Directory searched for image textures
	MaxTextureSize int    // Downscale textures larger than this on either side; 0 keeps full size
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Objects        []geometry.Hittable     // Top-level objects in the scene
	World          *geometry.BVHNode       // Acceleration structure over Objects
	CameraConfig   renderer.CameraConfig   // Recommended camera
	SamplingConfig renderer.SamplingConfig // Recommended sampling
	Background     renderer.Background
}

// NewRaytracer merges the overrides into the scene's recommended configuration
// and returns a raytracer ready to render
func (s *Scene) NewRaytracer(cameraOverride renderer.CameraConfig, samplingOverride renderer.SamplingConfig, logger log.Logger) (*renderer.Raytracer, error) {
	camera, err := renderer.NewCamera(renderer.MergeCameraConfig(s.CameraConfig, cameraOverride))
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	config := renderer.MergeSamplingConfig(s.SamplingConfig, samplingOverride)
	return renderer.NewRaytracer(s.World, camera, s.Background, config, logger)
}

// finish builds the BVH over the collected objects and logs its shape
func (b *builder) finish(name string, camera renderer.CameraConfig, sampling renderer.SamplingConfig, background renderer.Background) (*Scene, error) {
	if b.err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, b.err)
	}

	start := time.Now()
	world := geometry.NewBVH(b.objects, b.sampler)
	stats := world.Stats()
	logger.Infof("scene %s: BVH with %d shapes, %d nodes, %d leaves, max depth %d, avg depth %.1f (%s)",
		name, stats.TotalShapes, stats.TotalNodes, stats.LeafNodes, stats.MaxDepth, stats.AvgDepth, time.Since(start))

	return &Scene{
		Name:           name,
		Objects:        b.objects,
		World:          world,
		CameraConfig:   camera,
		SamplingConfig: sampling,
		Background:     background,
	}, nil
}

// builder collects scene objects and remembers the first construction error,
// so scene functions read as a flat list of primitives
type builder struct {
	sampler core.Sampler
	objects []geometry.Hittable
	err     error
}

func newBuilder(sampler core.Sampler) *builder {
	return &builder{sampler: sampler}
}

func (b *builder) add(objects ...geometry.Hittable) {
	if b.err != nil {
		return
	}
	b.objects = append(b.objects, objects...)
}

func (b *builder) sphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	if b.err != nil {
		return nil
	}
	s, err := geometry.NewSphere(center, radius, mat)
	b.err = err
	return s
}

func (b *builder) movingSphere(center1, center2 core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	if b.err != nil {
		return nil
	}
	s, err := geometry.NewMovingSphere(center1, center2, radius, mat)
	b.err = err
	return s
}

func (b *builder) dielectric(refractiveIndex float64) material.Material {
	if b.err != nil {
		return nil
	}
	d, err := material.NewDielectric(refractiveIndex)
	if err != nil {
		b.err = err
		return nil
	}
	return d
}

func (b *builder) checker(scale float64, even, odd core.Vec3) material.Texture {
	if b.err != nil {
		return nil
	}
	c, err := material.NewCheckerTextureFromColors(scale, even, odd)
	if err != nil {
		b.err = err
		return nil
	}
	return c
}

func (b *builder) quad(corner, u, v core.Vec3, mat material.Material) *geometry.Quad {
	if b.err != nil {
		return nil
	}
	q, err := geometry.NewQuad(corner, u, v, mat)
	b.err = err
	return q
}

func (b *builder) box(a, c core.Vec3, mat material.Material) *geometry.HittableList {
	if b.err != nil {
		return nil
	}
	box, err := geometry.NewBox(a, c, mat)
	b.err = err
	return box
}

func (b *builder) medium(boundary geometry.Hittable, density float64, albedo core.Vec3) *geometry.ConstantMedium {
	if b.err != nil {
		return nil
	}
	m, err := geometry.NewConstantMediumFromColor(boundary, density, albedo)
	b.err = err
	return m
}

// placed rotates object about the y axis by degrees, then moves it by offset
func (b *builder) placed(object geometry.Hittable, degrees float64, offset core.Vec3) geometry.Hittable {
	if b.err != nil {
		return nil
	}
	return geometry.NewTranslate(geometry.NewRotateY(object, degrees), offset)
}
