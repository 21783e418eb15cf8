package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const (
	finalBoxesPerSide = 20
	finalSphereCount  = 1000
)

// NewFinalScene creates the showcase scene: a floor of random-height boxes, a
// moving sphere, glass, metal, fog, noise and image textures, and a rotated
// cluster of small spheres
func NewFinalScene(sampler core.Sampler, opts Options) (*Scene, error) {
	earth, err := loadTexture(opts, EarthTexture)
	if err != nil {
		return nil, fmt.Errorf("scene final: %w", err)
	}

	b := newBuilder(sampler)

	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	floor := newBuilder(sampler)
	for i := 0; i < finalBoxesPerSide; i++ {
		for j := 0; j < finalBoxesPerSide; j++ {
			const w = 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomInRange(sampler, 1, 101)
			floor.add(floor.box(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	if floor.err != nil {
		return nil, fmt.Errorf("scene final: %w", floor.err)
	}
	b.add(geometry.NewBVH(floor.objects, sampler))

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	b.add(b.quad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), light))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	b.add(
		b.movingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		b.sphere(core.NewVec3(260, 150, 45), 50, b.dielectric(1.5)),
		b.sphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass shell around blue fog
	boundary := b.sphere(core.NewVec3(360, 150, 145), 70, b.dielectric(1.5))
	b.add(boundary, b.medium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over everything
	mist := b.sphere(core.NewVec3(0, 0, 0), 5000, b.dielectric(1.5))
	b.add(b.medium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	b.add(
		b.sphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earth)),
		b.sphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(sampler, 0.2))),
	)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := newBuilder(sampler)
	for i := 0; i < finalSphereCount; i++ {
		cluster.add(cluster.sphere(core.RandomVec3InRange(sampler, 0, 165), 10, white))
	}
	if cluster.err != nil {
		return nil, fmt.Errorf("scene final: %w", cluster.err)
	}
	b.add(b.placed(geometry.NewBVH(cluster.objects, sampler), 15, core.NewVec3(-100, 270, 395)))

	camera := renderer.CameraConfig{
		Center:      core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       800,
		AspectRatio: 1.0,
		VFov:        40,
	}
	sampling := renderer.SamplingConfig{SamplesPerPixel: 250, MaxDepth: 40, Seed: 42}
	return b.finish("final", camera, sampling, blackBackground)
}
