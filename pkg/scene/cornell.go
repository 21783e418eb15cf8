package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// cornellCamera looks into the open side of the 555-unit box
func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 1.0,
		VFov:        40.0,
	}
}

// NewQuadsScene creates five colored quads surrounding the view axis
func NewQuadsScene(sampler core.Sampler, opts Options) (*Scene, error) {
	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	b := newBuilder(sampler)
	b.add(
		b.quad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		b.quad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		b.quad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		b.quad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		b.quad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)

	camera := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 9),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        80,
	}
	return b.finish("quads", camera, renderer.DefaultSamplingConfig(), skyBackground)
}

// NewSimpleLightScene creates marble spheres lit only by emitters
func NewSimpleLightScene(sampler core.Sampler, opts Options) (*Scene, error) {
	b := newBuilder(sampler)
	perlinSpheres(b)

	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	b.add(
		b.sphere(core.NewVec3(0, 7, 0), 2, light),
		b.quad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), light),
	)

	camera := distantCamera()
	camera.Center = core.NewVec3(26, 3, 6)
	camera.LookAt = core.NewVec3(0, 2, 0)
	return b.finish("simple-light", camera, renderer.DefaultSamplingConfig(), blackBackground)
}

// cornellWalls adds the five walls of the classic Cornell box (standard 555x555x555 units)
// with the given ceiling light quad
func cornellWalls(b *builder, lightCorner, lightU, lightV core.Vec3, emission core.Vec3) *material.Lambertian {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(emission)

	b.add(
		b.quad(core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), green), // Right wall
		b.quad(core.NewVec3(0, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), red),     // Left wall
		b.quad(lightCorner, lightU, lightV, light),
		b.quad(core.NewVec3(0, 0, 0), core.NewVec3(555, 0, 0), core.NewVec3(0, 0, 555), white),         // Floor
		b.quad(core.NewVec3(555, 555, 555), core.NewVec3(-555, 0, 0), core.NewVec3(0, 0, -555), white), // Ceiling
		b.quad(core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), core.NewVec3(0, 555, 0), white),       // Back wall
	)
	return white
}

// cornellBoxes returns the tall and short boxes, rotated and placed in the room
func cornellBoxes(b *builder, mat material.Material) (tall, short geometry.Hittable) {
	tall = b.placed(b.box(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat), 15, core.NewVec3(265, 0, 295))
	short = b.placed(b.box(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat), -18, core.NewVec3(130, 0, 65))
	return tall, short
}

// NewCornellBoxScene creates a Cornell box with two rotated boxes
func NewCornellBoxScene(sampler core.Sampler, opts Options) (*Scene, error) {
	b := newBuilder(sampler)
	white := cornellWalls(b,
		core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105),
		core.NewVec3(15, 15, 15),
	)
	tall, short := cornellBoxes(b, white)
	b.add(tall, short)

	sampling := renderer.SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50, Seed: 42}
	return b.finish("cornell-box", cornellCamera(), sampling, blackBackground)
}

// NewCornellSmokeScene creates a Cornell box whose boxes are filled with smoke
func NewCornellSmokeScene(sampler core.Sampler, opts Options) (*Scene, error) {
	b := newBuilder(sampler)
	white := cornellWalls(b,
		core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305),
		core.NewVec3(7, 7, 7),
	)
	tall, short := cornellBoxes(b, white)
	b.add(
		b.medium(tall, 0.01, core.NewVec3(0, 0, 0)),
		b.medium(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	sampling := renderer.SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50, Seed: 42}
	return b.finish("cornell-smoke", cornellCamera(), sampling, blackBackground)
}
