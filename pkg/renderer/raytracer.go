package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
)

// rayEpsilon keeps bounce rays from re-hitting the surface they leave
const rayEpsilon = 0.001

// ErrInvalidSampling is returned for sampling configurations that cannot render
var ErrInvalidSampling = errors.New("invalid sampling configuration")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed; each scanline derives its own generator from it
	NumWorkers      int   // Parallel row workers; 0 uses every CPU
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	return result
}

// Validate reports whether the configuration can render
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel %d: %w", c.SamplesPerPixel, ErrInvalidSampling)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth %d: %w", c.MaxDepth, ErrInvalidSampling)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("workers %d: %w", c.NumWorkers, ErrInvalidSampling)
	}
	return nil
}

// Raytracer estimates per-pixel radiance by recursively tracing random paths
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	background Background
	config     SamplingConfig
	logger     log.Logger
}

// NewRaytracer creates a new raytracer over an immutable world
func NewRaytracer(world geometry.Hittable, camera *Camera, background Background, config SamplingConfig, logger log.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New("renderer")
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		background: background,
		config:     config,
		logger:     logger,
	}, nil
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// RayColor returns the radiance arriving along ray with at most depth bounces
func (rt *Raytracer) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	var rays int64
	return rt.rayColorRecursive(ray, depth, sampler, &rays)
}

// rayColorRecursive is RayColor with a counter of traced rays
func (rt *Raytracer) rayColorRecursive(ray core.Ray, depth int, sampler core.Sampler, rays *int64) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	*rays++

	var hit material.HitRecord
	if !rt.world.Hit(ray, core.NewInterval(rayEpsilon, math.Inf(1)), &hit, sampler) {
		return rt.background.Radiance(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		// Absorbed: only light sources contribute
		return material.EmittedLight(hit)
	}

	return scatter.Attenuation.MultiplyVec(rt.rayColorRecursive(scatter.Scattered, depth-1, sampler, rays))
}

// RenderPixel returns the linear radiance averaged over SamplesPerPixel rays through pixel (i, j)
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler) core.Vec3 {
	var rays int64
	return rt.renderPixel(i, j, sampler, &rays)
}

func (rt *Raytracer) renderPixel(i, j int, sampler core.Sampler, rays *int64) core.Vec3 {
	var colorAccum core.Vec3
	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		colorAccum = colorAccum.Add(rt.rayColorRecursive(ray, rt.config.MaxDepth, sampler, rays))
	}
	return colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
}

// renderRow renders scanline j into pixels using a generator derived from the seed and row
func (rt *Raytracer) renderRow(j int, pixels []core.Vec3) WorkerStats {
	width, _ := rt.camera.ImageSize()
	sampler := core.NewSeededSampler(rowSeed(rt.config.Seed, j))

	stats := WorkerStats{Rows: 1}
	for i := 0; i < width; i++ {
		pixels[i] = rt.renderPixel(i, j, sampler, &stats.Rays)
	}
	stats.Pixels = width
	stats.Samples = int64(width) * int64(rt.config.SamplesPerPixel)
	return stats
}

// rowSeed mixes the base seed with the row index so every scanline has an independent stream
func rowSeed(seed int64, row int) int64 {
	return int64(uint64(seed)*6364136223846793005 + uint64(row)*1442695040888963407 + 1)
}

// Render traces every pixel and returns the gamma-corrected image.
// The result depends only on the scene, camera and sampling config, not on the worker count.
func (rt *Raytracer) Render() (*image.RGBA, RenderStats) {
	width, height := rt.camera.ImageSize()
	start := time.Now()

	rows := make([][]core.Vec3, height)
	for j := range rows {
		rows[j] = make([]core.Vec3, width)
	}

	pool := NewWorkerPool(rt, rt.config.NumWorkers, height)
	pool.Start()
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j, Pixels: rows[j]})
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Workers:         make([]WorkerStats, pool.GetNumWorkers()),
	}

	logEvery := max(1, height/10)
	for remaining := height; remaining > 0; remaining-- {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Workers[result.WorkerID].add(result.Stats)
		if remaining%logEvery == 0 {
			rt.logger.Debugf("scanlines remaining: %d", remaining)
		}
	}
	pool.Stop()
	stats.Duration = time.Since(start)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j, row := range rows {
		for i, c := range row {
			img.SetRGBA(i, j, vec3ToColor(c))
		}
	}

	rt.logger.Infof("rendered %dx%d at %d spp in %s", width, height, rt.config.SamplesPerPixel, stats.Duration)
	return img, stats
}

// vec3ToColor converts linear radiance to 8-bit RGBA with gamma 2 and clamping to [0, 0.999]
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 0.999)

	return color.RGBA{
		R: uint8(256 * colorVec.X),
		G: uint8(256 * colorVec.Y),
		B: uint8(256 * colorVec.Z),
		A: 255,
	}
}
