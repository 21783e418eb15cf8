package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidCamera is returned for camera configurations that cannot produce rays
var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height ratio
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter; 0 disables depth of field
	FocusDistance float64   // Distance to the plane of perfect focus; 0 uses |LookAt - Center|
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if !override.Center.Equals(zero) {
		result.Center = override.Center
	}
	if !override.LookAt.Equals(zero) {
		result.LookAt = override.LookAt
	}
	if !override.Up.Equals(zero) {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Camera generates rays for rendering using a thin-lens model
type Camera struct {
	config       CameraConfig
	imageHeight  int
	center       core.Vec3
	pixel00      core.Vec3 // Location of pixel (0, 0), the top-left pixel center
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Horizontal lens radius vector
	defocusDiskV core.Vec3 // Vertical lens radius vector
	lensRadius   float64
}

// NewCamera creates a camera with the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width < 1 {
		return nil, fmt.Errorf("width %d: %w", config.Width, ErrInvalidCamera)
	}
	if !(config.AspectRatio > 0) || math.IsInf(config.AspectRatio, 0) {
		return nil, fmt.Errorf("aspect ratio %v: %w", config.AspectRatio, ErrInvalidCamera)
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		return nil, fmt.Errorf("vertical fov %v: %w", config.VFov, ErrInvalidCamera)
	}
	if config.Aperture < 0 || config.FocusDistance < 0 {
		return nil, fmt.Errorf("aperture %v, focus distance %v: %w", config.Aperture, config.FocusDistance, ErrInvalidCamera)
	}

	viewDirection := config.Center.Subtract(config.LookAt)
	if viewDirection.NearZero() {
		return nil, fmt.Errorf("center and look-at coincide at %v: %w", config.Center, ErrInvalidCamera)
	}

	c := &Camera{config: config, center: config.Center}

	c.imageHeight = int(float64(config.Width) / config.AspectRatio)
	if c.imageHeight < 1 {
		c.imageHeight = 1
	}

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = viewDirection.Length()
	}

	// Camera coordinate frame
	c.w = viewDirection.Normalize()
	side := config.Up.Cross(c.w)
	if side.NearZero() {
		return nil, fmt.Errorf("up vector %v is parallel to the view direction: %w", config.Up, ErrInvalidCamera)
	}
	c.u = side.Normalize()
	c.v = c.w.Cross(c.u)

	// Viewport dimensions on the focus plane
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(c.imageHeight)

	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Multiply(-viewportHeight)

	c.pixelDeltaU = viewportU.Multiply(1.0 / float64(config.Width))
	c.pixelDeltaV = viewportV.Multiply(1.0 / float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00 = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	c.lensRadius = config.Aperture / 2
	c.defocusDiskU = c.u.Multiply(c.lensRadius)
	c.defocusDiskV = c.v.Multiply(c.lensRadius)

	return c, nil
}

// ImageSize returns the output image dimensions
func (c *Camera) ImageSize() (width, height int) {
	return c.config.Width, c.imageHeight
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns a randomly jittered ray through pixel (i, j), where j=0 is the top row.
// The ray carries a uniform random time for motion blur.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.lensRadius > 0 {
		p := core.RandomInUnitDisk(sampler)
		origin = c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
