package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Raster is a decoded 8-bit RGB image that textures can sample
type Raster interface {
	Width() int
	Height() int
	// PixelData returns the RGB bytes at column x, row y (row 0 is the top)
	PixelData(x, y int) [3]byte
}

// debugCyan marks surfaces whose image could not be loaded
var debugCyan = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Image Raster
}

// NewImageTexture creates a new image texture; a nil image renders as solid cyan
func NewImageTexture(image Raster) *ImageTexture {
	return &ImageTexture{Image: image}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Image == nil || t.Image.Height() <= 0 || t.Image.Width() <= 0 {
		return debugCyan
	}

	unit := core.NewInterval(0, 1)
	u := unit.Clamp(uv.X)
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	v := 1.0 - unit.Clamp(uv.Y)

	width, height := t.Image.Width(), t.Image.Height()
	x := min(int(u*float64(width)), width-1)
	y := min(int(v*float64(height)), height-1)

	pixel := t.Image.PixelData(x, y)
	const colorScale = 1.0 / 255.0
	return core.NewVec3(
		colorScale*float64(pixel[0]),
		colorScale*float64(pixel[1]),
		colorScale*float64(pixel[2]),
	)
}
