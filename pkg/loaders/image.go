package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ErrEmptyImage is returned for images with no pixels
var ErrEmptyImage = errors.New("image has no pixels")

// ImageData holds decoded 8-bit RGB pixels in row-major order, top row first
type ImageData struct {
	width  int
	height int
	pixels []byte
}

// Width returns the image width in pixels
func (d *ImageData) Width() int { return d.width }

// Height returns the image height in pixels
func (d *ImageData) Height() int { return d.height }

// PixelData returns the RGB bytes at (x, y). Coordinates are clamped to the image.
func (d *ImageData) PixelData(x, y int) [3]byte {
	x = min(max(x, 0), d.width-1)
	y = min(max(y, 0), d.height-1)
	i := 3 * (y*d.width + x)
	return [3]byte{d.pixels[i], d.pixels[i+1], d.pixels[i+2]}
}

// LoadImage decodes a PNG, JPEG, BMP, TIFF or WebP file, honoring EXIF orientation.
// When maxSize is positive, images larger than maxSize on either side are
// downscaled to fit while keeping their aspect ratio.
func LoadImage(filename string, maxSize int) (*ImageData, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrEmptyImage)
	}

	if maxSize > 0 && (bounds.Dx() > maxSize || bounds.Dy() > maxSize) {
		img = resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Bilinear)
	}

	return FromImage(img), nil
}

// FromImage converts any decoded image to packed RGB bytes, dropping alpha
func FromImage(img image.Image) *ImageData {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	data := &ImageData{
		width:  width,
		height: height,
		pixels: make([]byte, 3*width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := nrgba.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)
			dst := 3 * (y*width + x)
			copy(data.pixels[dst:dst+3], nrgba.Pix[src:src+3])
		}
	}
	return data
}
