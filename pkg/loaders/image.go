package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/material"
)

// LoadImage loads a PNG, JPEG, BMP or TIFF image as a bitmap texture source.
// Unless linear is set the stored values are treated as sRGB encoded and
// converted to linear radiance.
func LoadImage(filename string, linear bool) (*material.Bitmap, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loader: read %q: %w", filename, err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("loader: decode %q: %w", filename, err)
	}

	bitmap := ImageToBitmap(img, linear)
	logger.Debugf("loaded %s bitmap %s (%dx%d)", format, filename, bitmap.Width, bitmap.Height)
	return bitmap, nil
}

// ImageToBitmap converts a decoded image into a row-major bitmap with the
// first row at the top of the image.
func ImageToBitmap(img image.Image, linear bool) *material.Bitmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	convert := srgbToLinear
	if linear {
		convert = func(v float64) float64 { return v }
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewColor(
				convert(float64(r)/65535.0),
				convert(float64(g)/65535.0),
				convert(float64(b)/65535.0),
			)
		}
	}

	return &material.Bitmap{Width: width, Height: height, Pixels: pixels}
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
