package output

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// PreviewOptions control the tone mapping of a PNG preview
type PreviewOptions struct {
	Exposure float64 // Stops of exposure applied before display encoding
	Width    int     // Output width; 0 keeps the native resolution
}

// DefaultPreviewOptions returns sensible default values
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{Exposure: 0, Width: 0}
}

// ToneMap converts radiance to an 8-bit sRGB image, clamping values above one.
func ToneMap(src Source, exposure float64) *image.NRGBA {
	width, height := src.Width(), src.Height()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	scale := math.Exp2(exposure)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := src.Eval(x, y).Multiply(scale)
			img.SetNRGBA(x, y, color.NRGBA{
				R: encodeSRGB(c.R),
				G: encodeSRGB(c.G),
				B: encodeSRGB(c.B),
				A: 255,
			})
		}
	}
	return img
}

// Preview tone maps src and resamples it to the requested width.
func Preview(src Source, opts PreviewOptions) image.Image {
	img := ToneMap(src, opts.Exposure)
	if opts.Width <= 0 || opts.Width == img.Bounds().Dx() {
		return img
	}

	height := max(1, int(math.Round(float64(img.Bounds().Dy())*float64(opts.Width)/float64(img.Bounds().Dx()))))
	dst := image.NewNRGBA(image.Rect(0, 0, opts.Width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// WritePreview writes a tone mapped PNG of src.
func WritePreview(path string, src Source, opts PreviewOptions) error {
	img := Preview(src, opts)
	err := writeFile(path, func(f *os.File) error {
		return png.Encode(f, img)
	})
	if err == nil {
		logger.Noticef("wrote %dx%d preview to %s", img.Bounds().Dx(), img.Bounds().Dy(), path)
	}
	return err
}

func encodeSRGB(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	if v <= 0.0031308 {
		v *= 12.92
	} else {
		v = 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return uint8(math.Round(v * 255))
}
