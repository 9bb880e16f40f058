package material

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// TextureKind enumerates the supported texture variants
type TextureKind int

const (
	// TextureConstant returns Color1 everywhere
	TextureConstant TextureKind = iota
	// TextureCheckerboard alternates Color1 and Color2 on a unit grid in scaled uv space
	TextureCheckerboard
	// TextureGrid draws Color2 lines of LineWidth over a Color1 background
	TextureGrid
	// TextureGradient interpolates from Color1 at u=0 to Color2 at u=1
	TextureGradient
	// TextureBitmap looks up an image with nearest-neighbor filtering
	TextureBitmap
)

// String returns the scene-file name of the kind
func (k TextureKind) String() string {
	switch k {
	case TextureConstant:
		return "constant"
	case TextureCheckerboard:
		return "checkerboard"
	case TextureGrid:
		return "grid"
	case TextureGradient:
		return "gradient"
	case TextureBitmap:
		return "bitmap"
	default:
		return "unknown"
	}
}

// Bitmap is a linear RGB image stored row-major from the top-left corner
type Bitmap struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x]
}

// At returns the pixel at (x, y)
func (b *Bitmap) At(x, y int) core.Color {
	return b.Pixels[y*b.Width+x]
}

// Texture maps surface (u, v) coordinates to a color
type Texture struct {
	Kind      TextureKind
	Color1    core.Color
	Color2    core.Color
	Scale     core.Vec2
	LineWidth float64
	Image     *Bitmap
}

// NewConstantTexture creates a texture with a single color
func NewConstantTexture(c core.Color) *Texture {
	return &Texture{Kind: TextureConstant, Color1: c, Scale: core.NewVec2(1, 1)}
}

// NewCheckerboardTexture creates a procedural checkerboard with scale checks per unit of uv
func NewCheckerboardTexture(color1, color2 core.Color, scale core.Vec2) *Texture {
	return &Texture{Kind: TextureCheckerboard, Color1: color1, Color2: color2, Scale: scale}
}

// NewGridTexture creates grid lines of the given width (fraction of a cell) over a background
func NewGridTexture(background, line core.Color, lineWidth float64, scale core.Vec2) *Texture {
	return &Texture{Kind: TextureGrid, Color1: background, Color2: line, LineWidth: lineWidth, Scale: scale}
}

// NewGradientTexture creates a horizontal gradient from color1 (u=0) to color2 (u=1)
func NewGradientTexture(color1, color2 core.Color) *Texture {
	return &Texture{Kind: TextureGradient, Color1: color1, Color2: color2, Scale: core.NewVec2(1, 1)}
}

// NewBitmapTexture creates an image texture
func NewBitmapTexture(image *Bitmap, scale core.Vec2) *Texture {
	return &Texture{Kind: TextureBitmap, Image: image, Scale: scale}
}

// Eval returns the color at the given uv coordinates
func (t *Texture) Eval(uv core.Vec2) core.Color {
	switch t.Kind {
	case TextureConstant:
		return t.Color1
	case TextureCheckerboard:
		p := uv.MultiplyVec(t.Scale)
		if (int(math.Floor(p.X))+int(math.Floor(p.Y)))&1 == 0 {
			return t.Color1
		}
		return t.Color2
	case TextureGrid:
		p := uv.MultiplyVec(t.Scale)
		if fract(p.X) < t.LineWidth || fract(p.Y) < t.LineWidth {
			return t.Color2
		}
		return t.Color1
	case TextureGradient:
		s := math.Max(0, math.Min(1, uv.X))
		return t.Color1.Multiply(1 - s).Add(t.Color2.Multiply(s))
	case TextureBitmap:
		return t.lookup(uv.MultiplyVec(t.Scale))
	default:
		return core.Black
	}
}

// lookup samples the bitmap using nearest-neighbor filtering with wrapping
func (t *Texture) lookup(uv core.Vec2) core.Color {
	img := t.Image
	if img == nil || img.Width == 0 || img.Height == 0 {
		return core.Black
	}

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := int(fract(uv.X) * float64(img.Width))
	y := int((1.0 - fract(uv.Y)) * float64(img.Height))

	x = min(max(x, 0), img.Width-1)
	y = min(max(y, 0), img.Height-1)
	return img.At(x, y)
}

// Mean returns the average color over the unit uv square, used for emitter power estimates
func (t *Texture) Mean() core.Color {
	switch t.Kind {
	case TextureConstant:
		return t.Color1
	case TextureCheckerboard, TextureGradient:
		return t.Color1.Add(t.Color2).Multiply(0.5)
	case TextureGrid:
		w := math.Max(0, math.Min(1, t.LineWidth))
		lineFrac := 1 - (1-w)*(1-w)
		return t.Color1.Multiply(1 - lineFrac).Add(t.Color2.Multiply(lineFrac))
	case TextureBitmap:
		if t.Image == nil || len(t.Image.Pixels) == 0 {
			return core.Black
		}
		sum := core.Black
		for _, p := range t.Image.Pixels {
			sum = sum.Add(p)
		}
		return sum.Multiply(1 / float64(len(t.Image.Pixels)))
	default:
		return core.Black
	}
}

// fract returns x - floor(x)
func fract(x float64) float64 {
	return x - math.Floor(x)
}
