package renderer

import (
	"image"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// weightEpsilon is the smallest accumulated weight that is divided by.
const weightEpsilon = 1e-9

// Pixel accumulates weighted radiance samples.
type Pixel struct {
	Sum    core.Color
	Weight float64
}

// AddSample adds one radiance sample with the given weight.
func (p *Pixel) AddSample(c core.Color, weight float64) {
	p.Sum = p.Sum.Add(c.Multiply(weight))
	p.Weight += weight
}

// Add merges another accumulator into p.
func (p *Pixel) Add(other Pixel) {
	p.Sum = p.Sum.Add(other.Sum)
	p.Weight += other.Weight
}

// Eval returns the current estimate for this pixel
func (p Pixel) Eval() core.Color {
	if p.Weight < weightEpsilon {
		return p.Sum
	}
	return p.Sum.Divide(p.Weight)
}

// Block is a rectangular grid of pixel accumulators in image coordinates.
// A block covering the whole resolution is the render image.
type Block struct {
	Bounds image.Rectangle
	Pixels []Pixel
}

// NewBlock allocates an empty block covering bounds.
func NewBlock(bounds image.Rectangle) *Block {
	return &Block{
		Bounds: bounds,
		Pixels: make([]Pixel, bounds.Dx()*bounds.Dy()),
	}
}

// NewImage allocates a full resolution image block.
func NewImage(width, height int) *Block {
	return NewBlock(image.Rect(0, 0, width, height))
}

// Width returns the block width in pixels.
func (b *Block) Width() int { return b.Bounds.Dx() }

// Height returns the block height in pixels.
func (b *Block) Height() int { return b.Bounds.Dy() }

func (b *Block) index(x, y int) int {
	return (y-b.Bounds.Min.Y)*b.Bounds.Dx() + (x - b.Bounds.Min.X)
}

// At returns the accumulator for pixel (x, y) in image coordinates.
func (b *Block) At(x, y int) *Pixel {
	return &b.Pixels[b.index(x, y)]
}

// Eval returns the estimate for pixel (x, y) in image coordinates.
func (b *Block) Eval(x, y int) core.Color {
	return b.Pixels[b.index(x, y)].Eval()
}

// Add accumulates the overlapping region of other into b.
func (b *Block) Add(other *Block) {
	r := b.Bounds.Intersect(other.Bounds)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.At(x, y).Add(*other.At(x, y))
		}
	}
}
