package core

// Color is a linear RGB tri-stimulus value
type Color struct {
	R, G, B float64
}

// Black is the additive identity
var Black = Color{}

// White is the multiplicative identity
var White = Color{1, 1, 1}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns a color with all channels set to v
func Gray(v float64) Color {
	return Color{v, v, v}
}

// Add returns the channel-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the channel-wise product
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Divide scales every channel by 1/scalar, returning black for a zero divisor
func (c Color) Divide(scalar float64) Color {
	if scalar == 0 {
		return Black
	}
	return c.Multiply(1 / scalar)
}

// MaxChannel returns the largest channel value
func (c Color) MaxChannel() float64 {
	return max(c.R, c.G, c.B)
}

// IsBlack reports whether every channel is zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Luminance returns the Rec. 709 luminance
func (c Color) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Clamp returns a color with channels clamped to [lo, hi]
func (c Color) Clamp(lo, hi float64) Color {
	return Color{
		R: max(lo, min(hi, c.R)),
		G: max(lo, min(hi, c.G)),
		B: max(lo, min(hi, c.B)),
	}
}

// FromVec3 reinterprets a vector as a color
func FromVec3(v Vec3) Color {
	return Color{v.X, v.Y, v.Z}
}
