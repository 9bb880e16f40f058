package core

import "math"

// Ray represents a half-line with a unit direction and a parametric range [TMin, TMax]
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray from origin along the normalized direction with an unbounded range
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
		TMin:      Epsilon,
		TMax:      math.Inf(1),
	}
}

// NewSegment creates a ray from origin that stops just short of target
func NewSegment(origin, target Vec3) Ray {
	d := target.Subtract(origin)
	dist := d.Length()
	return Ray{
		Origin:    origin,
		Direction: d.Multiply(1 / dist),
		TMin:      Epsilon,
		TMax:      dist * (1 - Epsilon),
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// ClippedTo returns a copy of the ray with TMax reduced to t
func (r Ray) ClippedTo(t float64) Ray {
	r.TMax = min(r.TMax, t)
	return r
}

// Range returns the parametric interval of the ray
func (r Ray) Range() Interval {
	return Interval{Min: r.TMin, Max: r.TMax}
}

// InverseDirection returns the component-wise reciprocal of the direction
func (r Ray) InverseDirection() Vec3 {
	return Vec3{1 / r.Direction.X, 1 / r.Direction.Y, 1 / r.Direction.Z}
}
