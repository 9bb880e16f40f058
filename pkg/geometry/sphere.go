package geometry

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// Sphere is an analytic sphere
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// BBox returns the axis-aligned bounding box for this sphere
func (s Sphere) BBox() core.BBox {
	r := core.Splat3(s.Radius)
	return core.NewBBox(s.Center.Subtract(r), s.Center.Add(r))
}

// hitT solves the ray-sphere quadratic and returns the nearest root inside the ray range
func (s Sphere) hitT(ray core.Ray) (float64, bool) {
	// Quadratic equation coefficients: at² + bt + c = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	b := 2 * ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if root < ray.TMin || root > ray.TMax {
		root = (-b + sqrtD) / (2 * a)
		if root < ray.TMin || root > ray.TMax {
			return 0, false
		}
	}
	return root, true
}

// Intersects reports whether the ray hits the sphere within its range
func (s Sphere) Intersects(ray core.Ray) bool {
	_, ok := s.hitT(ray)
	return ok
}

// Intersect returns a partial interaction holding t and the hit point
func (s Sphere) Intersect(ray core.Ray) (Interaction, bool) {
	t, ok := s.hitT(ray)
	if !ok {
		return Interaction{}, false
	}
	return Interaction{T: t, P: ray.At(t)}, true
}

// HitInfo fills the outward normal and equirectangular uv, projecting P back onto the surface
func (s Sphere) HitInfo(it *Interaction) {
	n := it.P.Subtract(s.Center).Normalize()
	it.N = n
	it.P = s.Center.Add(n.Multiply(s.Radius))
	it.UV = core.DirectionToEquirect(n)
}

// SampleSurface returns a uniformly distributed point on the sphere
func (s Sphere) SampleSurface(sample core.Vec2) Interaction {
	n := core.SquareToUniformSphere(sample)
	return Interaction{
		P:  s.Center.Add(n.Multiply(s.Radius)),
		N:  n,
		UV: core.DirectionToEquirect(n),
	}
}

// SurfaceArea returns 4πr²
func (s Sphere) SurfaceArea() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}
