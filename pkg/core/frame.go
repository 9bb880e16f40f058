package core

import "math"

// Frame is an orthonormal basis with N as the local +Z axis
type Frame struct {
	S, T, N Vec3
}

// NewFrame builds a frame around the unit normal n (Duff et al. 2017)
func NewFrame(n Vec3) Frame {
	sign := math.Copysign(1, n.Z)
	a := -1 / (sign + n.Z)
	b := n.X * n.Y * a
	s := Vec3{1 + sign*n.X*n.X*a, sign * b, -sign * n.X}
	t := Vec3{b, sign + n.Y*n.Y*a, -n.Y}
	return Frame{S: s, T: t, N: n}
}

// ToLocal expresses a world-space vector in the frame
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.S), v.Dot(f.T), v.Dot(f.N)}
}

// ToWorld expresses a local vector in world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.S.Multiply(v.X).Add(f.T.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// CosTheta returns the cosine between a local direction and the normal
func CosTheta(v Vec3) float64 {
	return v.Z
}

// SameHemisphere reports whether two local directions lie on the same side of the surface
func SameHemisphere(a, b Vec3) bool {
	return a.Z*b.Z > 0
}
