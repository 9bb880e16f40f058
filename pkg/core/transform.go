package core

import "math"

// Mat3 is a row-major 3x3 matrix
type Mat3 [3][3]float64

// Identity3 returns the identity matrix
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul returns m * other
func (m Mat3) Mul(other Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*other[0][j] + m[i][1]*other[1][j] + m[i][2]*other[2][j]
		}
	}
	return out
}

// Apply returns m * v
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix
func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Inverse returns the algebraic inverse via the adjugate. Singular matrices yield the zero matrix.
func (m Mat3) Inverse() Mat3 {
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	det := m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02
	if det == 0 {
		return Mat3{}
	}
	inv := 1 / det
	return Mat3{
		{c00 * inv, (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv, (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv},
		{c01 * inv, (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv, (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv},
		{c02 * inv, (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv, (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv},
	}
}

// affine is a linear map followed by a translation
type affine struct {
	linear      Mat3
	translation Vec3
}

func (a affine) point(p Vec3) Vec3 {
	return a.linear.Apply(p).Add(a.translation)
}

// then returns the affine map that applies a first and b second
func (a affine) then(b affine) affine {
	return affine{
		linear:      b.linear.Mul(a.linear),
		translation: b.linear.Apply(a.translation).Add(b.translation),
	}
}

// Transform is an affine map (rotation, uniform scale, translation) stored with its inverse
type Transform struct {
	fwd affine
	inv affine
}

// IdentityTransform returns the transform that leaves everything unchanged
func IdentityTransform() Transform {
	id := affine{linear: Identity3()}
	return Transform{fwd: id, inv: id}
}

// Translate returns a translation by offset
func Translate(offset Vec3) Transform {
	return Transform{
		fwd: affine{linear: Identity3(), translation: offset},
		inv: affine{linear: Identity3(), translation: offset.Negate()},
	}
}

// Scale returns a uniform scale about the origin. A zero factor is treated as identity.
func Scale(factor float64) Transform {
	if factor == 0 {
		return IdentityTransform()
	}
	s := Identity3()
	si := Identity3()
	for i := 0; i < 3; i++ {
		s[i][i] = factor
		si[i][i] = 1 / factor
	}
	return Transform{fwd: affine{linear: s}, inv: affine{linear: si}}
}

// Rotate returns a rotation of degrees around axis (Rodrigues' formula)
func Rotate(axis Vec3, degrees float64) Transform {
	a := axis.Normalize()
	theta := degrees * math.Pi / 180
	c, s := math.Cos(theta), math.Sin(theta)
	t := 1 - c
	r := Mat3{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c},
	}
	return Transform{fwd: affine{linear: r}, inv: affine{linear: r.Transpose()}}
}

// LookAt returns the local-to-world transform of a frame at origin whose +Z points at target and whose +Y is aligned with up
func LookAt(origin, target, up Vec3) Transform {
	forward := target.Subtract(origin).Normalize()
	right := up.Cross(forward).Normalize()
	if right.LengthSquared() == 0 {
		right = NewFrame(forward).S
	}
	newUp := forward.Cross(right)
	r := Mat3{
		{right.X, newUp.X, forward.X},
		{right.Y, newUp.Y, forward.Y},
		{right.Z, newUp.Z, forward.Z},
	}
	fwd := affine{linear: r, translation: origin}
	rt := r.Transpose()
	inv := affine{linear: rt, translation: rt.Apply(origin).Negate()}
	return Transform{fwd: fwd, inv: inv}
}

// Then returns the transform that applies t first and next second
func (t Transform) Then(next Transform) Transform {
	return Transform{
		fwd: t.fwd.then(next.fwd),
		inv: next.inv.then(t.inv),
	}
}

// Compose chains transforms left to right: the first element is applied first
func Compose(transforms ...Transform) Transform {
	out := IdentityTransform()
	for _, t := range transforms {
		out = out.Then(t)
	}
	return out
}

// Inverse returns the inverse transform
func (t Transform) Inverse() Transform {
	return Transform{fwd: t.inv, inv: t.fwd}
}

// Point transforms a position
func (t Transform) Point(p Vec3) Vec3 {
	return t.fwd.point(p)
}

// Vector transforms a direction, ignoring translation
func (t Transform) Vector(v Vec3) Vec3 {
	return t.fwd.linear.Apply(v)
}

// Normal transforms a surface normal with the inverse transpose and renormalizes it
func (t Transform) Normal(n Vec3) Vec3 {
	return t.inv.linear.Transpose().Apply(n).Normalize()
}

// ScaleFactor returns the uniform scale of the transform
func (t Transform) ScaleFactor() float64 {
	return t.Vector(Vec3{1, 0, 0}).Length()
}

// Ray transforms a ray, rescaling its parametric range so world-space hit points are unchanged
func (t Transform) Ray(r Ray) Ray {
	d := t.Vector(r.Direction)
	length := d.Length()
	if length == 0 {
		return r
	}
	return Ray{
		Origin:    t.Point(r.Origin),
		Direction: d.Multiply(1 / length),
		TMin:      r.TMin,
		TMax:      r.TMax * length,
	}
}

// Affine2 is a 2D per-axis scale followed by an offset
type Affine2 struct {
	Scale  Vec2
	Offset Vec2
}

// Apply maps p through the transform
func (a Affine2) Apply(p Vec2) Vec2 {
	return p.MultiplyVec(a.Scale).Add(a.Offset)
}

// Then returns the transform that applies a first and next second
func (a Affine2) Then(next Affine2) Affine2 {
	return Affine2{
		Scale:  a.Scale.MultiplyVec(next.Scale),
		Offset: a.Offset.MultiplyVec(next.Scale).Add(next.Offset),
	}
}
