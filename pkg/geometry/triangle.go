package geometry

import (
	"github.com/sshashank124/fission-sub000/pkg/core"
)

// MeshData holds the vertex attributes shared by all triangles of a mesh.
// Normals and UVs are either empty or have one entry per position.
type MeshData struct {
	Positions []core.Vec3
	Normals   []core.Vec3
	UVs       []core.Vec2
}

// Triangle references three vertices of a shared mesh data pool
type Triangle struct {
	V     [3]uint32
	Index int // position of the triangle within its mesh
	Data  *MeshData
}

func (t Triangle) positions() (core.Vec3, core.Vec3, core.Vec3) {
	p := t.Data.Positions
	return p[t.V[0]], p[t.V[1]], p[t.V[2]]
}

// BBox returns the bounds of the three vertices
func (t Triangle) BBox() core.BBox {
	p0, p1, p2 := t.positions()
	return core.NewBBox(p0, p1, p2)
}

// hit runs the Möller-Trumbore test and returns t and the barycentrics of v1 and v2
func (t Triangle) hit(ray core.Ray) (float64, float64, float64, bool) {
	const epsilon = 1e-12

	p0, p1, p2 := t.positions()
	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(p0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < ray.TMin || tHit > ray.TMax {
		return 0, 0, 0, false
	}
	return tHit, u, v, true
}

// Intersects reports whether the ray hits the triangle within its range
func (t Triangle) Intersects(ray core.Ray) bool {
	_, _, _, ok := t.hit(ray)
	return ok
}

// Intersect returns a partial interaction with t and barycentric coordinates in UV
func (t Triangle) Intersect(ray core.Ray) (Interaction, bool) {
	tHit, u, v, ok := t.hit(ray)
	if !ok {
		return Interaction{}, false
	}
	return Interaction{T: tHit, UV: core.NewVec2(u, v), Primitive: t.Index}, true
}

// HitInfo turns the barycentrics stored in it.UV into position, normal and texture coordinates
func (t Triangle) HitInfo(it *Interaction) {
	b1, b2 := it.UV.X, it.UV.Y
	b0 := 1 - b1 - b2
	p0, p1, p2 := t.positions()

	it.P = p0.Multiply(b0).Add(p1.Multiply(b1)).Add(p2.Multiply(b2))

	if d := t.Data; len(d.Normals) > 0 {
		n := d.Normals[t.V[0]].Multiply(b0).
			Add(d.Normals[t.V[1]].Multiply(b1)).
			Add(d.Normals[t.V[2]].Multiply(b2))
		it.N = n.Normalize()
	} else {
		it.N = p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
	}

	if d := t.Data; len(d.UVs) > 0 {
		it.UV = d.UVs[t.V[0]].Multiply(b0).
			Add(d.UVs[t.V[1]].Multiply(b1)).
			Add(d.UVs[t.V[2]].Multiply(b2))
	} else {
		it.UV = core.Vec2{}
	}
}

// SampleSurface returns a uniformly distributed point on the triangle
func (t Triangle) SampleSurface(sample core.Vec2) Interaction {
	it := Interaction{UV: core.SquareToUniformTriangle(sample), Primitive: t.Index}
	t.HitInfo(&it)
	return it
}

// SurfaceArea returns the area of the triangle
func (t Triangle) SurfaceArea() float64 {
	p0, p1, p2 := t.positions()
	return 0.5 * p1.Subtract(p0).Cross(p2.Subtract(p0)).Length()
}
