package core

// BBox is an axis-aligned bounding box stored as one interval per axis
type BBox [3]Interval

// EmptyBBox returns a box containing nothing, the identity of Union
func EmptyBBox() BBox {
	return BBox{EmptyInterval(), EmptyInterval(), EmptyInterval()}
}

// NewBBox creates the smallest box containing all given points
func NewBBox(points ...Vec3) BBox {
	box := EmptyBBox()
	for _, p := range points {
		box = box.UnionPoint(p)
	}
	return box
}

// Min returns the lower corner
func (b BBox) Min() Vec3 {
	return Vec3{b[0].Min, b[1].Min, b[2].Min}
}

// Max returns the upper corner
func (b BBox) Max() Vec3 {
	return Vec3{b[0].Max, b[1].Max, b[2].Max}
}

// IsEmpty reports whether any axis interval is empty
func (b BBox) IsEmpty() bool {
	return b[0].IsEmpty() || b[1].IsEmpty() || b[2].IsEmpty()
}

// Center returns the midpoint of the box
func (b BBox) Center() Vec3 {
	return Vec3{b[0].Center(), b[1].Center(), b[2].Center()}
}

// Extent returns the side lengths of the box
func (b BBox) Extent() Vec3 {
	return Vec3{b[0].Extent(), b[1].Extent(), b[2].Extent()}
}

// Union returns the smallest box containing both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{b[0].Union(other[0]), b[1].Union(other[1]), b[2].Union(other[2])}
}

// UnionPoint returns the smallest box containing b and p
func (b BBox) UnionPoint(p Vec3) BBox {
	return BBox{b[0].Expand(p.X), b[1].Expand(p.Y), b[2].Expand(p.Z)}
}

// Contains reports whether other lies entirely inside b
func (b BBox) Contains(other BBox) bool {
	if other.IsEmpty() {
		return true
	}
	return b[0].ContainsInterval(other[0]) && b[1].ContainsInterval(other[1]) && b[2].ContainsInterval(other[2])
}

// SurfaceArea returns the total area of the six faces
func (b BBox) SurfaceArea() float64 {
	if b.IsEmpty() {
		return 0
	}
	e := b.Extent()
	return 2 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

// MaxExtentAxis returns the index of the longest axis
func (b BBox) MaxExtentAxis() int {
	e := b.Extent()
	switch {
	case e.X >= e.Y && e.X >= e.Z:
		return 0
	case e.Y >= e.Z:
		return 1
	default:
		return 2
	}
}

// Hit tests the ray against the box using the slab method
func (b BBox) Hit(ray Ray) bool {
	return b.HitInverse(ray, ray.InverseDirection())
}

// HitInverse is Hit with the inverse ray direction precomputed by the caller.
// NaN slab distances from zero direction components are ignored.
func (b BBox) HitInverse(ray Ray, inv Vec3) bool {
	tEnter, tExit := ray.TMin, ray.TMax
	for axis := 0; axis < 3; axis++ {
		o := ray.Origin.Axis(axis)
		invD := inv.Axis(axis)
		t0 := (b[axis].Min - o) * invD
		t1 := (b[axis].Max - o) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
		}
		if t1 < tExit {
			tExit = t1
		}
		if tExit < tEnter {
			return false
		}
	}
	return true
}
