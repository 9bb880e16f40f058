package geometry

import (
	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/material"
)

// ShapeKind enumerates the supported geometry variants
type ShapeKind int

const (
	// ShapeMesh is an indexed triangle mesh
	ShapeMesh ShapeKind = iota
	// ShapeSphere is an analytic sphere
	ShapeSphere
)

// String returns the scene-file name of the kind
func (k ShapeKind) String() string {
	switch k {
	case ShapeMesh:
		return "mesh"
	case ShapeSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Shape is a piece of scene geometry with its material and optional emission
type Shape struct {
	Kind     ShapeKind
	Sphere   Sphere
	Mesh     *Mesh
	BSDF     material.BSDF
	Emission *material.Texture
}

// NewSphereShape creates a sphere shape
func NewSphereShape(sphere Sphere, bsdf material.BSDF, emission *material.Texture) *Shape {
	return &Shape{Kind: ShapeSphere, Sphere: sphere, BSDF: bsdf, Emission: emission}
}

// NewMeshShape creates a mesh shape
func NewMeshShape(mesh *Mesh, bsdf material.BSDF, emission *material.Texture) *Shape {
	return &Shape{Kind: ShapeMesh, Mesh: mesh, BSDF: bsdf, Emission: emission}
}

// BBox returns the bounds of the shape
func (s *Shape) BBox() core.BBox {
	if s.Kind == ShapeSphere {
		return s.Sphere.BBox()
	}
	return s.Mesh.BBox()
}

// Intersects reports whether the ray hits the shape
func (s *Shape) Intersects(ray core.Ray) bool {
	if s.Kind == ShapeSphere {
		return s.Sphere.Intersects(ray)
	}
	return s.Mesh.Intersects(ray)
}

// Intersect returns the closest partial hit tagged with this shape
func (s *Shape) Intersect(ray core.Ray) (Interaction, bool) {
	var it Interaction
	var ok bool
	if s.Kind == ShapeSphere {
		it, ok = s.Sphere.Intersect(ray)
	} else {
		it, ok = s.Mesh.Intersect(ray)
	}
	it.Shape = s
	return it, ok
}

// HitInfo completes a partial interaction returned by Intersect
func (s *Shape) HitInfo(it *Interaction) {
	if s.Kind == ShapeSphere {
		s.Sphere.HitInfo(it)
	} else {
		s.Mesh.HitInfo(it)
	}
}

// SampleSurface returns a point distributed uniformly by area over the shape
func (s *Shape) SampleSurface(sample core.Vec2) Interaction {
	var it Interaction
	if s.Kind == ShapeSphere {
		it = s.Sphere.SampleSurface(sample)
	} else {
		it = s.Mesh.SampleSurface(sample)
	}
	it.Shape = s
	return it
}

// SurfaceArea returns the total area of the shape
func (s *Shape) SurfaceArea() float64 {
	if s.Kind == ShapeSphere {
		return s.Sphere.SurfaceArea()
	}
	return s.Mesh.SurfaceArea()
}

// IsEmissive reports whether the shape emits light
func (s *Shape) IsEmissive() bool {
	return s.Emission != nil
}

// Emitted returns the radiance leaving the surface point toward w. Only the front face emits.
func (s *Shape) Emitted(it *Interaction, w core.Vec3) core.Color {
	if s.Emission == nil || it.N.Dot(w) <= 0 {
		return core.Black
	}
	return s.Emission.Eval(it.UV)
}
