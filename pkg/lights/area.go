package lights

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
)

// NewAreaEmitter wraps an emissive shape. The shape stays shared with the scene BVH.
func NewAreaEmitter(shape *geometry.Shape) *Emitter {
	return &Emitter{Kind: EmitterArea, Shape: shape}
}

func (e *Emitter) sampleArea(ref *geometry.Interaction, s core.Vec2) LightSample {
	point := e.Shape.SampleSurface(s)
	d := point.P.Subtract(ref.P)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return LightSample{}
	}
	dist := math.Sqrt(dist2)
	wi := d.Multiply(1 / dist)

	// Only the front face emits
	cosLight := -point.N.Dot(wi)
	if cosLight <= 0 {
		return LightSample{}
	}
	area := e.Shape.SurfaceArea()
	if area <= 0 {
		return LightSample{}
	}

	return LightSample{
		Radiance: e.Shape.Emission.Eval(point.UV),
		Wi:       wi,
		Ray:      ref.SpawnRayTo(point.P),
		PDF:      dist2 / (cosLight * area),
	}
}

// AreaPDF returns the solid-angle density with which sampleArea would pick the point on the
// emitter seen from ref along the unit direction wi
func (e *Emitter) AreaPDF(ref, onLight *geometry.Interaction, wi core.Vec3) float64 {
	cosLight := -onLight.N.Dot(wi)
	area := e.Shape.SurfaceArea()
	if cosLight <= 0 || area <= 0 {
		return 0
	}
	dist2 := onLight.P.Subtract(ref.P).LengthSquared()
	return dist2 / (cosLight * area)
}

func areaPower(e *Emitter) float64 {
	return e.Shape.Emission.Mean().Luminance() * e.Shape.SurfaceArea() * math.Pi
}
