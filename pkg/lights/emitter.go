package lights

import (
	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
	"github.com/sshashank124/fission-sub000/pkg/material"
)

// EmitterKind enumerates the supported light source variants
type EmitterKind int

const (
	// EmitterArea is an emissive shape that also lives in the scene BVH
	EmitterArea EmitterKind = iota
	// EmitterInfinite surrounds the scene and is seen by rays that escape
	EmitterInfinite
	// EmitterPoint is an isotropic point source
	EmitterPoint
)

// String returns a readable name for the kind
func (k EmitterKind) String() string {
	switch k {
	case EmitterArea:
		return "area"
	case EmitterInfinite:
		return "infinitelight"
	case EmitterPoint:
		return "pointlight"
	default:
		return "unknown"
	}
}

// LightSample is a direction toward an emitter chosen by Emitter.Sample
type LightSample struct {
	Radiance core.Color // emitted radiance arriving at the reference point, not divided by PDF
	Wi       core.Vec3  // world-space unit direction from the reference point toward the light
	Ray      core.Ray   // shadow ray that must be unoccluded for the sample to count
	PDF      float64    // solid-angle density, or 1 for delta emitters
	IsDelta  bool
}

// Emitter is a light source
type Emitter struct {
	Kind EmitterKind

	// Shape is the emissive geometry of an area emitter
	Shape *geometry.Shape

	// Radiance maps equirectangular directions to radiance for an infinite emitter
	Radiance *material.Texture
	// ToWorld orients the infinite emitter's map
	ToWorld core.Transform
	toLocal core.Transform

	// Position and Intensity describe a point emitter
	Position  core.Vec3
	Intensity core.Color
}

// Sample chooses a direction from the reference interaction toward the emitter
func (e *Emitter) Sample(ref *geometry.Interaction, s core.Vec2) LightSample {
	switch e.Kind {
	case EmitterArea:
		return e.sampleArea(ref, s)
	case EmitterInfinite:
		return e.sampleInfinite(ref, s)
	case EmitterPoint:
		return e.samplePoint(ref)
	default:
		return LightSample{}
	}
}

// IsDelta reports whether the emitter can only be reached by explicit sampling
func (e *Emitter) IsDelta() bool {
	return e.Kind == EmitterPoint
}

// Power estimates the emitted flux used to build the scene's light selection distribution.
// sceneRadius bounds the scene and scales the infinite emitter.
func (e *Emitter) Power(sceneRadius float64) float64 {
	switch e.Kind {
	case EmitterArea:
		return areaPower(e)
	case EmitterInfinite:
		return infinitePower(e, sceneRadius)
	case EmitterPoint:
		return pointPower(e)
	default:
		return 0
	}
}
