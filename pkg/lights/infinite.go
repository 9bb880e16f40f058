package lights

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
	"github.com/sshashank124/fission-sub000/pkg/material"
)

// NewInfiniteEmitter creates an environment emitter. toWorld rotates the map into the scene.
func NewInfiniteEmitter(radiance *material.Texture, toWorld core.Transform) *Emitter {
	return &Emitter{
		Kind:     EmitterInfinite,
		Radiance: radiance,
		ToWorld:  toWorld,
		toLocal:  toWorld.Inverse(),
	}
}

// Le returns the radiance arriving along the escaping world direction d
func (e *Emitter) Le(d core.Vec3) core.Color {
	local := e.toLocal.Vector(d).Normalize()
	return e.Radiance.Eval(core.DirectionToEquirect(local))
}

func (e *Emitter) sampleInfinite(ref *geometry.Interaction, s core.Vec2) LightSample {
	wi := core.SquareToUniformSphere(s)
	return LightSample{
		Radiance: e.Le(wi),
		Wi:       wi,
		Ray:      ref.SpawnRay(wi),
		PDF:      core.UniformSpherePdf,
	}
}

// InfinitePDF returns the solid-angle density of sampling any escaping direction
func (e *Emitter) InfinitePDF() float64 {
	return core.UniformSpherePdf
}

func infinitePower(e *Emitter, sceneRadius float64) float64 {
	if sceneRadius <= 0 {
		sceneRadius = 1
	}
	return e.Radiance.Mean().Luminance() * 4 * math.Pi * math.Pi * sceneRadius * sceneRadius
}
