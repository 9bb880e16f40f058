package integrator

import (
	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
	"github.com/sshashank124/fission-sub000/pkg/scene"
)

// sampleLight estimates direct illumination at it by sampling an emitter. The result is
// MIS-weighted against BSDF sampling unless the emitter is a delta light.
func sampleLight(s *scene.Scene, it *geometry.Interaction, frame core.Frame, wi core.Vec3, sample core.Vec2) core.Color {
	ls, ok := s.SampleRandomLight(it, sample)
	if !ok || s.Intersects(ls.Ray) {
		return core.Black
	}

	bsdf := &it.Shape.BSDF
	wo := frame.ToLocal(ls.Wi)
	f := bsdf.Eval(wi, wo, it.UV)
	if f.IsBlack() {
		return core.Black
	}

	weight := 1.0
	if !ls.IsDelta {
		weight = core.PowerHeuristic(ls.PDF, bsdf.PDF(wi, wo))
	}
	return f.MultiplyColor(ls.Radiance).Multiply(weight / ls.PDF)
}

// emissionAlong returns the MIS-weighted emission found by a BSDF-sampled ray leaving it.
// next is the result of intersecting the scene with ray.
func emissionAlong(s *scene.Scene, it *geometry.Interaction, ray core.Ray, bsdfPDF float64,
	next *geometry.Interaction, nextHit bool) core.Color {
	if !nextHit {
		if !s.HasEnvironment() {
			return core.Black
		}
		return s.EnvRadiance(ray).Multiply(core.PowerHeuristic(bsdfPDF, s.EnvPDF()))
	}

	le := next.Shape.Emitted(next, ray.Direction.Negate())
	if le.IsBlack() {
		return core.Black
	}
	return le.Multiply(core.PowerHeuristic(bsdfPDF, s.EmitterPDF(it, next, ray.Direction)))
}
