package integrator

import (
	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/scene"
)

// traceDirect adds the radiance emitted toward the camera and one bounce of direct lighting
func traceDirect(s *scene.Scene, sampler *core.Sampler, ray core.Ray) core.Color {
	it, ok := s.Intersect(ray)
	if !ok {
		return s.EnvRadiance(ray)
	}

	wiWorld := ray.Direction.Negate()
	l := it.Shape.Emitted(&it, wiWorld)

	frame := it.Frame()
	wi := frame.ToLocal(wiWorld)
	bsdf := &it.Shape.BSDF

	if !bsdf.IsDelta() {
		l = l.Add(sampleLight(s, &it, frame, wi, sampler.Next2D()))
	}

	bs := bsdf.Sample(wi, it.UV, sampler.Next2D())
	if bs.PDF <= 0 || bs.Weight.IsBlack() {
		return l
	}
	next := it.SpawnRay(frame.ToWorld(bs.Wo))
	nextIt, nextHit := s.Intersect(next)

	if bs.IsDelta {
		// A delta bounce cannot be light sampled, so take what it sees unweighted
		if !nextHit {
			return l.Add(bs.Weight.MultiplyColor(s.EnvRadiance(next)))
		}
		return l.Add(bs.Weight.MultiplyColor(nextIt.Shape.Emitted(&nextIt, next.Direction.Negate())))
	}
	return l.Add(bs.Weight.MultiplyColor(emissionAlong(s, &it, next, bs.PDF, &nextIt, nextHit)))
}
