package integrator

import (
	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/scene"
)

// tracePath follows one path from the camera. Emission reached through a non-delta bounce is
// MIS-weighted when found; after a delta bounce it is added unweighted at the next vertex.
func (t *Tracer) tracePath(s *scene.Scene, sampler *core.Sampler, ray core.Ray) core.Color {
	throughput := core.White
	radiance := core.Black
	specular := true

	it, hit := s.Intersect(ray)
	for depth := 0; ; depth++ {
		if !hit {
			if specular {
				radiance = radiance.Add(throughput.MultiplyColor(s.EnvRadiance(ray)))
			}
			break
		}

		wiWorld := ray.Direction.Negate()
		if specular {
			radiance = radiance.Add(throughput.MultiplyColor(it.Shape.Emitted(&it, wiWorld)))
		}
		if depth >= t.MaxDepth {
			break
		}

		frame := it.Frame()
		wi := frame.ToLocal(wiWorld)
		bsdf := &it.Shape.BSDF

		// Light sampling
		if !bsdf.IsDelta() {
			direct := sampleLight(s, &it, frame, wi, sampler.Next2D())
			radiance = radiance.Add(throughput.MultiplyColor(direct))
		}

		// BSDF sampling
		bs := bsdf.Sample(wi, it.UV, sampler.Next2D())
		if bs.PDF <= 0 || bs.Weight.IsBlack() {
			break
		}
		ray = it.SpawnRay(frame.ToWorld(bs.Wo))
		next, nextHit := s.Intersect(ray)

		if !bs.IsDelta {
			emitted := emissionAlong(s, &it, ray, bs.PDF, &next, nextHit)
			radiance = radiance.Add(throughput.MultiplyColor(bs.Weight).MultiplyColor(emitted))
		}

		throughput = throughput.MultiplyColor(bs.Weight)
		specular = bs.IsDelta

		// Russian roulette
		if depth >= t.MinDepth {
			q := min(throughput.MaxChannel(), t.RRThreshold)
			if q <= 0 || sampler.Next1D() > q {
				break
			}
			throughput = throughput.Divide(q)
		}

		it, hit = next, nextHit
	}
	return radiance
}
