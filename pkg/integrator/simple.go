package integrator

import (
	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/scene"
)

func traceSilhouette(s *scene.Scene, ray core.Ray) core.Color {
	if s.Intersects(ray) {
		return core.Black
	}
	return core.White
}

func traceNormals(s *scene.Scene, ray core.Ray) core.Color {
	it, ok := s.Intersect(ray)
	if !ok {
		return core.Black
	}
	return core.FromVec3(it.N.Abs())
}

func (t *Tracer) traceAO(s *scene.Scene, sampler *core.Sampler, ray core.Ray) core.Color {
	it, ok := s.Intersect(ray)
	if !ok {
		return core.White
	}

	// Probe the hemisphere facing the viewer
	n := it.N
	if n.Dot(ray.Direction) > 0 {
		n = n.Negate()
	}
	d := core.NewFrame(n).ToWorld(core.SquareToCosineHemisphere(sampler.Next2D()))
	if s.Intersects(it.SpawnRay(d).ClippedTo(t.AORange)) {
		return core.Black
	}
	return core.White
}
