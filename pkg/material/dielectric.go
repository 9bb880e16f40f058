package material

import "github.com/sshashank124/fission-sub000/pkg/core"

// dielectricSample picks reflection with probability F and refraction otherwise, so the
// Fresnel term cancels against the branch probability
func dielectricSample(b *BSDF, wi core.Vec3, s core.Vec2) BSDFSample {
	f := FresnelDielectric(wi.Z, b.IOR)
	if s.X < f {
		return BSDFSample{
			Weight:  core.White,
			Wo:      core.NewVec3(-wi.X, -wi.Y, wi.Z),
			PDF:     f,
			IsDelta: true,
		}
	}

	wo, ok := refract(wi, b.IOR)
	if !ok {
		// Only reachable through rounding when f is just below 1
		return BSDFSample{
			Weight:  core.White,
			Wo:      core.NewVec3(-wi.X, -wi.Y, wi.Z),
			PDF:     1,
			IsDelta: true,
		}
	}
	return BSDFSample{
		Weight:  core.White,
		Wo:      wo,
		PDF:     1 - f,
		IsDelta: true,
	}
}
