package material

import "github.com/sshashank124/fission-sub000/pkg/core"

func mirrorSample(wi core.Vec3) BSDFSample {
	return BSDFSample{
		Weight:  core.White,
		Wo:      core.NewVec3(-wi.X, -wi.Y, wi.Z),
		PDF:     1,
		IsDelta: true,
	}
}
