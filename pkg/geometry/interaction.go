package geometry

import (
	"github.com/sshashank124/fission-sub000/pkg/core"
)

// Interaction describes a ray-surface hit. Intersect fills T, UV (barycentrics for triangles)
// and the primitive references; HitInfo completes P, N and the final UV.
type Interaction struct {
	P         core.Vec3
	N         core.Vec3 // shading normal, unit length after HitInfo
	UV        core.Vec2
	T         float64
	Shape     *Shape
	Primitive int
}

// Frame returns the local shading frame around N
func (it *Interaction) Frame() core.Frame {
	return core.NewFrame(it.N)
}

// SpawnRay creates a ray leaving the hit point in direction d
func (it *Interaction) SpawnRay(d core.Vec3) core.Ray {
	return core.NewRay(it.P, d)
}

// SpawnRayTo creates a shadow segment from the hit point to p
func (it *Interaction) SpawnRayTo(p core.Vec3) core.Ray {
	return core.NewSegment(it.P, p)
}
