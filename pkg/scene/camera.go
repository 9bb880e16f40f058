package scene

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// Camera is a perspective camera with an optional thin lens. In camera space it sits at the
// origin looking down +Z with +Y up.
type Camera struct {
	Width         int
	Height        int
	FOV           float64 // field of view in degrees across the larger image dimension
	LensRadius    float64
	FocalDistance float64
	ToWorld       core.Transform

	pixelToCamera core.Affine2
}

// NewCamera creates a perspective camera
func NewCamera(width, height int, fov, lensRadius, focalDistance float64, toWorld core.Transform) *Camera {
	// Map pixel coordinates to [-1,1] across the larger dimension with Y flipped, then
	// scale by the half-angle tangent to land on the z=1 image plane
	larger := float64(max(width, height))
	tanHalf := math.Tan(fov * math.Pi / 360)
	normalize := core.Affine2{
		Scale:  core.NewVec2(2/larger, -2/larger),
		Offset: core.NewVec2(-float64(width)/larger, float64(height)/larger),
	}
	plane := core.Affine2{Scale: core.NewVec2(tanHalf, tanHalf)}

	return &Camera{
		Width:         width,
		Height:        height,
		FOV:           fov,
		LensRadius:    lensRadius,
		FocalDistance: focalDistance,
		ToWorld:       toWorld,
		pixelToCamera: normalize.Then(plane),
	}
}

// RayAt returns the world-space primary ray through the continuous pixel position pos
func (c *Camera) RayAt(pos core.Vec2, sampler *core.Sampler) core.Ray {
	p := c.pixelToCamera.Apply(pos)
	d := core.NewVec3(p.X, p.Y, 1).Normalize()
	origin := core.Vec3{}

	if c.LensRadius > 0 {
		lens := core.SquareToUniformDisk(sampler.Next2D()).Multiply(c.LensRadius)
		focus := d.Multiply(c.FocalDistance / d.Z)
		origin = core.NewVec3(lens.X, lens.Y, 0)
		d = focus.Subtract(origin)
	}

	return c.ToWorld.Ray(core.NewRay(origin, d))
}
