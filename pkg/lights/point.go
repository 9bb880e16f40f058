package lights

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/geometry"
)

// NewPointEmitter creates an isotropic point light with radiant intensity I
func NewPointEmitter(position core.Vec3, intensity core.Color) *Emitter {
	return &Emitter{Kind: EmitterPoint, Position: position, Intensity: intensity}
}

func (e *Emitter) samplePoint(ref *geometry.Interaction) LightSample {
	d := e.Position.Subtract(ref.P)
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return LightSample{}
	}
	return LightSample{
		Radiance: e.Intensity.Divide(dist2),
		Wi:       d.Multiply(1 / math.Sqrt(dist2)),
		Ray:      ref.SpawnRayTo(e.Position),
		PDF:      1,
		IsDelta:  true,
	}
}

func pointPower(e *Emitter) float64 {
	return 4 * math.Pi * e.Intensity.Luminance()
}
