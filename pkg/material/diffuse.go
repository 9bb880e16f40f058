package material

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

func diffuseEval(b *BSDF, wi, wo core.Vec3, uv core.Vec2) core.Color {
	if wi.Z <= 0 || wo.Z <= 0 {
		return core.Black
	}
	return b.Albedo.Eval(uv).Multiply(wo.Z / math.Pi)
}

func diffuseSample(b *BSDF, wi core.Vec3, uv core.Vec2, s core.Vec2) BSDFSample {
	if wi.Z <= 0 {
		return BSDFSample{}
	}
	wo := core.SquareToCosineHemisphere(s)
	pdf := core.CosineHemispherePdf(wo.Z)
	if pdf <= 0 {
		return BSDFSample{}
	}
	// eval / pdf reduces to the albedo
	return BSDFSample{Weight: b.Albedo.Eval(uv), Wo: wo, PDF: pdf}
}

func diffusePDF(wi, wo core.Vec3) float64 {
	if wi.Z <= 0 || wo.Z <= 0 {
		return 0
	}
	return core.CosineHemispherePdf(wo.Z)
}
