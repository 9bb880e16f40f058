package material

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// smithG1 is the rational approximation of the Beckmann shadowing term for direction v and microfacet normal h
func smithG1(v, h core.Vec3, alpha float64) float64 {
	if v.Dot(h)*v.Z <= 0 {
		return 0
	}
	cosTheta := v.Z
	sin2 := 1 - cosTheta*cosTheta
	if sin2 <= 0 {
		return 1
	}
	tanTheta := math.Sqrt(sin2) / cosTheta
	bv := 1 / (alpha * tanTheta)
	if bv >= 1.6 {
		return 1
	}
	return (3.535*bv + 2.181*bv*bv) / (1 + 2.276*bv + 2.577*bv*bv)
}

func microfacetEval(b *BSDF, wi, wo core.Vec3, uv core.Vec2) core.Color {
	if wi.Z <= 0 || wo.Z <= 0 {
		return core.Black
	}
	diffuse := b.Albedo.Eval(uv).Multiply((1 - b.Ks) * wo.Z / math.Pi)

	h := wi.Add(wo).Normalize()
	d := core.BeckmannD(h, b.Alpha)
	if d == 0 {
		return diffuse
	}
	f := FresnelDielectric(h.Dot(wi), b.IOR)
	g := smithG1(wi, h, b.Alpha) * smithG1(wo, h, b.Alpha)
	specular := b.Ks * d * f * g / (4 * wi.Z)
	return diffuse.Add(core.Gray(specular))
}

func microfacetPDF(b *BSDF, wi, wo core.Vec3) float64 {
	if wi.Z <= 0 || wo.Z <= 0 {
		return 0
	}
	h := wi.Add(wo).Normalize()
	woDotH := math.Abs(wo.Dot(h))
	specular := 0.0
	if woDotH > 0 {
		specular = b.Ks * core.BeckmannPdf(h, b.Alpha) / (4 * woDotH)
	}
	return specular + (1-b.Ks)*core.CosineHemispherePdf(wo.Z)
}

func microfacetSample(b *BSDF, wi core.Vec3, uv core.Vec2, s core.Vec2) BSDFSample {
	if wi.Z <= 0 {
		return BSDFSample{}
	}

	var wo core.Vec3
	if s.X < b.Ks {
		s.X /= b.Ks
		h := core.SquareToBeckmann(s, b.Alpha)
		wo = core.Reflect(wi, h)
	} else {
		s.X = (s.X - b.Ks) / (1 - b.Ks)
		wo = core.SquareToCosineHemisphere(s)
	}
	if wo.Z <= 0 {
		return BSDFSample{}
	}

	pdf := microfacetPDF(b, wi, wo)
	if pdf <= 0 {
		return BSDFSample{}
	}
	return BSDFSample{
		Weight: microfacetEval(b, wi, wo, uv).Divide(pdf),
		Wo:     wo,
		PDF:    pdf,
	}
}
