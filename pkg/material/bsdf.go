package material

import (
	"github.com/sshashank124/fission-sub000/pkg/core"
)

// BSDFKind enumerates the supported scattering models
type BSDFKind int

const (
	// BSDFDiffuse is a Lambertian reflector
	BSDFDiffuse BSDFKind = iota
	// BSDFMirror is a perfect specular reflector
	BSDFMirror
	// BSDFDielectric is a smooth glass-like boundary
	BSDFDielectric
	// BSDFMicrofacet is a diffuse base with a rough Beckmann specular layer
	BSDFMicrofacet
)

// String returns the scene-file name of the kind
func (k BSDFKind) String() string {
	switch k {
	case BSDFDiffuse:
		return "diffuse"
	case BSDFMirror:
		return "mirror"
	case BSDFDielectric:
		return "dielectric"
	case BSDFMicrofacet:
		return "microfacet"
	default:
		return "unknown"
	}
}

// BSDF describes how a surface scatters light. All directions are in the local shading frame
// (normal = +Z) and point away from the surface. wi faces the previous path vertex, wo is the
// scattered direction. Returned values include |cosθ_o|.
type BSDF struct {
	Kind BSDFKind

	// Albedo is the diffuse reflectance (diffuse and microfacet)
	Albedo *Texture
	// IOR is the interior over exterior index of refraction (dielectric and microfacet)
	IOR float64
	// Alpha is the Beckmann roughness (microfacet)
	Alpha float64
	// Ks is the probability and weight of the specular lobe (microfacet)
	Ks float64
}

// BSDFSample is the result of importance sampling a BSDF
type BSDFSample struct {
	Weight  core.Color // eval / pdf, or the branch weight for delta lobes
	Wo      core.Vec3
	PDF     float64
	IsDelta bool
}

// NewDiffuse creates a Lambertian BSDF
func NewDiffuse(albedo *Texture) BSDF {
	return BSDF{Kind: BSDFDiffuse, Albedo: albedo}
}

// NewMirror creates a perfect mirror
func NewMirror() BSDF {
	return BSDF{Kind: BSDFMirror}
}

// NewDielectric creates a smooth dielectric with the given interior/exterior index ratio
func NewDielectric(ior float64) BSDF {
	return BSDF{Kind: BSDFDielectric, IOR: ior}
}

// NewMicrofacet creates a rough conductor-like layer over a diffuse base.
// A negative ks selects 1 - max(mean albedo), which keeps the model energy conserving.
func NewMicrofacet(albedo *Texture, alpha, ior, ks float64) BSDF {
	if ks < 0 {
		ks = 1 - albedo.Mean().MaxChannel()
	}
	ks = max(0, min(1, ks))
	return BSDF{Kind: BSDFMicrofacet, Albedo: albedo, Alpha: alpha, IOR: ior, Ks: ks}
}

// IsDelta reports whether the BSDF only scatters into discrete directions
func (b *BSDF) IsDelta() bool {
	switch b.Kind {
	case BSDFMirror, BSDFDielectric:
		return true
	default:
		return false
	}
}

// Eval returns f(wi, wo)·|cosθ_o|. Delta BSDFs evaluate to zero.
func (b *BSDF) Eval(wi, wo core.Vec3, uv core.Vec2) core.Color {
	switch b.Kind {
	case BSDFDiffuse:
		return diffuseEval(b, wi, wo, uv)
	case BSDFMicrofacet:
		return microfacetEval(b, wi, wo, uv)
	default:
		return core.Black
	}
}

// Sample draws a scattered direction for wi using the 2D sample s
func (b *BSDF) Sample(wi core.Vec3, uv core.Vec2, s core.Vec2) BSDFSample {
	switch b.Kind {
	case BSDFDiffuse:
		return diffuseSample(b, wi, uv, s)
	case BSDFMirror:
		return mirrorSample(wi)
	case BSDFDielectric:
		return dielectricSample(b, wi, s)
	case BSDFMicrofacet:
		return microfacetSample(b, wi, uv, s)
	default:
		return BSDFSample{}
	}
}

// PDF returns the solid-angle density with which Sample produces wo. Delta BSDFs return zero.
func (b *BSDF) PDF(wi, wo core.Vec3) float64 {
	switch b.Kind {
	case BSDFDiffuse:
		return diffusePDF(wi, wo)
	case BSDFMicrofacet:
		return microfacetPDF(b, wi, wo)
	default:
		return 0
	}
}
