package core

import "math"

// SquareToUniformDisk maps the unit square to the unit disk with the concentric mapping,
// which avoids the clustering of the polar mapping
func SquareToUniformDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	offset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if offset.X == 0 && offset.Y == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(offset.X) > math.Abs(offset.Y) {
		r = offset.X
		theta = math.Pi / 4 * (offset.Y / offset.X)
	} else {
		r = offset.Y
		theta = math.Pi/2 - math.Pi/4*(offset.X/offset.Y)
	}
	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// UniformDiskPdf is the area density of SquareToUniformDisk
const UniformDiskPdf = 1 / math.Pi

// SquareToCosineHemisphere returns a cosine-weighted direction around local +Z
func SquareToCosineHemisphere(sample Vec2) Vec3 {
	d := SquareToUniformDisk(sample)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return NewVec3(d.X, d.Y, z)
}

// CosineHemispherePdf is the solid-angle density of SquareToCosineHemisphere
func CosineHemispherePdf(cosTheta float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// SquareToUniformSphere returns a uniformly distributed unit vector
func SquareToUniformSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformSpherePdf is the solid-angle density of SquareToUniformSphere
const UniformSpherePdf = 1 / (4 * math.Pi)

// SquareToUniformTriangle maps the unit square onto barycentrics (b1, b2) of the canonical triangle.
// Samples above the diagonal are reflected back, so the density is 2 with respect to the square.
func SquareToUniformTriangle(sample Vec2) Vec2 {
	if sample.X+sample.Y > 1 {
		return NewVec2(1-sample.X, 1-sample.Y)
	}
	return sample
}

// BeckmannD evaluates the Beckmann microfacet distribution for a local half vector
func BeckmannD(h Vec3, alpha float64) float64 {
	cosTheta := h.Z
	if cosTheta <= 0 {
		return 0
	}
	cos2 := cosTheta * cosTheta
	tan2 := (1 - cos2) / cos2
	a2 := alpha * alpha
	return math.Exp(-tan2/a2) / (math.Pi * a2 * cos2 * cos2)
}

// SquareToBeckmann samples a local microfacet normal proportionally to D(h)·cosθh
func SquareToBeckmann(sample Vec2, alpha float64) Vec3 {
	tan2 := -alpha * alpha * math.Log(1-sample.X)
	cosTheta := 1 / math.Sqrt(1+tan2)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * sample.Y
	return NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// BeckmannPdf is the solid-angle density of SquareToBeckmann
func BeckmannPdf(h Vec3, alpha float64) float64 {
	return BeckmannD(h, alpha) * h.Z
}

// DirectionToEquirect maps a unit direction to equirectangular (u, v) in [0,1]², with v=0 at +Y
func DirectionToEquirect(d Vec3) Vec2 {
	u := (math.Atan2(d.Z, d.X) + math.Pi) / (2 * math.Pi)
	v := math.Acos(math.Max(-1, math.Min(1, d.Y))) / math.Pi
	return NewVec2(u, v)
}

// EquirectToDirection is the inverse of DirectionToEquirect
func EquirectToDirection(uv Vec2) Vec3 {
	phi := uv.X*2*math.Pi - math.Pi
	theta := uv.Y * math.Pi
	sinTheta := math.Sin(theta)
	return NewVec3(sinTheta*math.Cos(phi), math.Cos(theta), sinTheta*math.Sin(phi))
}
