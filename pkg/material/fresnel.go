package material

import (
	"math"

	"github.com/sshashank124/fission-sub000/pkg/core"
)

// FresnelDielectric returns the unpolarized reflectance at a smooth dielectric boundary.
// eta is the ratio n_t/n_i for light arriving from the side the normal points to; a negative
// cosThetaI means the ray arrives from inside and eta is inverted. Total internal reflection returns 1.
func FresnelDielectric(cosThetaI, eta float64) float64 {
	if cosThetaI < 0 {
		eta = 1 / eta
		cosThetaI = -cosThetaI
	}

	sin2ThetaT := (1 - cosThetaI*cosThetaI) / (eta * eta)
	if sin2ThetaT >= 1 {
		return 1
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)

	rs := (cosThetaI - eta*cosThetaT) / (cosThetaI + eta*cosThetaT)
	rp := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	return 0.5 * (rs*rs + rp*rp)
}

// refract bends the local direction wi through a boundary with relative index eta (n_t/n_i on
// the normal side). It reports false on total internal reflection.
func refract(wi core.Vec3, eta float64) (core.Vec3, bool) {
	sign := 1.0
	if wi.Z < 0 {
		eta = 1 / eta
		sign = -1
	}
	cosThetaI := math.Abs(wi.Z)
	sin2ThetaT := (1 - cosThetaI*cosThetaI) / (eta * eta)
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	return core.NewVec3(-wi.X/eta, -wi.Y/eta, -sign*cosThetaT), true
}
