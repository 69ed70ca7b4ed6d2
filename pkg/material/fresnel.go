package material

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Fresnel computes the fraction of light reflected at an interface
type Fresnel interface {
	// Evaluate returns the reflectance for the cosine of the angle between
	// the incident direction and the normal
	Evaluate(cosI float64) core.Vec3
}

// FresnelDielectric is the reflectance of a boundary between two dielectric media
type FresnelDielectric struct {
	EtaI float64 // Index of refraction on the side the normal points to
	EtaT float64 // Index of refraction on the other side
}

// NewFresnelDielectric creates a dielectric Fresnel term
func NewFresnelDielectric(etaI, etaT float64) *FresnelDielectric {
	return &FresnelDielectric{EtaI: etaI, EtaT: etaT}
}

// Evaluate implements Fresnel
func (f *FresnelDielectric) Evaluate(cosI float64) core.Vec3 {
	return core.Gray(dielectricReflectance(cosI, f.EtaI, f.EtaT))
}

// dielectricReflectance handles both sides of the interface and total internal reflection
func dielectricReflectance(cosI, etaI, etaT float64) float64 {
	cosI = math.Max(-1, math.Min(1, cosI))
	if cosI < 0 {
		etaI, etaT = etaT, etaI
		cosI = -cosI
	}

	// Snell's law
	sinT := etaI / etaT * math.Sqrt(math.Max(0, 1-cosI*cosI))
	if sinT >= 1 {
		return 1
	}
	cosT := math.Sqrt(math.Max(0, 1-sinT*sinT))

	rParl := (etaT*cosI - etaI*cosT) / (etaT*cosI + etaI*cosT)
	rPerp := (etaI*cosI - etaT*cosT) / (etaI*cosI + etaT*cosT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// FresnelConductor is the reflectance of a metal with complex index eta + ik
type FresnelConductor struct {
	Eta core.Vec3
	K   core.Vec3
}

// NewFresnelConductor creates a conductor Fresnel term
func NewFresnelConductor(eta, k core.Vec3) *FresnelConductor {
	return &FresnelConductor{Eta: eta, K: k}
}

// Evaluate implements Fresnel
func (f *FresnelConductor) Evaluate(cosI float64) core.Vec3 {
	cosI = math.Min(1, math.Abs(cosI))
	return core.NewVec3(
		conductorReflectance(cosI, f.Eta.X, f.K.X),
		conductorReflectance(cosI, f.Eta.Y, f.K.Y),
		conductorReflectance(cosI, f.Eta.Z, f.K.Z),
	)
}

func conductorReflectance(cosI, eta, k float64) float64 {
	cos2 := cosI * cosI
	etaK2 := eta*eta + k*k

	tmp := etaK2 * cos2
	rParl2 := (tmp - 2*eta*cosI + 1) / (tmp + 2*eta*cosI + 1)
	rPerp2 := (etaK2 - 2*eta*cosI + cos2) / (etaK2 + 2*eta*cosI + cos2)
	return (rParl2 + rPerp2) / 2
}

// FresnelNoOp reflects everything, used by perfect mirrors
type FresnelNoOp struct{}

// Evaluate implements Fresnel
func (FresnelNoOp) Evaluate(float64) core.Vec3 {
	return core.Gray(1)
}
