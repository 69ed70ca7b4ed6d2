package material

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// SpecularReflection is a perfect mirror lobe scaled by a Fresnel term
type SpecularReflection struct {
	R       core.Vec3
	Fresnel Fresnel
}

// Type implements BxDF
func (s *SpecularReflection) Type() BxDFType {
	return BxDFReflection | BxDFSpecular
}

// Evaluate implements BxDF. A delta lobe has no value for an arbitrary pair of directions.
func (s *SpecularReflection) Evaluate(wo, wi core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Sample implements BxDF, always returning the mirror direction with pdf 1
func (s *SpecularReflection) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64) {
	wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
	c := absCosTheta(wi)
	if c == 0 {
		return wi, core.Vec3{}, 0
	}
	f := s.Fresnel.Evaluate(cosTheta(wo)).MultiplyVec(s.R).Divide(c)
	return wi, f, 1
}

// PDF implements BxDF
func (s *SpecularReflection) PDF(wo, wi core.Vec3) float64 {
	return 0
}

// RhoHD implements BxDF
func (s *SpecularReflection) RhoHD(wo core.Vec3, samples []core.Vec2) core.Vec3 {
	return estimateRhoHD(s, wo, samples)
}

// RhoHH implements BxDF
func (s *SpecularReflection) RhoHH(samplesA, samplesB []core.Vec2) core.Vec3 {
	return estimateRhoHH(s, samplesA, samplesB)
}

// SpecularTransmission refracts through a smooth dielectric boundary. EtaA is
// the index on the side the normal points to, EtaB the index behind the surface.
// Values carry power, not radiance, so there is no η² scaling across the boundary.
type SpecularTransmission struct {
	T          core.Vec3
	EtaA, EtaB float64
	fresnel    FresnelDielectric
}

// NewSpecularTransmission creates a refraction lobe between two media
func NewSpecularTransmission(t core.Vec3, etaA, etaB float64) SpecularTransmission {
	return SpecularTransmission{
		T:       t,
		EtaA:    etaA,
		EtaB:    etaB,
		fresnel: FresnelDielectric{EtaI: etaA, EtaT: etaB},
	}
}

// Type implements BxDF
func (s *SpecularTransmission) Type() BxDFType {
	return BxDFTransmission | BxDFSpecular
}

// Evaluate implements BxDF
func (s *SpecularTransmission) Evaluate(wo, wi core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Sample implements BxDF. Total internal reflection yields a zero pdf.
func (s *SpecularTransmission) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64) {
	entering := cosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = etaT, etaI
	}

	eta := etaI / etaT
	sinT2 := eta * eta * sinTheta2(wo)
	if sinT2 >= 1 {
		return core.Vec3{}, core.Vec3{}, 0
	}
	cosT := math.Sqrt(math.Max(0, 1-sinT2))
	if entering {
		cosT = -cosT
	}

	wi := core.NewVec3(-eta*wo.X, -eta*wo.Y, cosT)
	c := absCosTheta(wi)
	if c == 0 {
		return wi, core.Vec3{}, 0
	}
	reflected := s.fresnel.Evaluate(cosTheta(wo))
	f := core.Gray(1).Subtract(reflected).MultiplyVec(s.T).Divide(c)
	return wi, f, 1
}

// PDF implements BxDF
func (s *SpecularTransmission) PDF(wo, wi core.Vec3) float64 {
	return 0
}

// RhoHD implements BxDF
func (s *SpecularTransmission) RhoHD(wo core.Vec3, samples []core.Vec2) core.Vec3 {
	return estimateRhoHD(s, wo, samples)
}

// RhoHH implements BxDF
func (s *SpecularTransmission) RhoHH(samplesA, samplesB []core.Vec2) core.Vec3 {
	return estimateRhoHH(s, samplesA, samplesB)
}
