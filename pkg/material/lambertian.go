package material

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// Lambertian is a perfectly diffuse reflection lobe
type Lambertian struct {
	R core.Vec3 // Reflectance
}

// Type implements BxDF
func (l *Lambertian) Type() BxDFType {
	return BxDFReflection | BxDFDiffuse
}

// Evaluate implements BxDF. The value is constant, R/π.
func (l *Lambertian) Evaluate(wo, wi core.Vec3) core.Vec3 {
	return l.R.Multiply(1 / math.Pi)
}

// Sample implements BxDF with cosine-weighted hemisphere sampling
func (l *Lambertian) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64) {
	return cosineSample(l, wo, u)
}

// PDF implements BxDF
func (l *Lambertian) PDF(wo, wi core.Vec3) float64 {
	return cosinePDF(wo, wi)
}

// RhoHD implements BxDF. Reflectance is known in closed form.
func (l *Lambertian) RhoHD(wo core.Vec3, samples []core.Vec2) core.Vec3 {
	return l.R
}

// RhoHH implements BxDF
func (l *Lambertian) RhoHH(samplesA, samplesB []core.Vec2) core.Vec3 {
	return l.R
}

// OrenNayar is a diffuse lobe for rough surfaces made of V-shaped facets
type OrenNayar struct {
	R    core.Vec3
	A, B float64
}

// NewOrenNayar creates the lobe from the standard deviation of facet angles in degrees
func NewOrenNayar(r core.Vec3, sigmaDegrees float64) OrenNayar {
	sigma := sigmaDegrees * math.Pi / 180
	sigma2 := sigma * sigma
	return OrenNayar{
		R: r,
		A: 1 - sigma2/(2*(sigma2+0.33)),
		B: 0.45 * sigma2 / (sigma2 + 0.09),
	}
}

// Type implements BxDF
func (o *OrenNayar) Type() BxDFType {
	return BxDFReflection | BxDFDiffuse
}

// Evaluate implements BxDF
func (o *OrenNayar) Evaluate(wo, wi core.Vec3) core.Vec3 {
	sinThetaI := sinTheta(wi)
	sinThetaO := sinTheta(wo)

	// cos(φi - φo), only positive differences darken the lobe
	maxCos := 0.0
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		dCos := cosPhi(wi)*cosPhi(wo) + sinPhi(wi)*sinPhi(wo)
		maxCos = math.Max(0, dCos)
	}

	var sinAlpha, tanBeta float64
	if absCosTheta(wi) > absCosTheta(wo) {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / absCosTheta(wi)
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / absCosTheta(wo)
	}
	return o.R.Multiply((o.A + o.B*maxCos*sinAlpha*tanBeta) / math.Pi)
}

// Sample implements BxDF
func (o *OrenNayar) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64) {
	return cosineSample(o, wo, u)
}

// PDF implements BxDF
func (o *OrenNayar) PDF(wo, wi core.Vec3) float64 {
	return cosinePDF(wo, wi)
}

// RhoHD implements BxDF
func (o *OrenNayar) RhoHD(wo core.Vec3, samples []core.Vec2) core.Vec3 {
	return estimateRhoHD(o, wo, samples)
}

// RhoHH implements BxDF
func (o *OrenNayar) RhoHH(samplesA, samplesB []core.Vec2) core.Vec3 {
	return estimateRhoHH(o, samplesA, samplesB)
}

// MatteMaterial is a diffuse surface. Zero roughness gives a Lambertian lobe,
// anything else Oren-Nayar with the roughness as facet angle in degrees.
type MatteMaterial struct {
	Diffuse   ColorSource
	Roughness float64 // [0, 90]
}

// NewMatte creates a matte material with a solid color
func NewMatte(color core.Vec3, roughness float64) *MatteMaterial {
	return &MatteMaterial{Diffuse: NewSolidColor(color), Roughness: roughness}
}

// NewTexturedMatte creates a matte material with a texture
func NewTexturedMatte(diffuse ColorSource, roughness float64) *MatteMaterial {
	return &MatteMaterial{Diffuse: diffuse, Roughness: roughness}
}

// GetBSDF implements Material
func (m *MatteMaterial) GetBSDF(dg *geometry.DifferentialGeometry, a *arena.Arena) *BSDF {
	bsdf := NewBSDF(dg, 1, a)
	r := m.Diffuse.Evaluate(dg.UV, dg.Point).Clamp(0, 1)
	if r.IsBlack() {
		return bsdf
	}

	sigma := math.Max(0, math.Min(90, m.Roughness))
	if sigma == 0 {
		l := arena.NewValue[Lambertian](a)
		l.R = r
		bsdf.Add(l)
	} else {
		o := arena.NewValue[OrenNayar](a)
		*o = NewOrenNayar(r, sigma)
		bsdf.Add(o)
	}
	return bsdf
}
