package material

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// MicrofacetDistribution describes the orientation of microfacet normals
type MicrofacetDistribution interface {
	// D returns the differential area of facets oriented along wh
	D(wh core.Vec3) float64
	// Sample picks wi by sampling a half vector around wo
	Sample(wo core.Vec3, u core.Vec2) (wi core.Vec3, pdf float64)
	// PDF returns the density of Sample producing wi
	PDF(wo, wi core.Vec3) float64
}

// Blinn is the Blinn microfacet distribution, D(wh) = (e+2)/2π · cos^e θh
type Blinn struct {
	Exponent float64
}

// NewBlinn creates a distribution from a roughness in (0, 1], where smaller is shinier
func NewBlinn(roughness float64) Blinn {
	if roughness <= 0 {
		roughness = 1e-3
	}
	return Blinn{Exponent: math.Min(10000, 1/roughness)}
}

// D implements MicrofacetDistribution
func (b Blinn) D(wh core.Vec3) float64 {
	return (b.Exponent + 2) / (2 * math.Pi) * math.Pow(absCosTheta(wh), b.Exponent)
}

// Sample implements MicrofacetDistribution
func (b Blinn) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, float64) {
	cosT := math.Pow(u.X, 1/(b.Exponent+1))
	sinT := math.Sqrt(math.Max(0, 1-cosT*cosT))
	phi := u.Y * 2 * math.Pi
	wh := core.NewVec3(sinT*math.Cos(phi), sinT*math.Sin(phi), cosT)
	if !sameHemisphere(wo, wh) {
		wh = wh.Negate()
	}

	woDotWh := wo.Dot(wh)
	wi := wo.Negate().Add(wh.Multiply(2 * woDotWh))
	if woDotWh <= 0 {
		return wi, 0
	}
	return wi, b.halfVectorPDF(cosT, woDotWh)
}

// PDF implements MicrofacetDistribution
func (b Blinn) PDF(wo, wi core.Vec3) float64 {
	wh := wo.Add(wi).Normalize()
	woDotWh := wo.Dot(wh)
	if woDotWh <= 0 {
		return 0
	}
	return b.halfVectorPDF(absCosTheta(wh), woDotWh)
}

// halfVectorPDF converts the density of wh into a density of wi
func (b Blinn) halfVectorPDF(cosH, woDotWh float64) float64 {
	return (b.Exponent + 1) * math.Pow(cosH, b.Exponent) / (2 * math.Pi * 4 * woDotWh)
}

// geometricAttenuation is the Torrance-Sparrow masking and shadowing term
func geometricAttenuation(wo, wi, wh core.Vec3) float64 {
	nDotWh := absCosTheta(wh)
	woDotWh := wo.AbsDot(wh)
	if woDotWh == 0 {
		return 0
	}
	return math.Min(1, math.Min(
		2*nDotWh*absCosTheta(wo)/woDotWh,
		2*nDotWh*absCosTheta(wi)/woDotWh,
	))
}

// TorranceSparrow is a glossy reflection lobe built from a microfacet
// distribution and a Fresnel term
type TorranceSparrow struct {
	R            core.Vec3
	Fresnel      Fresnel
	Distribution MicrofacetDistribution
}

// Type implements BxDF
func (t *TorranceSparrow) Type() BxDFType {
	return BxDFReflection | BxDFGlossy
}

// Evaluate implements BxDF
func (t *TorranceSparrow) Evaluate(wo, wi core.Vec3) core.Vec3 {
	cosO := absCosTheta(wo)
	cosI := absCosTheta(wi)
	if cosO == 0 || cosI == 0 {
		return core.Vec3{}
	}
	wh := wi.Add(wo)
	if wh.IsBlack() {
		return core.Vec3{}
	}
	wh = wh.Normalize()

	fresnel := t.Fresnel.Evaluate(wi.Dot(wh))
	scale := t.Distribution.D(wh) * geometricAttenuation(wo, wi, wh) / (4 * cosO * cosI)
	return t.R.MultiplyVec(fresnel).Multiply(scale)
}

// Sample implements BxDF
func (t *TorranceSparrow) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64) {
	wi, pdf := t.Distribution.Sample(wo, u)
	if pdf == 0 || !sameHemisphere(wo, wi) {
		return wi, core.Vec3{}, 0
	}
	return wi, t.Evaluate(wo, wi), pdf
}

// PDF implements BxDF
func (t *TorranceSparrow) PDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return t.Distribution.PDF(wo, wi)
}

// RhoHD implements BxDF
func (t *TorranceSparrow) RhoHD(wo core.Vec3, samples []core.Vec2) core.Vec3 {
	return estimateRhoHD(t, wo, samples)
}

// RhoHH implements BxDF
func (t *TorranceSparrow) RhoHH(samplesA, samplesB []core.Vec2) core.Vec3 {
	return estimateRhoHH(t, samplesA, samplesB)
}
