package material

import (
	"math"
	"strings"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// BxDFType classifies a scattering lobe. Values are bit flags and combine with |.
type BxDFType uint8

const (
	BxDFReflection BxDFType = 1 << iota
	BxDFTransmission
	BxDFDiffuse
	BxDFGlossy
	BxDFSpecular

	// BxDFAllTypes matches any lobe shape
	BxDFAllTypes = BxDFDiffuse | BxDFGlossy | BxDFSpecular
	// BxDFAllReflection matches every reflection lobe
	BxDFAllReflection = BxDFReflection | BxDFAllTypes
	// BxDFAllTransmission matches every transmission lobe
	BxDFAllTransmission = BxDFTransmission | BxDFAllTypes
	// BxDFAll matches everything
	BxDFAll = BxDFAllReflection | BxDFAllTransmission
)

// Matches reports whether every flag of t is present in flags
func (t BxDFType) Matches(flags BxDFType) bool {
	return t&flags == t
}

// IsSpecular reports whether t describes a delta distribution
func (t BxDFType) IsSpecular() bool {
	return t&BxDFSpecular != 0
}

func (t BxDFType) String() string {
	if t == 0 {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		flag BxDFType
		name string
	}{
		{BxDFReflection, "reflection"},
		{BxDFTransmission, "transmission"},
		{BxDFDiffuse, "diffuse"},
		{BxDFGlossy, "glossy"},
		{BxDFSpecular, "specular"},
	} {
		if t&f.flag != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// BxDF is a single analytic scattering lobe. All directions are expressed in
// the local shading frame where the surface normal is +z, and both wo and wi
// point away from the surface.
type BxDF interface {
	// Type returns the lobe classification
	Type() BxDFType

	// Evaluate returns the value of the distribution for the pair of directions
	Evaluate(wo, wi core.Vec3) core.Vec3

	// Sample chooses an incident direction for wo. A zero pdf means no valid
	// direction was produced.
	Sample(wo core.Vec3, u core.Vec2) (wi core.Vec3, f core.Vec3, pdf float64)

	// PDF returns the density Sample would have produced wi with
	PDF(wo, wi core.Vec3) float64

	// RhoHD estimates the hemispherical-directional reflectance for wo
	RhoHD(wo core.Vec3, samples []core.Vec2) core.Vec3

	// RhoHH estimates the hemispherical-hemispherical reflectance
	RhoHH(samplesA, samplesB []core.Vec2) core.Vec3
}

func cosTheta(w core.Vec3) float64 {
	return w.Z
}

func absCosTheta(w core.Vec3) float64 {
	return math.Abs(w.Z)
}

func sinTheta2(w core.Vec3) float64 {
	return math.Max(0, 1-w.Z*w.Z)
}

func sinTheta(w core.Vec3) float64 {
	return math.Sqrt(sinTheta2(w))
}

func cosPhi(w core.Vec3) float64 {
	st := sinTheta(w)
	if st == 0 {
		return 1
	}
	return math.Max(-1, math.Min(1, w.X/st))
}

func sinPhi(w core.Vec3) float64 {
	st := sinTheta(w)
	if st == 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, w.Y/st))
}

func sameHemisphere(a, b core.Vec3) bool {
	return a.Z*b.Z > 0
}

// cosineSample draws wi from a cosine-weighted hemisphere on the side of wo.
// It is the sampling strategy of lobes without a better one.
func cosineSample(b BxDF, wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64) {
	wi := core.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return wi, b.Evaluate(wo, wi), cosinePDF(wo, wi)
}

func cosinePDF(wo, wi core.Vec3) float64 {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return absCosTheta(wi) / math.Pi
}

// estimateRhoHD averages f·|cosθi|/pdf over importance-sampled directions
func estimateRhoHD(b BxDF, wo core.Vec3, samples []core.Vec2) core.Vec3 {
	if len(samples) == 0 {
		return core.Vec3{}
	}
	var r core.Vec3
	for _, u := range samples {
		wi, f, pdf := b.Sample(wo, u)
		if pdf > 0 {
			r = r.Add(f.Multiply(absCosTheta(wi) / pdf))
		}
	}
	return r.Divide(float64(len(samples)))
}

// estimateRhoHH pairs uniformly sampled outgoing directions with importance
// sampled incident ones
func estimateRhoHH(b BxDF, samplesA, samplesB []core.Vec2) core.Vec3 {
	n := min(len(samplesA), len(samplesB))
	if n == 0 {
		return core.Vec3{}
	}
	var r core.Vec3
	for i := 0; i < n; i++ {
		wo := core.UniformSampleHemisphere(samplesA[i])
		wi, f, pdfI := b.Sample(wo, samplesB[i])
		if pdfI > 0 {
			r = r.Add(f.Multiply(absCosTheta(wi) * absCosTheta(wo) / (core.UniformHemispherePDF * pdfI)))
		}
	}
	return r.Divide(math.Pi * float64(n))
}

// ScaledBxDF scales every value of the wrapped lobe by a constant color
type ScaledBxDF struct {
	BxDF  BxDF
	Scale core.Vec3
}

// Type implements BxDF
func (s *ScaledBxDF) Type() BxDFType { return s.BxDF.Type() }

// Evaluate implements BxDF
func (s *ScaledBxDF) Evaluate(wo, wi core.Vec3) core.Vec3 {
	return s.Scale.MultiplyVec(s.BxDF.Evaluate(wo, wi))
}

// Sample implements BxDF
func (s *ScaledBxDF) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64) {
	wi, f, pdf := s.BxDF.Sample(wo, u)
	return wi, s.Scale.MultiplyVec(f), pdf
}

// PDF implements BxDF
func (s *ScaledBxDF) PDF(wo, wi core.Vec3) float64 { return s.BxDF.PDF(wo, wi) }

// RhoHD implements BxDF
func (s *ScaledBxDF) RhoHD(wo core.Vec3, samples []core.Vec2) core.Vec3 {
	return s.Scale.MultiplyVec(s.BxDF.RhoHD(wo, samples))
}

// RhoHH implements BxDF
func (s *ScaledBxDF) RhoHH(samplesA, samplesB []core.Vec2) core.Vec3 {
	return s.Scale.MultiplyVec(s.BxDF.RhoHH(samplesA, samplesB))
}
