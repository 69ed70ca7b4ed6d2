package lights

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// sampleAreaEmission samples a cosine-weighted emission direction from a surface
// point and returns the emission sample with separate area and direction PDFs
func sampleAreaEmission(point, normal core.Vec3, areaPDF float64, radiance core.Vec3, sample core.Vec2) EmissionSample {
	emissionDir := core.SampleCosineHemisphere(normal, sample)

	cosTheta := emissionDir.Dot(normal)
	directionPDF := cosTheta / math.Pi

	return EmissionSample{
		Point:        point,
		Normal:       normal,
		Direction:    emissionDir,
		Emission:     radiance,
		AreaPDF:      areaPDF,
		DirectionPDF: directionPDF,
	}
}

// NewPowerDistribution weights each light by the luminance of its power
func NewPowerDistribution(lights []Light) *core.Distribution1D {
	weights := make([]float64, len(lights))
	for i, light := range lights {
		weights[i] = math.Max(0, light.Power().Luminance())
	}
	return core.NewDistribution1D(weights)
}

// PowerLightSampler selects lights in proportion to their emitted power
type PowerLightSampler struct {
	lights       []Light
	distribution *core.Distribution1D
}

// NewPowerLightSampler creates a sampler over the given lights
func NewPowerLightSampler(lights []Light) *PowerLightSampler {
	return &PowerLightSampler{
		lights:       lights,
		distribution: NewPowerDistribution(lights),
	}
}

// SampleLightEmission implements LightSampler
func (s *PowerLightSampler) SampleLightEmission(u float64) (Light, float64, int) {
	i, pdf := s.distribution.SampleDiscrete(u)
	if i < 0 {
		return nil, 0, -1
	}
	return s.lights[i], pdf, i
}

// GetLightProbability implements LightSampler
func (s *PowerLightSampler) GetLightProbability(lightIndex int) float64 {
	return s.distribution.PDF(lightIndex)
}

// GetLightCount implements LightSampler
func (s *PowerLightSampler) GetLightCount() int {
	return len(s.lights)
}

// SampleLightEmission selects a light with lightSample and samples emission
// from it. The returned selection probability is not folded into the sample.
func SampleLightEmission(lightSampler LightSampler, lightSample float64, samplePoint, sampleDirection core.Vec2) (EmissionSample, float64, bool) {
	if lightSampler.GetLightCount() == 0 {
		return EmissionSample{}, 0, false
	}
	light, pdf, _ := lightSampler.SampleLightEmission(lightSample)
	if light == nil || pdf == 0 {
		return EmissionSample{}, 0, false
	}
	return light.SampleEmission(samplePoint, sampleDirection), pdf, true
}
