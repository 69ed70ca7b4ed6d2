package lights

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// DiscLight represents a circular area light emitting from the side its normal points to
type DiscLight struct {
	*geometry.Disc           // Embed disc for hit testing
	Emission       core.Vec3 // Emitted radiance
}

// NewDiscLight creates a new disc light
func NewDiscLight(center, normal core.Vec3, radius float64, emission core.Vec3) *DiscLight {
	return &DiscLight{
		Disc:     geometry.NewDisc(center, normal, radius),
		Emission: emission,
	}
}

func (dl *DiscLight) Type() LightType {
	return LightTypeArea
}

// SampleEmission implements the Light interface
func (dl *DiscLight) SampleEmission(samplePoint core.Vec2, sampleDirection core.Vec2) EmissionSample {
	point, normal := dl.Disc.Sample(samplePoint)
	return sampleAreaEmission(point, normal, 1/dl.Disc.Area(), dl.Emission, sampleDirection)
}

// Power implements the Light interface
func (dl *DiscLight) Power() core.Vec3 {
	return dl.Emission.Multiply(dl.Disc.Area() * math.Pi)
}

// Shape implements the Light interface
func (dl *DiscLight) Shape() geometry.Shape {
	return dl.Disc
}
