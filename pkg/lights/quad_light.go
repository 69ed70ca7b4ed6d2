package lights

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// QuadLight represents a rectangular area light emitting from the side its normal points to
type QuadLight struct {
	*geometry.Quad           // Embed quad for hit testing
	Emission       core.Vec3 // Emitted radiance
}

// NewQuadLight creates a new quad light. The normal is u × v.
func NewQuadLight(corner, u, v core.Vec3, emission core.Vec3) *QuadLight {
	return &QuadLight{
		Quad:     geometry.NewQuad(corner, u, v),
		Emission: emission,
	}
}

func (ql *QuadLight) Type() LightType {
	return LightTypeArea
}

// SampleEmission implements the Light interface - samples emission from the quad surface
func (ql *QuadLight) SampleEmission(samplePoint core.Vec2, sampleDirection core.Vec2) EmissionSample {
	point, normal := ql.Quad.Sample(samplePoint)
	return sampleAreaEmission(point, normal, 1/ql.Quad.Area(), ql.Emission, sampleDirection)
}

// Power implements the Light interface
func (ql *QuadLight) Power() core.Vec3 {
	return ql.Emission.Multiply(ql.Quad.Area() * math.Pi)
}

// Shape implements the Light interface
func (ql *QuadLight) Shape() geometry.Shape {
	return ql.Quad
}
