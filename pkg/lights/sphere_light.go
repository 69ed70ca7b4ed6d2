package lights

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// SphereLight represents a spherical area light emitting outwards
type SphereLight struct {
	*geometry.Sphere           // Embed sphere for hit testing
	Emission         core.Vec3 // Emitted radiance
}

// NewSphereLight creates a new spherical light
func NewSphereLight(center core.Vec3, radius float64, emission core.Vec3) *SphereLight {
	return &SphereLight{
		Sphere:   geometry.NewSphere(center, radius),
		Emission: emission,
	}
}

func (sl *SphereLight) Type() LightType {
	return LightTypeArea
}

// SampleEmission implements the Light interface, sampling the whole sphere uniformly by area
func (sl *SphereLight) SampleEmission(samplePoint core.Vec2, sampleDirection core.Vec2) EmissionSample {
	point, normal := sl.Sphere.Sample(samplePoint)
	return sampleAreaEmission(point, normal, 1/sl.Sphere.Area(), sl.Emission, sampleDirection)
}

// Power implements the Light interface
func (sl *SphereLight) Power() core.Vec3 {
	return sl.Emission.Multiply(sl.Sphere.Area() * math.Pi)
}

// Shape implements the Light interface
func (sl *SphereLight) Shape() geometry.Shape {
	return sl.Sphere
}
