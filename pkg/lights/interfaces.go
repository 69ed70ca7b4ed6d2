package lights

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

type LightType string

const (
	LightTypeArea LightType = "area"
)

// Light is a source photons can be emitted from
type Light interface {
	Type() LightType

	// SampleEmission samples a point on the light and a direction leaving it.
	// Returns EmissionSample with direction FROM the light surface.
	SampleEmission(samplePoint core.Vec2, sampleDirection core.Vec2) EmissionSample

	// Power returns the total flux emitted by the light
	Power() core.Vec3

	// Shape returns the geometry of the light so the scene can block rays with it
	Shape() geometry.Shape
}

// EmissionSample contains a sampled emission point and direction
type EmissionSample struct {
	Point        core.Vec3 // Point on the light surface
	Normal       core.Vec3 // Surface normal at the emission point (outward facing)
	Direction    core.Vec3 // Emission direction FROM the surface
	Emission     core.Vec3 // Emitted radiance at this point and direction
	AreaPDF      float64   // PDF for position sampling (per unit area)
	DirectionPDF float64   // PDF for the direction (per unit solid angle)
}

// PDF returns the joint density of the point and direction
func (e EmissionSample) PDF() float64 {
	return e.AreaPDF * e.DirectionPDF
}

// Ray returns the emitted ray starting eps away from the light surface
func (e EmissionSample) Ray(eps float64) core.Ray {
	return core.NewRayWithOffset(e.Point, e.Direction, eps)
}

// LightSampler chooses which light to emit from
type LightSampler interface {
	// SampleLightEmission selects a light and returns it with its selection probability and index
	SampleLightEmission(u float64) (Light, float64, int)

	// GetLightProbability returns the selection probability of a light
	GetLightProbability(lightIndex int) float64

	// GetLightCount returns the number of lights in this sampler
	GetLightCount() int
}
