package geometry

import (
	"github.com/df07/go-photon-mapper/pkg/core"
)

// DifferentialGeometry is the local surface description at a ray hit
type DifferentialGeometry struct {
	Point      core.Vec3 // Point of intersection
	Normal     core.Vec3 // Shading normal (outward facing, unit length)
	GeomNormal core.Vec3 // True surface normal, decides reflection vs transmission
	DpDu       core.Vec3 // Parametric tangent ∂p/∂u
	DpDv       core.Vec3 // Parametric tangent ∂p/∂v
	UV         core.Vec2 // Surface parameterization
	T          float64   // Ray parameter of the hit
}

// Shape interface for objects that can be hit by rays.
// Intersect fills dg and shrinks ray.TMax to the hit distance when the ray hits
// the shape within (ray.TMin, ray.TMax).
type Shape interface {
	Intersect(ray *core.Ray, dg *DifferentialGeometry) bool
}

// SampleableShape is a shape with finite area that can be sampled uniformly by area,
// which is what area lights need for photon emission
type SampleableShape interface {
	Shape
	Area() float64
	Sample(u core.Vec2) (point core.Vec3, normal core.Vec3)
}
