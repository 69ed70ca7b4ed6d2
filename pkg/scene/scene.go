package scene

import (
	"fmt"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// Primitive pairs a shape with the material of its surface. A nil material
// absorbs everything that reaches it.
type Primitive struct {
	Shape    geometry.Shape
	Material material.Material
}

// Intersection is a ray hit against the scene
type Intersection struct {
	geometry.DifferentialGeometry
	Material  material.Material // Nil when the surface has no material
	Primitive int               // Index of the primitive that was hit
}

// Scene contains all the elements needed for photon shooting and rendering.
// A scene is built with Add and AddLight, then frozen. After Freeze it is
// read-only and safe for concurrent use.
type Scene struct {
	Camera     *geometry.Camera
	Primitives []Primitive    // Objects in the scene
	Lights     []lights.Light // Lights in the scene

	lightSampler lights.LightSampler
	frozen       bool
}

// New creates an empty scene viewed through camera
func New(camera *geometry.Camera) *Scene {
	return &Scene{Camera: camera}
}

// NewGroundQuad creates a large horizontal quad with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64) *geometry.Quad {
	// Create corner at bottom-left of the quad
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0) which normalizes to (0,1,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v)
}

func (s *Scene) mustNotBeFrozen(op string) {
	if s.frozen {
		panic(fmt.Sprintf("scene: %s after Freeze", op))
	}
}

// Add adds a shape with its material
func (s *Scene) Add(shape geometry.Shape, mat material.Material) {
	s.mustNotBeFrozen("Add")
	s.Primitives = append(s.Primitives, Primitive{Shape: shape, Material: mat})
}

// AddLight adds a light. Its shape becomes a primitive without material so
// that it blocks rays.
func (s *Scene) AddLight(light lights.Light) {
	s.mustNotBeFrozen("AddLight")
	s.Lights = append(s.Lights, light)
	s.Primitives = append(s.Primitives, Primitive{Shape: light.Shape()})
}

// AddSphereLight adds a spherical light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) {
	s.AddLight(lights.NewSphereLight(center, radius, emission))
}

// AddQuadLight adds a rectangular area light to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	s.AddLight(lights.NewQuadLight(corner, u, v, emission))
}

// AddDiscLight adds a circular area light to the scene
func (s *Scene) AddDiscLight(center, normal core.Vec3, radius float64, emission core.Vec3) {
	s.AddLight(lights.NewDiscLight(center, normal, radius, emission))
}

// Freeze prepares the scene for rendering. Freezing twice is a no-op.
func (s *Scene) Freeze() {
	if s.frozen {
		return
	}
	s.lightSampler = lights.NewPowerLightSampler(s.Lights)
	s.frozen = true
}

// Frozen reports whether Freeze has been called
func (s *Scene) Frozen() bool {
	return s.frozen
}

// LightSampler returns the power-proportional light selection distribution.
// It is nil until the scene is frozen.
func (s *Scene) LightSampler() lights.LightSampler {
	return s.lightSampler
}

// Intersect finds the closest hit along ray within (ray.TMin, ray.TMax).
// On a hit it fills isect and shrinks ray.TMax to the hit distance.
func (s *Scene) Intersect(ray *core.Ray, isect *Intersection) bool {
	hit := false
	var dg geometry.DifferentialGeometry
	for i, p := range s.Primitives {
		if p.Shape.Intersect(ray, &dg) {
			hit = true
			isect.DifferentialGeometry = dg
			isect.Material = p.Material
			isect.Primitive = i
		}
	}
	return hit
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}
