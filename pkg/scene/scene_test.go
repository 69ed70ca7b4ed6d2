package scene

import (
	"math"
	"sync"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/material"
)

func TestScene_IntersectClosest(t *testing.T) {
	s := New(nil)
	near := material.NewMatte(core.Gray(0.5), 0)
	far := material.NewMatte(core.Gray(0.2), 0)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -10), 1), far)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -5), 1), near)
	s.Freeze()

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	var isect Intersection
	if !s.Intersect(&ray, &isect) {
		t.Fatal("Expected ray to hit the spheres")
	}
	if isect.Material != material.Material(near) || isect.Primitive != 1 {
		t.Errorf("Expected the nearer sphere, got primitive %d", isect.Primitive)
	}
	if math.Abs(isect.T-4) > 1e-9 || math.Abs(ray.TMax-4) > 1e-9 {
		t.Errorf("Expected hit at t=4 with TMax shrunk, got t=%f TMax=%f", isect.T, ray.TMax)
	}

	miss := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if s.Intersect(&miss, &isect) {
		t.Error("Expected ray pointing away to miss")
	}
}

func TestScene_LightsBlockRays(t *testing.T) {
	s := New(nil)
	s.AddQuadLight(core.NewVec3(-1, 1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), core.Gray(1))
	s.Freeze()

	if s.GetPrimitiveCount() != 1 || len(s.Lights) != 1 {
		t.Fatalf("Expected light shape to be added as a primitive, got %d primitives", s.GetPrimitiveCount())
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	var isect Intersection
	if !s.Intersect(&ray, &isect) {
		t.Fatal("Expected ray to hit the light")
	}
	if isect.Material != nil {
		t.Errorf("Expected light surface to have no material, got %T", isect.Material)
	}
}

func TestScene_MutationAfterFreezePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(s *Scene)
	}{
		{"Add", func(s *Scene) { s.Add(geometry.NewSphere(core.Vec3{}, 1), nil) }},
		{"AddLight", func(s *Scene) { s.AddSphereLight(core.Vec3{}, 1, core.Gray(1)) }},
		{"AddQuadLight", func(s *Scene) {
			s.AddQuadLight(core.Vec3{}, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.Gray(1))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			s.Freeze()
			defer func() {
				if recover() == nil {
					t.Errorf("Expected %s after Freeze to panic", tt.name)
				}
			}()
			tt.fn(s)
		})
	}
}

func TestScene_FreezeBuildsLightSampler(t *testing.T) {
	s := New(nil)
	if s.Frozen() || s.LightSampler() != nil {
		t.Fatal("New scene should not be frozen")
	}
	s.AddSphereLight(core.NewVec3(0, 5, 0), 1, core.Gray(2))
	s.AddQuadLight(core.Vec3{}, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), core.Gray(2))
	s.Freeze()
	s.Freeze()

	if !s.Frozen() {
		t.Fatal("Expected scene to be frozen")
	}
	ls := s.LightSampler()
	if ls.GetLightCount() != 2 {
		t.Fatalf("Expected 2 lights, got %d", ls.GetLightCount())
	}
	// Sphere area 4π, quad area 1, same radiance
	expected := 4 * math.Pi / (4*math.Pi + 1)
	if p := ls.GetLightProbability(0); math.Abs(p-expected) > 1e-9 {
		t.Errorf("Sphere light probability = %f, expected %f", p, expected)
	}
}

func TestScene_ConcurrentIntersect(t *testing.T) {
	s := NewCornellScene()
	s.Freeze()

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				ray := core.NewRay(core.NewVec3(278, 278, 278), core.NewVec3(float64(w)-3.5, float64(i%7)-3, 1).Normalize())
				var isect Intersection
				if !s.Intersect(&ray, &isect) {
					errs <- "ray escaped the closed box"
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestBuiltInScenes(t *testing.T) {
	plane := NewPlaneScene()
	if len(plane.Lights) != 1 || plane.GetPrimitiveCount() != 2 {
		t.Errorf("Plane scene: %d lights, %d primitives", len(plane.Lights), plane.GetPrimitiveCount())
	}
	if plane.Camera == nil {
		t.Error("Plane scene has no camera")
	}

	// Photons leaving the light travel down onto the plane
	ray := core.NewRay(core.NewVec3(0, 1.99, 0), core.NewVec3(0, -1, 0))
	var isect Intersection
	if !plane.Intersect(&ray, &isect) || isect.Material == nil {
		t.Error("Expected downward ray below the light to hit the ground")
	}

	cornell := NewCornellScene()
	if len(cornell.Lights) != 1 || cornell.GetPrimitiveCount() != 8 {
		t.Errorf("Cornell scene: %d lights, %d primitives", len(cornell.Lights), cornell.GetPrimitiveCount())
	}

	caustic := NewCausticScene()
	if len(caustic.Lights) != 1 || caustic.GetPrimitiveCount() != 6 {
		t.Errorf("Caustic scene: %d lights, %d primitives", len(caustic.Lights), caustic.GetPrimitiveCount())
	}
	// Straight down from the light center lands on the floor
	ray = core.NewRay(core.NewVec3(0, 3.99, 1), core.NewVec3(0, -1, 0))
	if !caustic.Intersect(&ray, &isect) || isect.Material == nil || isect.Point.Y > 1e-6 {
		t.Error("Expected ray below the disc light to reach the floor")
	}
}
