package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
)

func TestPlane_Intersect_BasicIntersection(t *testing.T) {
	// Create a horizontal plane at y=0
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	var dg DifferentialGeometry
	if !plane.Intersect(&ray, &dg) {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(dg.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", dg.T)
	}
	if ray.TMax != dg.T {
		t.Errorf("Expected ray TMax to shrink to %f, got %f", dg.T, ray.TMax)
	}
	if dg.Point.Length() > 1e-9 {
		t.Errorf("Expected hit point at origin, got %v", dg.Point)
	}
	if math.Abs(dg.DpDu.Dot(dg.Normal)) > 1e-9 {
		t.Errorf("Tangent %v is not perpendicular to normal %v", dg.DpDu, dg.Normal)
	}
}

func TestPlane_Intersect_Misses(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"parallel", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))},
		{"behind", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))},
		{"beyond tmax", core.Ray{Origin: core.NewVec3(0, 5, 0), Direction: core.NewVec3(0, -1, 0), TMax: 2}},
		{"within epsilon", core.NewRayWithOffset(core.NewVec3(0, 1e-4, 0), core.NewVec3(0, -1, 0), 1e-3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dg DifferentialGeometry
			ray := tt.ray
			if plane.Intersect(&ray, &dg) {
				t.Errorf("Expected miss, got hit at t=%f", dg.T)
			}
		})
	}
}
