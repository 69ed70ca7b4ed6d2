package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 2.0,
		VFov:        90.0,
	}
}

func TestCameraGetCameraForward(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)
	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
	if camera.Config().Height() != 200 {
		t.Errorf("Expected height 200, got %d", camera.Config().Height())
	}
}

func TestCameraGetRay(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	center := camera.GetRay(0.5, 0.5)
	if center.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Center ray direction = %v, expected (0, 0, -1)", center.Direction)
	}

	// 90 degree vertical fov: the top edge is 45 degrees up
	top := camera.GetRay(0.5, 1)
	if math.Abs(top.Direction.Y-top.Direction.Length()*math.Sqrt(0.5)) > 1e-9 {
		t.Errorf("Top ray direction = %v, expected 45 degrees up", top.Direction)
	}

	left := camera.GetRay(0, 0.5)
	if left.Direction.X >= 0 {
		t.Errorf("Left ray direction = %v, expected negative x", left.Direction)
	}
}

func TestCameraGetRayForPixel(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	topLeft := camera.GetRayForPixel(core.NewVec2(0, 0))
	if topLeft.Direction.X >= 0 || topLeft.Direction.Y <= 0 {
		t.Errorf("Pixel (0, 0) direction = %v, expected up and to the left", topLeft.Direction)
	}

	middle := camera.GetRayForPixel(core.NewVec2(200, 100))
	if middle.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Middle pixel direction = %v, expected (0, 0, -1)", middle.Direction)
	}
}
