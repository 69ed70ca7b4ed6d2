package scene

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// NewPlaneScene creates a square area light facing down onto an infinite
// diffuse ground plane. Photons that bounce back up escape the scene.
func NewPlaneScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 2, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = cameraOverrides[0]
	}

	s := New(geometry.NewCamera(cameraConfig))

	ground := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	s.Add(ground, material.NewMatte(core.NewVec3(0.5, 0.5, 0.5), 0))

	// 1x1 light at y=2, u × v points down
	s.AddQuadLight(
		core.NewVec3(-0.5, 2, -0.5),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(10, 10, 10),
	)
	return s
}
