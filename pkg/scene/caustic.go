package scene

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// NewCausticScene creates a checkered floor under a disc light with a row of
// specular objects: a glass sphere, a mirror panel, a copper sphere and a
// mixed glass/plastic sphere. Nearly every photon path through it is caustic.
func NewCausticScene() *Scene {
	config := geometry.CameraConfig{
		Center:      core.NewVec3(0, 3, 7),
		LookAt:      core.NewVec3(0, 0.7, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 4.0 / 3.0,
		VFov:        35.0,
	}
	s := New(geometry.NewCamera(config))

	checker := material.NewSolidCheckerboard(core.Gray(0.8), core.Gray(0.2), 0.5)
	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 12), material.NewTexturedMatte(checker, 10))

	// Mirror panel behind the objects, facing the camera
	s.Add(geometry.NewQuad(
		core.NewVec3(-2.5, 0, -1.5),
		core.NewVec3(5, 0, 0),
		core.NewVec3(0, 2.5, 0),
	), material.NewMirror(core.Gray(0.9)))

	s.Add(geometry.NewSphere(core.NewVec3(-1.2, 0.6, 0), 0.6), material.NewGlass(1.5))
	s.Add(geometry.NewSphere(core.NewVec3(0.3, 0.4, 0.6), 0.4), material.NewCopper(0.1))
	s.Add(geometry.NewSphere(core.NewVec3(1.4, 0.5, -0.2), 0.5), material.NewMix(
		material.NewGlass(1.33),
		material.NewPlastic(core.NewVec3(0.1, 0.2, 0.6), core.Gray(0.04), 0.1),
		0.3,
	))

	s.AddDiscLight(core.NewVec3(0, 4, 1), core.NewVec3(0, -1, 0), 0.75, core.Gray(20))
	return s
}
