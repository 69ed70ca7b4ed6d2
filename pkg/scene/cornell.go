package scene

import (
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// NewCornellScene creates a classic Cornell box scene with quad walls, a
// ceiling light, a glass sphere and a metal sphere. The glass sphere is the
// main source of caustic photons.
func NewCornellScene() *Scene {
	config := geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:          core.NewVec3(0, 1, 0),        // Standard up direction
		Width:       400,
		AspectRatio: 1.0,  // Square aspect ratio for Cornell box
		VFov:        40.0, // Field of view
	}

	s := New(geometry.NewCamera(config))

	// Create materials
	white := material.NewMatte(core.NewVec3(0.73, 0.73, 0.73), 0)
	red := material.NewMatte(core.NewVec3(0.65, 0.05, 0.05), 0)
	green := material.NewMatte(core.NewVec3(0.12, 0.45, 0.15), 0)

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0

	// Floor (white) - XZ plane at y=0
	s.Add(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
	), white)

	// Ceiling (white) - XZ plane at y=boxSize
	s.Add(geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
	), white)

	// Back wall (white) - XY plane at z=boxSize
	s.Add(geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
	), white)

	// Left wall (red) - YZ plane at x=0
	s.Add(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
	), red)

	// Right wall (green) - YZ plane at x=boxSize
	s.Add(geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
	), green)

	// Ceiling light, slightly below the ceiling and facing down
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	s.AddQuadLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(15.0, 15.0, 15.0),
	)

	// Left sphere (smaller, metallic)
	s.Add(geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5), material.NewGold(0.05))

	// Right sphere (larger, glass)
	s.Add(geometry.NewSphere(core.NewVec3(370, 90, 351), 90), material.NewGlass(1.5))

	return s
}
