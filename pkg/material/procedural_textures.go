package material

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Checkerboard alternates two colors over a grid in UV space
type Checkerboard struct {
	Color1, Color2 core.Vec3
	Scale          float64 // Checks per unit of UV
}

// NewCheckerboard creates a procedural checkerboard pattern
func NewCheckerboard(color1, color2 core.Vec3, scale float64) *Checkerboard {
	if scale <= 0 {
		scale = 1
	}
	return &Checkerboard{Color1: color1, Color2: color2, Scale: scale}
}

// Evaluate implements ColorSource
func (c *Checkerboard) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	checkX := int(math.Floor(uv.X * c.Scale))
	checkY := int(math.Floor(uv.Y * c.Scale))
	if (checkX+checkY)%2 == 0 {
		return c.Color1
	}
	return c.Color2
}

// SolidCheckerboard alternates two colors over a 3D lattice, for surfaces
// with unbounded or degenerate UVs such as infinite planes
type SolidCheckerboard struct {
	Color1, Color2 core.Vec3
	Size           float64 // Edge length of one cell
}

// NewSolidCheckerboard creates a 3D checkerboard with cells of the given size
func NewSolidCheckerboard(color1, color2 core.Vec3, size float64) *SolidCheckerboard {
	if size <= 0 {
		size = 1
	}
	return &SolidCheckerboard{Color1: color1, Color2: color2, Size: size}
}

// Evaluate implements ColorSource
func (c *SolidCheckerboard) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sum := int(math.Floor(point.X/c.Size)) + int(math.Floor(point.Y/c.Size)) + int(math.Floor(point.Z/c.Size))
	if sum%2 == 0 {
		return c.Color1
	}
	return c.Color2
}
