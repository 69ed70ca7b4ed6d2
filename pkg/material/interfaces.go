package material

import (
	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// Material builds the scattering description of a surface point
type Material interface {
	// GetBSDF returns the BSDF at dg. The BSDF and its lobes are allocated
	// from a and stay valid until a is reset.
	GetBSDF(dg *geometry.DifferentialGeometry, a *arena.Arena) *BSDF
}
