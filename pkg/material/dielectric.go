package material

import (
	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// GlassMaterial is a smooth dielectric that both reflects and refracts
type GlassMaterial struct {
	Reflect         ColorSource
	Transmit        ColorSource
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewGlass creates clear glass with the given index of refraction
func NewGlass(refractiveIndex float64) *GlassMaterial {
	return &GlassMaterial{
		Reflect:         NewSolidColor(core.Gray(1)),
		Transmit:        NewSolidColor(core.Gray(1)),
		RefractiveIndex: refractiveIndex,
	}
}

// GetBSDF implements Material
func (g *GlassMaterial) GetBSDF(dg *geometry.DifferentialGeometry, a *arena.Arena) *BSDF {
	bsdf := NewBSDF(dg, g.RefractiveIndex, a)

	r := g.Reflect.Evaluate(dg.UV, dg.Point).Clamp(0, 1)
	if !r.IsBlack() {
		fresnel := arena.NewValue[FresnelDielectric](a)
		*fresnel = FresnelDielectric{EtaI: 1, EtaT: g.RefractiveIndex}
		spec := arena.NewValue[SpecularReflection](a)
		spec.R = r
		spec.Fresnel = fresnel
		bsdf.Add(spec)
	}

	t := g.Transmit.Evaluate(dg.UV, dg.Point).Clamp(0, 1)
	if !t.IsBlack() {
		trans := arena.NewValue[SpecularTransmission](a)
		*trans = NewSpecularTransmission(t, 1, g.RefractiveIndex)
		bsdf.Add(trans)
	}
	return bsdf
}
