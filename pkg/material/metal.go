package material

import (
	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// MetalMaterial is a rough conductor described by its complex index of refraction
type MetalMaterial struct {
	Eta       ColorSource // Refractive index per channel
	K         ColorSource // Absorption coefficient per channel
	Roughness float64     // Microfacet roughness in (0, 1]
}

// NewMetal creates a metal with solid eta and k
func NewMetal(eta, k core.Vec3, roughness float64) *MetalMaterial {
	return &MetalMaterial{
		Eta:       NewSolidColor(eta),
		K:         NewSolidColor(k),
		Roughness: roughness,
	}
}

// NewGold creates a gold-like metal
func NewGold(roughness float64) *MetalMaterial {
	return NewMetal(core.NewVec3(0.143, 0.374, 1.442), core.NewVec3(3.983, 2.385, 1.603), roughness)
}

// NewCopper creates a copper-like metal
func NewCopper(roughness float64) *MetalMaterial {
	return NewMetal(core.NewVec3(0.200, 0.924, 1.102), core.NewVec3(3.912, 2.452, 2.142), roughness)
}

// GetBSDF implements Material
func (m *MetalMaterial) GetBSDF(dg *geometry.DifferentialGeometry, a *arena.Arena) *BSDF {
	bsdf := NewBSDF(dg, 1, a)

	fresnel := arena.NewValue[FresnelConductor](a)
	fresnel.Eta = m.Eta.Evaluate(dg.UV, dg.Point)
	fresnel.K = m.K.Evaluate(dg.UV, dg.Point)

	ts := arena.NewValue[TorranceSparrow](a)
	ts.R = core.Gray(1)
	ts.Fresnel = fresnel
	ts.Distribution = NewBlinn(m.Roughness)
	bsdf.Add(ts)
	return bsdf
}

// MirrorMaterial is a perfect specular reflector
type MirrorMaterial struct {
	Reflect ColorSource
}

// NewMirror creates a mirror with a solid reflectance
func NewMirror(reflect core.Vec3) *MirrorMaterial {
	return &MirrorMaterial{Reflect: NewSolidColor(reflect)}
}

// GetBSDF implements Material
func (m *MirrorMaterial) GetBSDF(dg *geometry.DifferentialGeometry, a *arena.Arena) *BSDF {
	bsdf := NewBSDF(dg, 1, a)
	r := m.Reflect.Evaluate(dg.UV, dg.Point).Clamp(0, 1)
	if r.IsBlack() {
		return bsdf
	}
	spec := arena.NewValue[SpecularReflection](a)
	spec.R = r
	spec.Fresnel = FresnelNoOp{}
	bsdf.Add(spec)
	return bsdf
}
