package material

import (
	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// PlasticMaterial layers a glossy dielectric coating over a diffuse base
type PlasticMaterial struct {
	Diffuse   ColorSource
	Specular  ColorSource
	Roughness float64 // Roughness of the coating in (0, 1]
}

// NewPlastic creates a plastic with solid colors
func NewPlastic(diffuse, specular core.Vec3, roughness float64) *PlasticMaterial {
	return &PlasticMaterial{
		Diffuse:   NewSolidColor(diffuse),
		Specular:  NewSolidColor(specular),
		Roughness: roughness,
	}
}

// GetBSDF implements Material
func (p *PlasticMaterial) GetBSDF(dg *geometry.DifferentialGeometry, a *arena.Arena) *BSDF {
	bsdf := NewBSDF(dg, 1, a)

	kd := p.Diffuse.Evaluate(dg.UV, dg.Point).Clamp(0, 1)
	if !kd.IsBlack() {
		base := arena.NewValue[Lambertian](a)
		base.R = kd
		bsdf.Add(base)
	}

	ks := p.Specular.Evaluate(dg.UV, dg.Point).Clamp(0, 1)
	if !ks.IsBlack() {
		fresnel := arena.NewValue[FresnelDielectric](a)
		*fresnel = FresnelDielectric{EtaI: 1.5, EtaT: 1}
		coat := arena.NewValue[TorranceSparrow](a)
		coat.R = ks
		coat.Fresnel = fresnel
		coat.Distribution = NewBlinn(p.Roughness)
		bsdf.Add(coat)
	}
	return bsdf
}
