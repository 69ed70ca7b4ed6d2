package material

import (
	"math"

	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// MixMaterial blends two materials by scaling their lobes
type MixMaterial struct {
	Material1 Material
	Material2 Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 Material, ratio float64) *MixMaterial {
	return &MixMaterial{
		Material1: material1,
		Material2: material2,
		Ratio:     math.Max(0.0, math.Min(ratio, 1.0)),
	}
}

// GetBSDF implements Material. The two BSDFs together must not exceed
// MaxBxDFs lobes.
func (m *MixMaterial) GetBSDF(dg *geometry.DifferentialGeometry, a *arena.Arena) *BSDF {
	b1 := m.Material1.GetBSDF(dg, a)
	b2 := m.Material2.GetBSDF(dg, a)

	eta := b1.Eta
	if eta == 1 {
		eta = b2.Eta
	}
	bsdf := NewBSDF(dg, eta, a)
	m.addScaled(bsdf, b1, 1-m.Ratio, a)
	m.addScaled(bsdf, b2, m.Ratio, a)
	return bsdf
}

func (m *MixMaterial) addScaled(dst, src *BSDF, weight float64, a *arena.Arena) {
	if weight == 0 {
		return
	}
	for _, bxdf := range src.bxdfs[:src.n] {
		scaled := arena.NewValue[ScaledBxDF](a)
		scaled.BxDF = bxdf
		scaled.Scale = core.Gray(weight)
		dst.Add(scaled)
	}
}
