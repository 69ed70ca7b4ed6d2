package material

import (
	"fmt"

	"github.com/df07/go-photon-mapper/pkg/arena"
	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
)

// MaxBxDFs is the capacity of a BSDF
const MaxBxDFs = 8

// DefaultRhoSqrtSamples is the per-axis sample count of reflectance estimates
const DefaultRhoSqrtSamples = 6

// BSDF aggregates up to MaxBxDFs lobes at a surface point and converts
// between world space and the local shading frame.
//
// The shading frame is (bitangent, tangent, normal): the bitangent follows
// ∂p/∂u, the tangent is normal × bitangent, and the bitangent is then
// recomputed so the frame is orthonormal.
type BSDF struct {
	DG         geometry.DifferentialGeometry
	Eta        float64 // Relative index of refraction at the boundary
	Normal     core.Vec3
	GeomNormal core.Vec3
	Tangent    core.Vec3
	Bitangent  core.Vec3

	bxdfs [MaxBxDFs]BxDF
	n     int
}

// NewBSDF creates an empty BSDF for the surface described by dg, allocated from a
func NewBSDF(dg *geometry.DifferentialGeometry, eta float64, a *arena.Arena) *BSDF {
	b := arena.NewValue[BSDF](a)
	b.DG = *dg
	b.Eta = eta
	b.Normal = dg.Normal.Normalize()
	b.GeomNormal = dg.GeomNormal.Normalize()

	bitangent := dg.DpDu.Normalize()
	tangent := b.Normal.Cross(bitangent)
	if tangent.LengthSquared() < 1e-12 {
		// ∂p/∂u is missing or parallel to the normal
		b.Bitangent, b.Tangent = core.OrthonormalBasis(b.Normal)
		return b
	}
	b.Tangent = tangent.Normalize()
	b.Bitangent = b.Tangent.Cross(b.Normal).Normalize()
	return b
}

// Add appends a lobe. Adding more than MaxBxDFs lobes panics.
func (b *BSDF) Add(bxdf BxDF) {
	if b.n >= MaxBxDFs {
		panic(fmt.Sprintf("bsdf: cannot hold more than %d bxdfs", MaxBxDFs))
	}
	b.bxdfs[b.n] = bxdf
	b.n++
}

// NumBxDFs returns the number of lobes
func (b *BSDF) NumBxDFs() int {
	return b.n
}

// NumMatching returns the number of lobes whose type matches flags
func (b *BSDF) NumMatching(flags BxDFType) int {
	n := 0
	for _, bxdf := range b.bxdfs[:b.n] {
		if bxdf.Type().Matches(flags) {
			n++
		}
	}
	return n
}

// HasNonSpecular reports whether any lobe can be evaluated for arbitrary directions
func (b *BSDF) HasNonSpecular() bool {
	return b.NumMatching(BxDFAll&^BxDFSpecular) > 0
}

// MatchingAt returns the i-th lobe matching flags. An index beyond the matching
// lobes panics.
func (b *BSDF) MatchingAt(i int, flags BxDFType) BxDF {
	n := i
	for _, bxdf := range b.bxdfs[:b.n] {
		if bxdf.Type().Matches(flags) {
			if n == 0 {
				return bxdf
			}
			n--
		}
	}
	panic(fmt.Sprintf("bsdf: component %d out of range, %d bxdfs match %v", i, b.NumMatching(flags), flags))
}

// ToShading transforms a world space vector into the shading frame
func (b *BSDF) ToShading(v core.Vec3) core.Vec3 {
	return core.NewVec3(v.Dot(b.Bitangent), v.Dot(b.Tangent), v.Dot(b.Normal))
}

// FromShading transforms a shading frame vector back to world space
func (b *BSDF) FromShading(v core.Vec3) core.Vec3 {
	return b.Bitangent.Multiply(v.X).Add(b.Tangent.Multiply(v.Y)).Add(b.Normal.Multiply(v.Z))
}

// Evaluate sums the matching lobes for a pair of world space directions. The
// geometric normal decides the side: directions on the same side only see
// reflection lobes, opposite sides only see transmission lobes.
func (b *BSDF) Evaluate(woWorld, wiWorld core.Vec3, flags BxDFType) core.Vec3 {
	wo := b.ToShading(woWorld)
	wi := b.ToShading(wiWorld)
	if woWorld.Dot(b.GeomNormal)*wiWorld.Dot(b.GeomNormal) > 0 {
		flags &^= BxDFTransmission
	} else {
		flags &^= BxDFReflection
	}

	var f core.Vec3
	for _, bxdf := range b.bxdfs[:b.n] {
		if bxdf.Type().Matches(flags) {
			f = f.Add(bxdf.Evaluate(wo, wi))
		}
	}
	return f
}

// BSDFSample is the outcome of sampling a BSDF
type BSDFSample struct {
	Wi   core.Vec3 // World space incident direction
	F    core.Vec3 // BSDF value for (wo, Wi)
	PDF  float64   // Zero means no direction was produced
	Type BxDFType  // Type of the sampled lobe, zero on failure
}

// Sample picks one matching lobe with comp and samples it with u.
//
// When more than one lobe matches and the chosen lobe is not specular, the
// returned pdf and value cover every matching lobe. A specular choice only has
// its pdf divided by the number of matching lobes.
func (b *BSDF) Sample(woWorld core.Vec3, u core.Vec2, comp float64, flags BxDFType) BSDFSample {
	matching := b.NumMatching(flags)
	if matching == 0 {
		return BSDFSample{}
	}
	selected := min(int(comp*float64(matching)), matching-1)
	bxdf := b.MatchingAt(selected, flags)

	wo := b.ToShading(woWorld)
	wi, f, pdf := bxdf.Sample(wo, u)
	if pdf == 0 {
		return BSDFSample{}
	}

	s := BSDFSample{
		Wi:   b.FromShading(wi),
		F:    f,
		PDF:  pdf,
		Type: bxdf.Type(),
	}
	if matching > 1 {
		if !s.Type.IsSpecular() {
			s.PDF = b.PDF(woWorld, s.Wi, flags)
			s.F = b.Evaluate(woWorld, s.Wi, flags)
		} else {
			s.PDF /= float64(matching)
		}
	}
	return s
}

// PDF averages the densities of the matching lobes
func (b *BSDF) PDF(woWorld, wiWorld core.Vec3, flags BxDFType) float64 {
	wo := b.ToShading(woWorld)
	wi := b.ToShading(wiWorld)
	pdf := 0.0
	n := 0
	for _, bxdf := range b.bxdfs[:b.n] {
		if bxdf.Type().Matches(flags) {
			n++
			pdf += bxdf.PDF(wo, wi)
		}
	}
	if n == 0 {
		return 0
	}
	return pdf / float64(n)
}

// Sample2DFiller is implemented by samplers that can fill a whole set of
// well-distributed 2D samples at once
type Sample2DFiller interface {
	Fill2D(dst []core.Vec2)
}

// fillSamples draws n 2D samples from s into arena memory
func fillSamples(s core.Sampler, a *arena.Arena, n int) []core.Vec2 {
	out := arena.Alloc[core.Vec2](a, n)
	if filler, ok := s.(Sample2DFiller); ok {
		filler.Fill2D(out)
		return out
	}
	for i := range out {
		out[i] = s.Get2D()
	}
	return out
}

// RhoHD estimates the hemispherical-directional reflectance of the matching
// lobes for the world space direction wo, using sqrtSamples² samples
func (b *BSDF) RhoHD(woWorld core.Vec3, s core.Sampler, a *arena.Arena, flags BxDFType, sqrtSamples int) core.Vec3 {
	samples := fillSamples(s, a, sqrtSamples*sqrtSamples)
	wo := b.ToShading(woWorld)
	var r core.Vec3
	for _, bxdf := range b.bxdfs[:b.n] {
		if bxdf.Type().Matches(flags) {
			r = r.Add(bxdf.RhoHD(wo, samples))
		}
	}
	return r
}

// RhoHH estimates the hemispherical-hemispherical reflectance of the matching lobes
func (b *BSDF) RhoHH(s core.Sampler, a *arena.Arena, flags BxDFType, sqrtSamples int) core.Vec3 {
	n := sqrtSamples * sqrtSamples
	samplesA := fillSamples(s, a, n)
	samplesB := fillSamples(s, a, n)
	var r core.Vec3
	for _, bxdf := range b.bxdfs[:b.n] {
		if bxdf.Type().Matches(flags) {
			r = r.Add(bxdf.RhoHH(samplesA, samplesB))
		}
	}
	return r
}
