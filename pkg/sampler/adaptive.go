package sampler

import (
	"github.com/df07/go-photon-mapper/pkg/core"
)

// AdaptiveSampler draws minSPP low-discrepancy samples per pixel and redoes
// the pixel with maxSPP samples when the returned colors disagree too much.
type AdaptiveSampler struct {
	random
	cursor
	minSPP, maxSPP int
	seed           int64
	supersample    bool
	pattern        []core.Vec2
}

// NewAdaptiveSampler creates an adaptive sampler over region. Both counts are
// rounded up to powers of two.
func NewAdaptiveSampler(region Region, minSPP, maxSPP int, seed int64) *AdaptiveSampler {
	minSPP = roundSPP("AdaptiveSampler min spp", minSPP)
	maxSPP = roundSPP("AdaptiveSampler max spp", maxSPP)
	if maxSPP < minSPP {
		maxSPP = minSPP
	}
	return &AdaptiveSampler{
		random:  newRandom(seed),
		cursor:  newCursor(region),
		minSPP:  minSPP,
		maxSPP:  maxSPP,
		seed:    seed,
		pattern: make([]core.Vec2, maxSPP),
	}
}

// Bounds implements Sampler
func (s *AdaptiveSampler) Bounds() Region { return s.region }

// HasSamples implements Sampler
func (s *AdaptiveSampler) HasSamples() bool { return !s.done() }

// SamplesPerPixel implements Sampler
func (s *AdaptiveSampler) SamplesPerPixel() int { return s.maxSPP }

// Supersampling reports whether the next batch is a redo at maxSPP
func (s *AdaptiveSampler) Supersampling() bool { return s.supersample }

// GetSamples implements Sampler. The cursor only moves in ReportResults.
func (s *AdaptiveSampler) GetSamples(dst []Sample) []Sample {
	dst = dst[:0]
	if s.done() {
		return dst
	}
	spp := s.minSPP
	if s.supersample {
		spp = s.maxSPP
	}
	pattern := s.pattern[:spp]
	LDPattern(pattern, s.rng)
	return appendPixelSamples(dst, pattern, s.x, s.y, s.rng)
}

// ReportResults implements Sampler. A high-contrast batch at minSPP is
// rejected and the same pixel is served again at maxSPP.
func (s *AdaptiveSampler) ReportResults(_ []Sample, colors []core.Vec3) bool {
	if s.supersample || s.minSPP == s.maxSPP || !NeedsSupersampling(colors) {
		s.supersample = false
		s.advance()
		return true
	}
	s.supersample = true
	return false
}

// Subsamplers implements Sampler
func (s *AdaptiveSampler) Subsamplers(w, h int) []Sampler {
	tiles := s.region.Partition(w, h)
	seeds := subSeeds(s.seed, len(tiles))
	out := make([]Sampler, len(tiles))
	for i, tile := range tiles {
		out[i] = NewAdaptiveSampler(tile, s.minSPP, s.maxSPP, seeds[i])
	}
	return out
}
