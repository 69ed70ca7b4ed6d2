package sampler

import (
	"math"

	"github.com/golang/glog"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// StratifiedSampler draws n×n jittered samples per pixel
type StratifiedSampler struct {
	random
	cursor
	n       int
	seed    int64
	pattern []core.Vec2
}

// NewStratifiedSampler creates a stratified sampler over region. spp is
// rounded up to the next perfect square.
func NewStratifiedSampler(region Region, spp int, seed int64) *StratifiedSampler {
	n := int(math.Ceil(math.Sqrt(float64(max(spp, 1)))))
	if n*n != spp {
		glog.Warningf("sampler: stratified sampler requires a square spp, rounded %d up to %d", spp, n*n)
	}
	return &StratifiedSampler{
		random:  newRandom(seed),
		cursor:  newCursor(region),
		n:       n,
		seed:    seed,
		pattern: make([]core.Vec2, n*n),
	}
}

// Bounds implements Sampler
func (s *StratifiedSampler) Bounds() Region { return s.region }

// HasSamples implements Sampler
func (s *StratifiedSampler) HasSamples() bool { return !s.done() }

// SamplesPerPixel implements Sampler
func (s *StratifiedSampler) SamplesPerPixel() int { return s.n * s.n }

// GetSamples implements Sampler. The cursor advances once the batch is built.
func (s *StratifiedSampler) GetSamples(dst []Sample) []Sample {
	dst = dst[:0]
	if s.done() {
		return dst
	}
	StratifiedPattern(s.n, s.rng, s.pattern)
	dst = appendPixelSamples(dst, s.pattern, s.x, s.y, s.rng)
	s.advance()
	return dst
}

// ReportResults implements Sampler. Stratified batches are always accepted.
func (s *StratifiedSampler) ReportResults([]Sample, []core.Vec3) bool { return true }

// Subsamplers implements Sampler
func (s *StratifiedSampler) Subsamplers(w, h int) []Sampler {
	tiles := s.region.Partition(w, h)
	seeds := subSeeds(s.seed, len(tiles))
	out := make([]Sampler, len(tiles))
	for i, tile := range tiles {
		out[i] = NewStratifiedSampler(tile, s.n*s.n, seeds[i])
	}
	return out
}
