package sampler

import (
	"math"
	"math/rand"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// LDSampler draws a scrambled (0,2)-sequence per pixel. Every batch uses a
// fresh scramble and is shuffled before it is returned.
type LDSampler struct {
	random
	cursor
	spp     int
	seed    int64
	pattern []core.Vec2

	// Per-sampler scrambles and offsets for Dimensions
	scramble [2]uint32
	offsets  []float64
}

// NewLDSampler creates a low-discrepancy sampler over region. spp is rounded
// up to a power of two.
func NewLDSampler(region Region, spp int, seed int64) *LDSampler {
	spp = roundSPP("LDSampler spp", spp)
	s := &LDSampler{
		random:  newRandom(seed),
		cursor:  newCursor(region),
		spp:     spp,
		seed:    seed,
		pattern: make([]core.Vec2, spp),
	}
	s.scramble = [2]uint32{s.rng.Uint32(), s.rng.Uint32()}
	return s
}

// Bounds implements Sampler
func (s *LDSampler) Bounds() Region { return s.region }

// HasSamples implements Sampler
func (s *LDSampler) HasSamples() bool { return !s.done() }

// SamplesPerPixel implements Sampler
func (s *LDSampler) SamplesPerPixel() int { return s.spp }

// GetSamples implements Sampler. The cursor advances once the batch is built.
func (s *LDSampler) GetSamples(dst []Sample) []Sample {
	dst = dst[:0]
	if s.done() {
		return dst
	}
	LDPattern(s.pattern, s.rng)
	dst = appendPixelSamples(dst, s.pattern, s.x, s.y, s.rng)
	s.advance()
	return dst
}

// ReportResults implements Sampler. Low-discrepancy batches are always accepted.
func (s *LDSampler) ReportResults([]Sample, []core.Vec3) bool { return true }

// Subsamplers implements Sampler
func (s *LDSampler) Subsamplers(w, h int) []Sampler {
	tiles := s.region.Partition(w, h)
	seeds := subSeeds(s.seed, len(tiles))
	out := make([]Sampler, len(tiles))
	for i, tile := range tiles {
		out[i] = NewLDSampler(tile, s.spp, seeds[i])
	}
	return out
}

// Fill2D fills dst with a shuffled (0,2)-sequence. Callers that estimate
// integrals with many samples use it instead of Get2D.
func (s *LDSampler) Fill2D(dst []core.Vec2) {
	LDPattern(dst, s.rng)
}

// Dimensions fills dst with the index-th point of a len(dst)-dimensional
// sequence. The first two dimensions come from the (0,2)-sequence, the rest
// from radical inverses in successive prime bases, each rotated by a random
// per-sampler offset.
func (s *LDSampler) Dimensions(dst []float64, index int) {
	if len(dst) > 2+len(primes) {
		panic("sampler: too many dimensions requested")
	}
	for len(s.offsets) < len(dst)-2 {
		s.offsets = append(s.offsets, s.rng.Float64())
	}
	n := uint32(index)
	for d := range dst {
		switch d {
		case 0:
			dst[d] = VanDerCorput(n, s.scramble[0])
		case 1:
			dst[d] = Sobol2(n, s.scramble[1])
		default:
			v := RadicalInverse(primes[d-2], uint64(index)) + s.offsets[d-2]
			dst[d] = min(v-math.Floor(v), core.OneMinusEpsilon)
		}
	}
}

func appendPixelSamples(dst []Sample, pattern []core.Vec2, x, y int, rng *rand.Rand) []Sample {
	for _, p := range pattern {
		dst = append(dst, Sample{
			Pos:  core.NewVec2(float64(x)+p.X, float64(y)+p.Y),
			Lens: core.NewVec2(rng.Float64(), rng.Float64()),
			X:    x,
			Y:    y,
		})
	}
	return dst
}
