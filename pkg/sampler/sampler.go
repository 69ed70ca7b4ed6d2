// Package sampler generates sample positions over rectangular pixel regions.
//
// A Sampler owns a region and a row-major cursor over its pixels. Each call to
// GetSamples returns the batch for the pixel under the cursor. Regions can be
// split into tiles with Subsamplers, and each tile is an independent sampler
// that can be handed to a different worker.
package sampler

import (
	"fmt"
	"math/rand"

	"github.com/golang/glog"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// Sample is a single film sample
type Sample struct {
	Pos  core.Vec2 // Film position in pixel space
	Lens core.Vec2 // Lens position in [0,1)²
	X, Y int       // Pixel the sample belongs to
}

// Sampler produces batches of samples for the pixels of its region. It also
// serves uniform random numbers for auxiliary dimensions. A Sampler is not
// safe for concurrent use.
type Sampler interface {
	core.Sampler

	// Bounds returns the region the sampler covers
	Bounds() Region

	// HasSamples reports whether any pixel is left
	HasSamples() bool

	// GetSamples appends the batch for the current pixel to dst[:0]. The
	// result is empty once the sampler is exhausted.
	GetSamples(dst []Sample) []Sample

	// ReportResults hands back the colors computed for the last batch. It
	// returns false when the batch must be discarded.
	ReportResults(samples []Sample, colors []core.Vec3) bool

	// Subsamplers partitions the region into tiles of about w×h pixels
	Subsamplers(w, h int) []Sampler

	// SamplesPerPixel returns the largest batch GetSamples can produce
	SamplesPerPixel() int
}

// Region is a half-open rectangle of pixels [XStart,XEnd)×[YStart,YEnd)
type Region struct {
	XStart, XEnd int
	YStart, YEnd int
}

// NewRegion creates the region covering a width×height image
func NewRegion(width, height int) Region {
	return Region{XStart: 0, XEnd: width, YStart: 0, YEnd: height}
}

// Width returns the number of pixel columns
func (r Region) Width() int { return r.XEnd - r.XStart }

// Height returns the number of pixel rows
func (r Region) Height() int { return r.YEnd - r.YStart }

// Pixels returns the number of pixels in the region
func (r Region) Pixels() int { return max(0, r.Width()) * max(0, r.Height()) }

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.XStart, r.XEnd, r.YStart, r.YEnd)
}

// Partition splits r into tiles of about w×h pixels. The tile counts are
// rounded down and the last column and row absorb any remainder, so every
// pixel belongs to exactly one tile. A warning is logged when the tiles
// cannot all have the same size. Tiles larger than r yield r itself.
func (r Region) Partition(w, h int) []Region {
	if w <= 0 || h <= 0 || w > r.Width() || h > r.Height() {
		glog.Warningf("sampler: region %v cannot be partitioned into %dx%d blocks", r, w, h)
		return []Region{r}
	}

	nCols := r.Width() / w
	nRows := r.Height() / h
	tileW := r.Width() / nCols
	tileH := r.Height() / nRows
	if tileW*nCols != r.Width() || tileH*nRows != r.Height() {
		glog.Warningf("sampler: region %v could not be partitioned equally into %dx%d blocks", r, w, h)
	}

	tiles := make([]Region, 0, nCols*nRows)
	for j := 0; j < nRows; j++ {
		for i := 0; i < nCols; i++ {
			tile := Region{
				XStart: r.XStart + i*tileW,
				XEnd:   r.XStart + (i+1)*tileW,
				YStart: r.YStart + j*tileH,
				YEnd:   r.YStart + (j+1)*tileH,
			}
			if i == nCols-1 {
				tile.XEnd = r.XEnd
			}
			if j == nRows-1 {
				tile.YEnd = r.YEnd
			}
			tiles = append(tiles, tile)
		}
	}
	return tiles
}

// cursor walks the pixels of a region in row-major order
type cursor struct {
	region Region
	x, y   int
}

func newCursor(r Region) cursor {
	return cursor{region: r, x: r.XStart, y: r.YStart}
}

func (c *cursor) done() bool {
	return c.region.Pixels() == 0 || c.y >= c.region.YEnd
}

func (c *cursor) advance() {
	c.x++
	if c.x == c.region.XEnd {
		c.x = c.region.XStart
		c.y++
	}
}

// random is the uniform stream every sampler carries for auxiliary dimensions
type random struct {
	rng *rand.Rand
}

func newRandom(seed int64) random {
	return random{rng: rand.New(rand.NewSource(seed))}
}

// Get1D implements core.Sampler
func (r random) Get1D() float64 {
	return r.rng.Float64()
}

// Get2D implements core.Sampler
func (r random) Get2D() core.Vec2 {
	return core.NewVec2(r.rng.Float64(), r.rng.Float64())
}

// Get3D implements core.Sampler
func (r random) Get3D() core.Vec3 {
	return core.NewVec3(r.rng.Float64(), r.rng.Float64(), r.rng.Float64())
}

// subSeeds derives n distinct, reproducible seeds from a parent seed
func subSeeds(seed int64, n int) []int64 {
	rng := rand.New(rand.NewSource(seed))
	seen := make(map[int64]bool, n)
	seeds := make([]int64, 0, n)
	for len(seeds) < n {
		s := rng.Int63()
		if seen[s] {
			continue
		}
		seen[s] = true
		seeds = append(seeds, s)
	}
	return seeds
}

// roundSPP rounds spp up to a power of two, warning when it had to
func roundSPP(name string, spp int) int {
	if spp < 1 {
		glog.Warningf("sampler: %s must be at least 1, got %d", name, spp)
		return 1
	}
	if core.IsPow2(uint32(spp)) {
		return spp
	}
	rounded := int(core.RoundUpPow2(uint32(spp)))
	glog.Warningf("sampler: %s must be a power of two, rounded %d up to %d", name, spp, rounded)
	return rounded
}

// NeedsSupersampling reports whether any color's luminance deviates from the
// batch mean by more than half the mean. Batches with a non-positive mean
// never need supersampling.
func NeedsSupersampling(colors []core.Vec3) bool {
	if len(colors) == 0 {
		return false
	}
	const maxContrast = 0.5
	mean := 0.0
	for _, c := range colors {
		mean += c.Luminance()
	}
	mean /= float64(len(colors))
	if mean <= 0 {
		return false
	}
	for _, c := range colors {
		if abs(c.Luminance()-mean)/mean > maxContrast {
			return true
		}
	}
	return false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

var (
	_ Sampler = (*StratifiedSampler)(nil)
	_ Sampler = (*LDSampler)(nil)
	_ Sampler = (*AdaptiveSampler)(nil)
)
