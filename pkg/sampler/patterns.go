package sampler

import (
	"math/bits"
	"math/rand"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// 24 bits of mantissa survive the conversion, the low byte of the scrambled
// integer is dropped
const fixedPointScale = 1.0 / float64(1<<24)

func toUnit(n uint32) float64 {
	return float64((n>>8)&0xffffff) * fixedPointScale
}

// VanDerCorput returns the n-th point of the base-2 radical inverse sequence
// XOR-scrambled by scramble, in [0,1).
func VanDerCorput(n, scramble uint32) float64 {
	return toUnit(bits.Reverse32(n) ^ scramble)
}

// Sobol2 returns the n-th point of the second dimension of the Sobol sequence
// XOR-scrambled by scramble, in [0,1).
func Sobol2(n, scramble uint32) float64 {
	for v := uint32(1) << 31; n != 0; n, v = n>>1, v^(v>>1) {
		if n&1 != 0 {
			scramble ^= v
		}
	}
	return toUnit(scramble)
}

// Sample02 returns the n-th point of the scrambled (0,2)-sequence
func Sample02(n uint32, scramble [2]uint32) core.Vec2 {
	return core.NewVec2(VanDerCorput(n, scramble[0]), Sobol2(n, scramble[1]))
}

// LDPattern fills dst with the first len(dst) points of the (0,2)-sequence
// under a fresh random scramble, then shuffles them.
func LDPattern(dst []core.Vec2, rng *rand.Rand) {
	scramble := [2]uint32{rng.Uint32(), rng.Uint32()}
	for i := range dst {
		dst[i] = Sample02(uint32(i), scramble)
	}
	rng.Shuffle(len(dst), func(i, j int) { dst[i], dst[j] = dst[j], dst[i] })
}

// StratifiedPattern fills dst with n×n jittered points. Point i lies in the
// grid cell (i%n, i/n). dst must hold at least n*n points.
func StratifiedPattern(n int, rng *rand.Rand, dst []core.Vec2) {
	inv := 1 / float64(n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x := (float64(i) + rng.Float64()) * inv
			y := (float64(j) + rng.Float64()) * inv
			dst[j*n+i] = core.NewVec2(min(x, core.OneMinusEpsilon), min(y, core.OneMinusEpsilon))
		}
	}
}

// primes used as radical inverse bases past the first two dimensions
var primes = [...]uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73}

// RadicalInverse mirrors the base-b digits of n around the radix point
func RadicalInverse(base, n uint64) float64 {
	invBase := 1 / float64(base)
	invBaseN := 1.0
	reversed := uint64(0)
	for n > 0 {
		next := n / base
		digit := n - next*base
		reversed = reversed*base + digit
		invBaseN *= invBase
		n = next
	}
	return min(float64(reversed)*invBaseN, core.OneMinusEpsilon)
}
