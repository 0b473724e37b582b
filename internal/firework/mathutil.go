package firework

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: splitmix64(seed)}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

// Range returns an int in [min, max].
func (r *Rand) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}

// Between returns a float32 in [min, max).
func (r *Rand) Between(min, max float32) float32 {
	return float32(r.RangeF(float64(min), float64(max)))
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}

// Sign returns -1 or +1 with equal odds.
func (r *Rand) Sign() float32 {
	if r.NextU64()&1 == 0 {
		return -1
	}
	return 1
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp is exact at both ends: lerp(a, b, 1) == b.
func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// smootherstep is Perlin's 6t^5 - 15t^4 + 10t^3 on [0,1].
func smootherstep(t float32) float32 {
	t = clampF(t, 0, 1)
	return t * t * t * (t*(t*6-15) + 10)
}

// safeNormalize returns v scaled to unit length, or fallback if v is
// too short to normalize.
func safeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-6 || math.IsNaN(float64(l)) {
		return fallback
	}
	return v.Mul(1 / l)
}
