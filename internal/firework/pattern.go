package firework

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pattern selects how initial particle directions are sampled.
type Pattern uint8

const (
	PatternBurst Pattern = iota
	PatternRing
	PatternSpray
)

func (p Pattern) String() string {
	switch p {
	case PatternBurst:
		return "burst"
	case PatternRing:
		return "ring"
	case PatternSpray:
		return "spray"
	}
	return "unknown"
}

const (
	ringJitter  = 0.12 // out-of-plane wobble on rings
	spraySpread = 0.65 // disk radius before renormalizing spray directions
)

var up = mgl32.Vec3{0, 1, 0}

// ChoosePattern picks burst 40%, ring 30%, spray 30%.
func ChoosePattern(r *Rand) Pattern {
	x := r.Float64()
	switch {
	case x < 0.4:
		return PatternBurst
	case x < 0.7:
		return PatternRing
	default:
		return PatternSpray
	}
}

// SampleDirection returns a unit vector drawn from the pattern's distribution.
func SampleDirection(r *Rand, p Pattern) mgl32.Vec3 {
	var v mgl32.Vec3
	switch p {
	case PatternRing:
		ang := r.RangeF(0, 2*math.Pi)
		v = mgl32.Vec3{
			float32(math.Cos(ang)),
			float32(math.Sin(ang)),
			r.Between(-ringJitter, ringJitter),
		}
	case PatternSpray:
		// Disk-biased cone around +Y: points on a disk pushed through y=1.
		ang := r.RangeF(0, 2*math.Pi)
		rad := math.Sqrt(r.Float64()) * spraySpread
		v = mgl32.Vec3{
			float32(math.Cos(ang) * rad),
			1,
			float32(math.Sin(ang) * rad),
		}
	default:
		// Uniform on the sphere: uniform z and azimuth.
		z := r.RangeF(-1, 1)
		ang := r.RangeF(0, 2*math.Pi)
		s := math.Sqrt(1 - z*z)
		v = mgl32.Vec3{
			float32(s * math.Cos(ang)),
			float32(s * math.Sin(ang)),
			float32(z),
		}
	}
	return safeNormalize(v, up)
}
