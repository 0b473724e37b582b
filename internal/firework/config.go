package firework

// Population.
const DefaultMaxSystems = 120

// Trails.
const (
	TrailSegmentsPersistent = 50
	TrailSegmentsEphemeral  = 5
	PersistentTrailChance   = 0.25
	PersistentExtraLife     = 1.0 // seconds of trail-only fade after life
)

// MinLife bounds resolved lifetimes away from zero.
const MinLife = 0.01 // seconds

// Physics.
const (
	BaseDecay      = 0.985 // per-frame velocity decay applied on top of drag
	DragMin        = 0.97
	DragMax        = 0.995
	GravityY       = -4.5 // units/s²
	JitterStrength = 0.9  // per-axis velocity noise, units/s²
	SparkJitterMul = 1.5

	SparkSpeedMin = 1.35
	SparkSpeedMax = 1.9
	SpeedMin      = 0.6
	SpeedMax      = 1.2
)

// Spin.
const (
	SharedSpinChance  = 0.10
	ChaoticSpinChance = 0.10
	SpinSpeedMin      = 2.0 // rad/s
	SpinSpeedMax      = 6.0
)

// Visuals.
const (
	FlashDuration   = 0.15 // seconds
	FlashScaleMin   = 0.05 // × radius
	FlashScaleMax   = 0.12
	FlashGrowth     = 1.8 // scale multiplier reached at the end of the window
	HaloSizeScale   = 3.2
	HaloOpacity     = 0.35
	SparkBrightness = 1.35
	BaseBrightness  = 1.0
)

// Input.
const MoveSpawnInterval = 1.0 / 60.0 // seconds between drag spawns

// Range is an inclusive float interval.
type Range struct {
	Lo, Hi float32
}

func (rg Range) sample(r *Rand) float32 { return r.Between(rg.Lo, rg.Hi) }

// Contains reports whether v lies in [Lo, Hi].
func (rg Range) Contains(v float32) bool { return v >= rg.Lo && v <= rg.Hi }

// IntRange is an inclusive integer interval.
type IntRange struct {
	Lo, Hi int
}

// Default spawn ranges.
var (
	DefaultCountRange  = IntRange{Lo: 60, Hi: 300}
	DefaultRadiusRange = Range{Lo: 6, Hi: 12}
	DefaultLifeRange   = Range{Lo: 1.5, Hi: 2.8}
	DefaultSizeRange   = Range{Lo: 0.08, Hi: 0.16}
)

const (
	DefaultFizzleChance     = 0.25
	DefaultSparkProbability = 0.18
	DefaultTrailOpacity     = 0.55
	DefaultTrailSizeScale   = 0.6
)

// SpawnConfig overrides spawn parameters. Every field is optional: nil means
// "use the default", which for ranges is the Default*Range above.
type SpawnConfig struct {
	CountRange  *IntRange
	RadiusRange *Range
	LifeRange   *Range
	SizeRange   *Range

	BaseColor        *RGB
	EnableFizzle     *bool    // default true
	FizzleChance     *float64 // per system, default 0.25
	SparkProbability *float64 // per particle, default 0.18
	TrailOpacity     *float32
	TrailSizeScale   *float32

	// ApplyPopulationCap evicts the oldest system when the registry
	// exceeds the engine's cap. Default true.
	ApplyPopulationCap *bool

	TrailPersistent *bool
	Spiral          *SpiralMode
	Pattern         *Pattern
}

// Ptr returns a pointer to v, for filling SpawnConfig literals.
func Ptr[T any](v T) *T { return &v }

// resolved is a SpawnConfig with every choice made.
type resolved struct {
	count     int
	radius    float32
	life      float32
	size      float32
	baseColor RGB
	pattern   Pattern

	fizzleSeeded bool
	sparkProb    float64

	trailPersistent bool
	trailSegments   int
	trailOpacity    float32
	trailSizeScale  float32

	spiral   SpiralMode
	applyCap bool
}

func (c *SpawnConfig) resolve(r *Rand) resolved {
	if c == nil {
		c = &SpawnConfig{}
	}
	var out resolved

	cr := DefaultCountRange
	if c.CountRange != nil {
		cr = *c.CountRange
	}
	out.count = r.Range(cr.Lo, cr.Hi)
	if out.count < 0 {
		out.count = 0
	}

	out.radius = pick(c.RadiusRange, DefaultRadiusRange).sample(r)
	out.life = pick(c.LifeRange, DefaultLifeRange).sample(r)
	if !(out.life >= MinLife) {
		out.life = MinLife
	}
	out.size = pick(c.SizeRange, DefaultSizeRange).sample(r)

	if c.BaseColor != nil {
		out.baseColor = *c.BaseColor
	} else {
		out.baseColor = RandomPalette(r)
	}
	if c.Pattern != nil {
		out.pattern = *c.Pattern
	} else {
		out.pattern = ChoosePattern(r)
	}

	if c.TrailPersistent != nil {
		out.trailPersistent = *c.TrailPersistent
	} else {
		out.trailPersistent = r.Chance(PersistentTrailChance)
	}
	out.trailSegments = TrailSegmentsEphemeral
	if out.trailPersistent {
		out.trailSegments = TrailSegmentsPersistent
	}
	out.trailOpacity = orDefault(c.TrailOpacity, DefaultTrailOpacity)
	out.trailSizeScale = orDefault(c.TrailSizeScale, DefaultTrailSizeScale)

	// One roll per system decides whether its sparks fizzle.
	if orDefault(c.EnableFizzle, true) {
		out.fizzleSeeded = r.Chance(orDefault(c.FizzleChance, DefaultFizzleChance))
	}
	out.sparkProb = orDefault(c.SparkProbability, DefaultSparkProbability)

	if c.Spiral != nil {
		out.spiral = *c.Spiral
	} else {
		x := r.Float64()
		switch {
		case x < SharedSpinChance:
			out.spiral = SpiralShared
		case x < SharedSpinChance+ChaoticSpinChance:
			out.spiral = SpiralChaotic
		default:
			out.spiral = SpiralNone
		}
	}
	out.applyCap = orDefault(c.ApplyPopulationCap, true)
	return out
}

func pick(v *Range, def Range) Range {
	if v != nil {
		return *v
	}
	return def
}

func orDefault[T any](v *T, def T) T {
	if v != nil {
		return *v
	}
	return def
}

// fizzleConfig is the reduced configuration used for sub-bursts.
func fizzleConfig(color RGB) *SpawnConfig {
	return &SpawnConfig{
		CountRange:         &IntRange{Lo: 10, Hi: 22},
		RadiusRange:        &Range{Lo: 0.6, Hi: 1.4},
		LifeRange:          &Range{Lo: 0.25, Hi: 0.55},
		SizeRange:          &Range{Lo: 0.03, Hi: 0.06},
		BaseColor:          &color,
		EnableFizzle:       Ptr(false),
		SparkProbability:   Ptr(0.5),
		TrailOpacity:       Ptr[float32](0.2),
		TrailSizeScale:     Ptr[float32](0.5),
		ApplyPopulationCap: Ptr(false),
		TrailPersistent:    Ptr(false),
	}
}
