package firework

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Spawn creates a particle system at origin, attaches its draw objects to
// the scene and registers it. cfg may be nil.
func (e *Engine) Spawn(origin mgl32.Vec3, cfg *SpawnConfig) *System {
	rc := cfg.resolve(e.rnd)
	s := e.build(origin, rc)
	e.register(s, rc.applyCap)
	return s
}

func (e *Engine) register(s *System, applyCap bool) {
	e.attach(s)
	e.systems = append(e.systems, s)
	e.stats.Spawned++
	if s.Child {
		e.stats.Children++
	}
	if e.opts.OnSpawn != nil {
		e.opts.OnSpawn(s)
	}
	if applyCap && e.opts.MaxSystems > 0 {
		e.enforceCap(e.opts.MaxSystems)
	}
}

// spawnChild launches a fizzle sub-burst from a spark.
func (e *Engine) spawnChild(at mgl32.Vec3, color RGB) {
	rc := fizzleConfig(color).resolve(e.rnd)
	s := e.build(at, rc)
	s.Child = true
	e.register(s, rc.applyCap)
}

func (e *Engine) build(origin mgl32.Vec3, rc resolved) *System {
	r := e.rnd
	n := rc.count
	s := &System{
		ID:              uuid.New(),
		Origin:          origin,
		Pattern:         rc.pattern,
		count:           n,
		Positions:       make([]float32, n*3),
		Velocities:      make([]float32, n*3),
		Drag:            make([]float32, n),
		BaseColors:      make([]float32, n*3),
		Colors:          make([]float32, n*3),
		Spark:           make([]bool, n),
		Fizzle:          make([]bool, n),
		Fizzled:         make([]bool, n),
		Trail:           make([]float32, n*rc.trailSegments*3),
		TrailColors:     make([]float32, n*rc.trailSegments*3),
		trailSegments:   rc.trailSegments,
		Life:            rc.life,
		TrailPersistent: rc.trailPersistent,
		baseSize:        rc.size,
		flashBaseScale:  rc.radius * r.Between(FlashScaleMin, FlashScaleMax),
		brightnessScale: BaseBrightness,
		trailOpacity:    rc.trailOpacity,
		trailSizeScale:  rc.trailSizeScale,
	}

	switch rc.spiral {
	case SpiralShared:
		s.spin = sharedSpin{
			axis:  SampleDirection(r, PatternBurst),
			speed: r.Between(SpinSpeedMin, SpinSpeedMax),
		}
	case SpiralChaotic:
		cs := chaoticSpin{axes: make([]mgl32.Vec3, n), speeds: make([]float32, n)}
		for i := range n {
			cs.axes[i] = SampleDirection(r, PatternBurst)
			cs.speeds[i] = r.Between(SpinSpeedMin, SpinSpeedMax) * r.Sign()
		}
		s.spin = cs
	default:
		s.spin = noSpin{}
	}

	sparks := 0
	for i := range n {
		dir := SampleDirection(r, rc.pattern)
		spark := r.Chance(rc.sparkProb)
		var mul float32
		if spark {
			mul = r.Between(SparkSpeedMin, SparkSpeedMax)
			sparks++
		} else {
			mul = r.Between(SpeedMin, SpeedMax)
		}
		putVec3(s.Positions, i, origin)
		putVec3(s.Velocities, i, dir.Mul(rc.radius*mul))
		s.Drag[i] = r.Between(DragMin, DragMax)
		s.Spark[i] = spark
		s.Fizzle[i] = spark && rc.fizzleSeeded

		c := jitterColor(r, rc.baseColor, spark)
		putRGB(s.BaseColors, i, c)
		putRGB(s.Colors, i, c)

		// No initial streak: every slot starts at the spawn point.
		for k := range rc.trailSegments {
			j := i*rc.trailSegments + k
			putVec3(s.Trail, j, origin)
			putRGB(s.TrailColors, j, c.Scale(trailWeight(k, rc.trailSegments)))
		}
	}
	if n > 0 && sparks*2 > n {
		s.brightnessScale = SparkBrightness
	}
	return s
}

// trailWeight is the linear falloff from the newest slot to the oldest.
func trailWeight(k, segments int) float32 {
	return 1 - float32(k)/float32(segments)
}

func (e *Engine) attach(s *System) {
	s.points = e.scene.NewPointCloud(CloudSpec{
		Positions: s.Positions,
		Colors:    s.Colors,
		Blend:     BlendAdditive,
	})
	s.halo = e.scene.NewPointCloud(CloudSpec{
		Positions:      s.Positions,
		Colors:         s.Colors,
		Soft:           true,
		Blend:          BlendAdditive,
		SharePositions: s.points,
	})
	s.trail = e.scene.NewPointCloud(CloudSpec{
		Positions: s.Trail,
		Colors:    s.TrailColors,
		Soft:      true,
		Blend:     BlendAdditive,
	})
	s.flash = e.scene.NewSprite(SpriteSpec{
		Position: s.Origin,
		Color:    Palette.Flash,
	})
	for _, o := range s.Objects() {
		e.scene.Add(o)
	}
	e.writeBack(s, 0, 0)
}
