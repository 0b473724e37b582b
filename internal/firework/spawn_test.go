package firework

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var origin = mgl32.Vec3{1, 2, 0}

func TestSpawnRanges(t *testing.T) {
	cases := []struct {
		name string
		cfg  *SpawnConfig
		cr   IntRange
		lr   Range
	}{
		{"defaults", nil, DefaultCountRange, DefaultLifeRange},
		{"override", &SpawnConfig{
			CountRange: &IntRange{Lo: 5, Hi: 9},
			LifeRange:  &Range{Lo: 0.5, Hi: 0.6},
		}, IntRange{Lo: 5, Hi: 9}, Range{Lo: 0.5, Hi: 0.6}},
		{"fizzle child", fizzleConfig(RGB{R: 1}), IntRange{Lo: 10, Hi: 22}, Range{Lo: 0.25, Hi: 0.55}},
	}
	for _, c := range cases {
		e := New(newFakeScene(t), Options{Seed: 42})
		for range 50 {
			s := e.Spawn(origin, c.cfg)
			if n := s.Count(); n < c.cr.Lo || n > c.cr.Hi {
				t.Fatalf("%s: Count\nhave %d\nwant [%d, %d]", c.name, n, c.cr.Lo, c.cr.Hi)
			}
			if !c.lr.Contains(s.Life) {
				t.Fatalf("%s: Life\nhave %v\nwant %v", c.name, s.Life, c.lr)
			}
			for i := range s.Count() {
				if d := s.Drag[i]; d < DragMin || d > DragMax {
					t.Fatalf("%s: Drag\nhave %v\nwant [%v, %v]", c.name, d, DragMin, DragMax)
				}
			}
		}
	}
}

func TestSpawnSpeedMultiplier(t *testing.T) {
	e := New(newFakeScene(t), Options{Seed: 8})
	const radius = 10
	s := e.Spawn(origin, &SpawnConfig{
		CountRange:  &IntRange{Lo: 400, Hi: 400},
		RadiusRange: &Range{Lo: radius, Hi: radius},
	})
	sparks := 0
	for i := range s.Count() {
		mul := s.Velocity(i).Len() / radius
		lo, hi := float32(SpeedMin), float32(SpeedMax)
		if s.Spark[i] {
			lo, hi = SparkSpeedMin, SparkSpeedMax
			sparks++
		}
		if mul < lo-1e-4 || mul > hi+1e-4 {
			t.Fatalf("speed multiplier (spark=%v)\nhave %v\nwant [%v, %v]", s.Spark[i], mul, lo, hi)
		}
	}
	if sparks == 0 || sparks > s.Count()/3 {
		t.Fatalf("spark share looks wrong: %d of %d", sparks, s.Count())
	}
}

func TestSpawnTrailSeed(t *testing.T) {
	e := New(newFakeScene(t), Options{Seed: 2})
	for _, persistent := range []bool{false, true} {
		s := e.Spawn(origin, &SpawnConfig{TrailPersistent: Ptr(persistent)})
		want := TrailSegmentsEphemeral
		if persistent {
			want = TrailSegmentsPersistent
		}
		if s.TrailSegments() != want {
			t.Fatalf("TrailSegments\nhave %d\nwant %d", s.TrailSegments(), want)
		}
		if len(s.Trail) != s.Count()*want*3 {
			t.Fatalf("len(Trail)\nhave %d\nwant %d", len(s.Trail), s.Count()*want*3)
		}
		for i := range s.Count() {
			for k := range want {
				if p := s.TrailSlot(i, k); p != origin {
					t.Fatalf("trail slot %d/%d\nhave %v\nwant %v", i, k, p, origin)
				}
			}
		}
	}
}

func TestSpawnFizzleSeeding(t *testing.T) {
	e := New(newFakeScene(t), Options{Seed: 4})

	s := e.Spawn(origin, &SpawnConfig{FizzleChance: Ptr(1.0)})
	for i := range s.Count() {
		if s.Fizzle[i] != s.Spark[i] {
			t.Fatalf("particle %d: Fizzle=%v Spark=%v", i, s.Fizzle[i], s.Spark[i])
		}
	}

	for _, cfg := range []*SpawnConfig{
		{FizzleChance: Ptr(0.0)},
		{EnableFizzle: Ptr(false), FizzleChance: Ptr(1.0)},
	} {
		s := e.Spawn(origin, cfg)
		for i := range s.Count() {
			if s.Fizzle[i] {
				t.Fatalf("particle %d fizzles with %+v", i, cfg)
			}
		}
	}
}

func TestSpawnSpiral(t *testing.T) {
	e := New(newFakeScene(t), Options{Seed: 6})
	for _, m := range []SpiralMode{SpiralNone, SpiralShared, SpiralChaotic} {
		s := e.Spawn(origin, &SpawnConfig{Spiral: Ptr(m)})
		if s.SpiralMode() != m {
			t.Fatalf("SpiralMode\nhave %v\nwant %v", s.SpiralMode(), m)
		}
		switch sp := s.spin.(type) {
		case sharedSpin:
			if sp.speed < SpinSpeedMin || sp.speed > SpinSpeedMax {
				t.Fatalf("shared speed %v", sp.speed)
			}
		case chaoticSpin:
			if len(sp.axes) != s.Count() || len(sp.speeds) != s.Count() {
				t.Fatalf("chaotic arrays sized %d/%d for %d particles", len(sp.axes), len(sp.speeds), s.Count())
			}
			for _, v := range sp.speeds {
				if a := v * float32(sign(v)); a < SpinSpeedMin || a > SpinSpeedMax {
					t.Fatalf("chaotic speed %v", v)
				}
			}
		}
	}

	// Roughly 10% shared, 10% chaotic when left to chance.
	var hist [3]int
	for range 2000 {
		hist[(&SpawnConfig{}).resolve(e.rnd).spiral]++
	}
	for m, c := range hist[1:] {
		if c < 120 || c > 280 {
			t.Fatalf("%v chosen %d/2000 times", SpiralMode(m+1), c)
		}
	}
}

func sign(v float32) int {
	if v < 0 {
		return -1
	}
	return 1
}

func TestSpawnPersistentChance(t *testing.T) {
	r := NewRand(12)
	n := 0
	for range 4000 {
		if (*SpawnConfig)(nil).resolve(r).trailPersistent {
			n++
		}
	}
	if n < 850 || n > 1150 {
		t.Fatalf("persistent trails %d/4000, want about 1000", n)
	}
}

func TestSpawnFlashScale(t *testing.T) {
	e := New(newFakeScene(t), Options{Seed: 1})
	s := e.Spawn(origin, &SpawnConfig{RadiusRange: &Range{Lo: 10, Hi: 10}})
	if s.flashBaseScale < 10*FlashScaleMin || s.flashBaseScale > 10*FlashScaleMax {
		t.Fatalf("flashBaseScale\nhave %v\nwant [%v, %v]", s.flashBaseScale, 10*FlashScaleMin, 10*FlashScaleMax)
	}
}
