package firework

import "github.com/go-gl/mathgl/mgl32"

// integrate advances one system by dt. Per particle, in order: trail
// shift, drag and jitter, spin, gravity, position, fizzle check, then the
// colour blend. Buffers are pushed to the scene and age advances last.
func (e *Engine) integrate(s *System, dt float32) {
	r := e.rnd
	seg := s.trailSegments
	gdt := e.gravity.Mul(dt)
	jit := JitterStrength * dt

	progress := clampF(s.Age/s.Life, 0, 1)

	for i := range s.count {
		pos := s.Position(i)
		vel := s.Velocity(i)
		prevVY := vel[1]

		// Slot 0 receives the pre-update position; older slots move down.
		base := i * seg * 3
		copy(s.Trail[base+3:base+seg*3], s.Trail[base:base+(seg-1)*3])
		putVec3(s.Trail, i*seg, pos)

		vel = vel.Mul(s.Drag[i] * BaseDecay)
		j := jit
		if s.Spark[i] {
			j *= SparkJitterMul
		}
		vel = vel.Add(mgl32.Vec3{r.Between(-j, j), r.Between(-j, j), r.Between(-j, j)})

		vel = s.spin.rotate(i, vel, dt)
		vel = vel.Add(gdt)
		pos = pos.Add(vel.Mul(dt))

		putVec3(s.Velocities, i, vel)
		putVec3(s.Positions, i, pos)

		if s.Fizzle[i] && !s.Fizzled[i] && prevVY > 0 && vel[1] <= 0 {
			s.Fizzled[i] = true
			e.spawnChild(pos, s.Color(i))
			// A spawn hook may have evicted s.
			if s.disposed() {
				return
			}
		}

		putRGB(s.Colors, i, lerpRGB(rgbAt(s.BaseColors, i), Palette.Ember, progress))
	}

	e.writeBack(s, progress, dt)
	s.Age += dt
}

// headFade is the point/halo opacity: linear in progress.
func headFade(progress float32) float32 { return 1 - progress }

// trailFade outlives the head for persistent trails.
func (s *System) trailFade(progress float32) float32 {
	if !s.TrailPersistent {
		return headFade(progress)
	}
	return smootherstep(1 - s.Age/(s.Life+PersistentExtraLife))
}

// writeBack pushes the system's arrays and material state to its draw
// objects. The flash runs on its own clock.
func (e *Engine) writeBack(s *System, progress, dt float32) {
	fade := headFade(progress)

	s.points.Update(CloudState{
		Size:      s.baseSize,
		Opacity:   fade,
		Intensity: s.brightnessScale,
	})
	s.halo.Update(CloudState{
		Size:      s.baseSize * HaloSizeScale,
		Opacity:   fade * HaloOpacity,
		Intensity: s.brightnessScale,
	})

	// Ephemeral trails follow the head colour each frame. Persistent
	// trails keep the falloff baked in at spawn.
	if !s.TrailPersistent {
		seg := s.trailSegments
		for i := range s.count {
			c := s.Color(i)
			for k := range seg {
				putRGB(s.TrailColors, i*seg+k, c.Scale(trailWeight(k, seg)))
			}
		}
	}
	s.trail.Update(CloudState{
		Size:      s.baseSize * s.trailSizeScale,
		Opacity:   s.trailOpacity * s.trailFade(progress),
		Intensity: s.brightnessScale,
	})

	s.flashAge += dt
	ft := clampF(s.flashAge/FlashDuration, 0, 1)
	s.flash.Update(SpriteState{
		Scale:   s.flashBaseScale * lerp(1, FlashGrowth, ft),
		Opacity: 1 - ft,
	})
}
