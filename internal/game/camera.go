package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"fireworks/internal/firework"
)

// Shake offsets the render camera for a short, decaying jolt.
type Shake struct {
	X, Y      float64 // current offset in world units
	Timer     float64 // remaining shake time
	Intensity float64 // max offset magnitude
}

// Add triggers screen shake with given intensity and duration.
func (c *Shake) Add(intensity, duration float64) {
	if intensity > c.Intensity {
		c.Intensity = intensity
	}
	if duration > c.Timer {
		c.Timer = duration
	}
}

// Update decays shake and computes random offsets.
func (c *Shake) Update(dt float64, r *firework.Rand) {
	if c.Timer <= 0 {
		c.X = 0
		c.Y = 0
		c.Intensity = 0
		return
	}
	c.Timer -= dt
	if c.Timer < 0 {
		c.Timer = 0
	}
	// Decaying intensity.
	t := c.Timer
	mag := c.Intensity * (t / (t + 0.08))
	c.X = r.RangeF(-mag, mag)
	c.Y = r.RangeF(-mag, mag)
}

// Apply returns cam translated by the current offset. Eye and target move
// together so the view direction is unchanged.
func (c *Shake) Apply(cam firework.Camera) firework.Camera {
	off := mgl32.Vec3{float32(c.X), float32(c.Y), 0}
	cam.Eye = cam.Eye.Add(off)
	cam.Target = cam.Target.Add(off)
	return cam
}
