package firework

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// SpiralMode says whether velocities rotate while in flight.
type SpiralMode uint8

const (
	SpiralNone SpiralMode = iota
	SpiralShared
	SpiralChaotic
)

func (m SpiralMode) String() string {
	switch m {
	case SpiralNone:
		return "none"
	case SpiralShared:
		return "shared"
	case SpiralChaotic:
		return "chaotic"
	}
	return "unknown"
}

// spin rotates particle i's velocity by its angular speed over dt.
// The variant types carry only the data their mode needs.
type spin interface {
	mode() SpiralMode
	rotate(i int, v mgl32.Vec3, dt float32) mgl32.Vec3
}

type noSpin struct{}

func (noSpin) mode() SpiralMode                                  { return SpiralNone }
func (noSpin) rotate(_ int, v mgl32.Vec3, _ float32) mgl32.Vec3 { return v }

type sharedSpin struct {
	axis  mgl32.Vec3
	speed float32
}

func (sharedSpin) mode() SpiralMode { return SpiralShared }

func (s sharedSpin) rotate(_ int, v mgl32.Vec3, dt float32) mgl32.Vec3 {
	return rotateAbout(v, s.axis, s.speed*dt)
}

type chaoticSpin struct {
	axes   []mgl32.Vec3
	speeds []float32 // signed rad/s
}

func (chaoticSpin) mode() SpiralMode { return SpiralChaotic }

func (s chaoticSpin) rotate(i int, v mgl32.Vec3, dt float32) mgl32.Vec3 {
	if s.speeds[i] == 0 {
		return v
	}
	return rotateAbout(v, s.axes[i], s.speeds[i]*dt)
}

// rotateAbout applies an axis-angle rotation. A zero axis or zero angle
// leaves v untouched.
func rotateAbout(v, axis mgl32.Vec3, angle float32) mgl32.Vec3 {
	l := axis.Len()
	if l == 0 || angle == 0 {
		return v
	}
	return mgl32.QuatRotate(angle, axis.Mul(1/l)).Rotate(v)
}

// System is a fixed population of particles spawned at one instant.
// Per-particle state is stored as parallel arrays.
type System struct {
	ID      uuid.UUID
	Origin  mgl32.Vec3
	Pattern Pattern
	Child   bool // spawned by a fizzle

	count int

	Positions  []float32 // xyz * count, shared by the point and halo clouds
	Velocities []float32 // xyz * count
	Drag       []float32
	BaseColors []float32 // rgb * count
	Colors     []float32 // rgb * count, blended each frame
	Spark      []bool
	Fizzle     []bool // eligible to fizzle
	Fizzled    []bool // one-shot latch

	// Trail is a per-particle history of past positions, most recent
	// first: particle i's slot k lives at (i*segments+k)*3.
	Trail         []float32
	TrailColors   []float32
	trailSegments int

	spin spin

	Age             float32
	Life            float32
	TrailPersistent bool

	baseSize        float32
	flashBaseScale  float32
	brightnessScale float32
	trailOpacity    float32
	trailSizeScale  float32

	flashAge float32

	points Cloud
	halo   Cloud
	trail  Cloud
	flash  Sprite
}

// Count returns the fixed number of particles.
func (s *System) Count() int { return s.count }

// TrailSegments returns the fixed trail length per particle.
func (s *System) TrailSegments() int { return s.trailSegments }

// SpiralMode reports the system's spin variant.
func (s *System) SpiralMode() SpiralMode { return s.spin.mode() }

// Deadline is the age at which the system is removed.
func (s *System) Deadline() float32 {
	if s.TrailPersistent {
		return s.Life + PersistentExtraLife
	}
	return s.Life
}

// Expired reports whether the system has outlived its deadline.
func (s *System) Expired() bool { return s.Age >= s.Deadline() }

// Position returns particle i's position.
func (s *System) Position(i int) mgl32.Vec3 { return vec3At(s.Positions, i) }

// Velocity returns particle i's velocity.
func (s *System) Velocity(i int) mgl32.Vec3 { return vec3At(s.Velocities, i) }

// Color returns particle i's current blended colour.
func (s *System) Color(i int) RGB {
	return RGB{R: s.Colors[i*3], G: s.Colors[i*3+1], B: s.Colors[i*3+2]}
}

// TrailSlot returns slot k of particle i's trail.
func (s *System) TrailSlot(i, k int) mgl32.Vec3 {
	return vec3At(s.Trail, i*s.trailSegments+k)
}

// disposed reports whether the system's draw objects have been released.
func (s *System) disposed() bool { return s.points == nil }

// Objects returns the draw objects owned by the system.
func (s *System) Objects() []Object {
	return []Object{s.points, s.halo, s.trail, s.flash}
}

func vec3At(buf []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{buf[i*3], buf[i*3+1], buf[i*3+2]}
}

func putVec3(buf []float32, i int, v mgl32.Vec3) {
	buf[i*3] = v[0]
	buf[i*3+1] = v[1]
	buf[i*3+2] = v[2]
}

func putRGB(buf []float32, i int, c RGB) {
	buf[i*3] = c.R
	buf[i*3+1] = c.G
	buf[i*3+2] = c.B
}

func rgbAt(buf []float32, i int) RGB {
	return RGB{R: buf[i*3], G: buf[i*3+1], B: buf[i*3+2]}
}
