package firework

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoIntersection is returned when a ray misses a plane.
var ErrNoIntersection = errors.New("firework: ray does not intersect plane")

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin, Dir mgl32.Vec3
}

// Plane is the set of points p with Normal·p + Constant = 0.
type Plane struct {
	Normal   mgl32.Vec3
	Constant float32
}

// SpawnPlane is z = 0 through the scene origin.
var SpawnPlane = Plane{Normal: mgl32.Vec3{0, 0, 1}}

// IntersectPlane returns where r meets p. Parallel rays and planes behind
// the origin yield ErrNoIntersection.
func (r Ray) IntersectPlane(p Plane) (mgl32.Vec3, error) {
	denom := p.Normal.Dot(r.Dir)
	if denom > -1e-6 && denom < 1e-6 {
		if p.Normal.Dot(r.Origin)+p.Constant == 0 {
			return r.Origin, nil
		}
		return mgl32.Vec3{}, ErrNoIntersection
	}
	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denom
	if t < 0 {
		return mgl32.Vec3{}, ErrNoIntersection
	}
	return r.Origin.Add(r.Dir.Mul(t)), nil
}

// Camera is a perspective camera looking at Target.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // degrees
	Aspect float32
	Near   float32
	Far    float32
}

// Camera defaults.
const (
	CameraDistance = 32.0
	CameraFovY     = 55.0
	CameraNear     = 0.1
	CameraFar      = 500.0
)

func NewCamera(aspect float32) *Camera {
	return &Camera{
		Eye:    mgl32.Vec3{0, 0, CameraDistance},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   CameraFovY,
		Aspect: aspect,
		Near:   CameraNear,
		Far:    CameraFar,
	}
}

// Resize updates the aspect ratio for a new viewport.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// ScreenRay builds a world-space ray through normalized device
// coordinates (x right, y up, both in [-1, 1]).
func (c *Camera) ScreenRay(ndc mgl32.Vec2) Ray {
	inv := c.ViewProjection().Inv()
	far := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], 1, 1})
	if far[3] != 0 {
		far = far.Mul(1 / far[3])
	}
	dir := safeNormalize(far.Vec3().Sub(c.Eye), c.Target.Sub(c.Eye).Normalize())
	return Ray{Origin: c.Eye, Dir: dir}
}

// ClientToNDC converts window coordinates (origin top-left) to NDC.
func ClientToNDC(x, y float64, width, height int) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		float32(x/float64(width))*2 - 1,
		1 - float32(y/float64(height))*2,
	}
}
