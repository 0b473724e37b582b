package firework

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type spawnRecorder struct {
	at []mgl32.Vec3
}

func (r *spawnRecorder) Spawn(origin mgl32.Vec3, _ *SpawnConfig) *System {
	r.at = append(r.at, origin)
	return &System{Origin: origin}
}

func TestIntersectPlane(t *testing.T) {
	cases := []struct {
		name string
		ray  Ray
		want mgl32.Vec3
		err  error
	}{
		{"straight down -z", Ray{mgl32.Vec3{1, 2, 10}, mgl32.Vec3{0, 0, -1}}, mgl32.Vec3{1, 2, 0}, nil},
		{"oblique", Ray{mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 1, -1}.Normalize()}, mgl32.Vec3{0, 4, 0}, nil},
		{"parallel", Ray{mgl32.Vec3{0, 0, 4}, mgl32.Vec3{1, 0, 0}}, mgl32.Vec3{}, ErrNoIntersection},
		{"behind", Ray{mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 0, 1}}, mgl32.Vec3{}, ErrNoIntersection},
	}
	for _, c := range cases {
		have, err := c.ray.IntersectPlane(SpawnPlane)
		if !errors.Is(err, c.err) {
			t.Fatalf("%s: err\nhave %v\nwant %v", c.name, err, c.err)
		}
		if have.Sub(c.want).Len() > 1e-4 {
			t.Fatalf("%s\nhave %v\nwant %v", c.name, have, c.want)
		}
	}
}

func TestScreenRayCenter(t *testing.T) {
	cam := NewCamera(16.0 / 9)
	m := NewInputMapper(&spawnRecorder{}, cam)
	p, err := m.WorldPoint(640, 360, 1280, 720)
	if err != nil {
		t.Fatalf("WorldPoint: %v", err)
	}
	if math.Abs(float64(p[2])) > 1e-4 {
		t.Fatalf("z\nhave %v\nwant 0", p[2])
	}
	if math.Abs(float64(p[0])) > 1e-3 || math.Abs(float64(p[1])) > 1e-3 {
		t.Fatalf("centre maps off-axis: %v", p)
	}
}

func TestScreenRayCorners(t *testing.T) {
	cam := NewCamera(1)
	m := NewInputMapper(&spawnRecorder{}, cam)
	tl, err := m.WorldPoint(0, 0, 600, 600)
	if err != nil {
		t.Fatal(err)
	}
	br, err := m.WorldPoint(600, 600, 600, 600)
	if err != nil {
		t.Fatal(err)
	}
	if tl[0] >= 0 || tl[1] <= 0 || br[0] <= 0 || br[1] >= 0 {
		t.Fatalf("corner orientation: top-left %v, bottom-right %v", tl, br)
	}
	// Half-height of the view at the plane is d·tan(fov/2).
	want := CameraDistance * math.Tan(float64(mgl32.DegToRad(CameraFovY))/2)
	if math.Abs(float64(tl[1])-want) > 5e-2 {
		t.Fatalf("top edge\nhave %v\nwant %v", tl[1], want)
	}
}

func TestPointerDownSpawns(t *testing.T) {
	rec := &spawnRecorder{}
	m := NewInputMapper(rec, NewCamera(1))
	first := 0
	m.OnFirstInteraction = func() { first++ }

	if s := m.PointerDown(50, 50, 100, 100, 0); s == nil {
		t.Fatalf("PointerDown did not spawn")
	}
	m.PointerUp()
	m.PointerDown(10, 10, 100, 100, 0.001)
	if len(rec.at) != 2 {
		t.Fatalf("spawns\nhave %d\nwant 2", len(rec.at))
	}
	if first != 1 {
		t.Fatalf("OnFirstInteraction ran %d times, want 1", first)
	}
	for _, p := range rec.at {
		if math.Abs(float64(p[2])) > 1e-4 {
			t.Fatalf("spawn off plane: %v", p)
		}
	}
}

func TestPointerMoveThrottle(t *testing.T) {
	rec := &spawnRecorder{}
	m := NewInputMapper(rec, NewCamera(1))

	if m.PointerMove(50, 50, 100, 100, 0) != nil {
		t.Fatalf("move without a held button spawned")
	}
	m.PointerDown(50, 50, 100, 100, 0)
	if m.PointerMove(50, 50, 100, 100, 0.005) != nil {
		t.Fatalf("move right after the press spawned")
	}
	// 1 kHz of move events over 100 ms.
	for i := range 100 {
		m.PointerMove(50, 50, 100, 100, float64(i)/1000)
	}
	moves := len(rec.at) - 1
	if moves < 4 || moves > 6 {
		t.Fatalf("drag spawns over 100ms\nhave %d\nwant about 5", moves)
	}
	m.PointerUp()
	if m.Held() {
		t.Fatalf("still held after PointerUp")
	}
	n := len(rec.at)
	m.PointerMove(50, 50, 100, 100, 10)
	if len(rec.at) != n {
		t.Fatalf("move after release spawned")
	}
}

type fixedProjector Ray

func (p fixedProjector) ScreenRay(mgl32.Vec2) Ray { return Ray(p) }

func TestPointerMiss(t *testing.T) {
	rec := &spawnRecorder{}
	m := NewInputMapper(rec, fixedProjector{Origin: mgl32.Vec3{0, 0, 5}, Dir: mgl32.Vec3{1, 0, 0}})
	if s := m.PointerDown(1, 1, 10, 10, 0); s != nil {
		t.Fatalf("parallel ray spawned at %v", s.Origin)
	}
	if len(rec.at) != 0 {
		t.Fatalf("spawner called on a miss")
	}
}

func TestClientToNDC(t *testing.T) {
	for _, c := range []struct {
		x, y float64
		want mgl32.Vec2
	}{
		{0, 0, mgl32.Vec2{-1, 1}},
		{200, 100, mgl32.Vec2{1, -1}},
		{100, 50, mgl32.Vec2{0, 0}},
	} {
		if have := ClientToNDC(c.x, c.y, 200, 100); have != c.want {
			t.Fatalf("ClientToNDC(%v, %v)\nhave %v\nwant %v", c.x, c.y, have, c.want)
		}
	}
	if have := ClientToNDC(1, 1, 0, 0); have != (mgl32.Vec2{}) {
		t.Fatalf("zero viewport\nhave %v", have)
	}
}

func TestCameraResize(t *testing.T) {
	c := NewCamera(1)
	c.Resize(1920, 1080)
	if c.Aspect != float32(1920)/1080 {
		t.Fatalf("Aspect\nhave %v", c.Aspect)
	}
	c.Resize(0, 10)
	if c.Aspect != float32(1920)/1080 {
		t.Fatalf("Resize(0, h) changed aspect")
	}
}
