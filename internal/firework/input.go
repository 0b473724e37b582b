package firework

import "github.com/go-gl/mathgl/mgl32"

// Spawner is the part of Engine the input mapper needs.
type Spawner interface {
	Spawn(origin mgl32.Vec3, cfg *SpawnConfig) *System
}

// Projector builds world rays from NDC. *Camera implements it.
type Projector interface {
	ScreenRay(ndc mgl32.Vec2) Ray
}

// InputMapper turns pointer events into spawns on SpawnPlane. Drag spawns
// are throttled to one per MoveSpawnInterval.
type InputMapper struct {
	spawner Spawner
	proj    Projector
	plane   Plane

	// OnFirstInteraction runs once, on the first pointer-down.
	OnFirstInteraction func()

	held       bool
	interacted bool
	lastMove   float64
	interval   float64
}

func NewInputMapper(sp Spawner, proj Projector) *InputMapper {
	return &InputMapper{
		spawner:  sp,
		proj:     proj,
		plane:    SpawnPlane,
		interval: MoveSpawnInterval,
	}
}

// WorldPoint maps a client-space pointer to the spawn plane.
func (m *InputMapper) WorldPoint(x, y float64, width, height int) (mgl32.Vec3, error) {
	ray := m.proj.ScreenRay(ClientToNDC(x, y, width, height))
	return ray.IntersectPlane(m.plane)
}

// PointerDown always spawns at the pointer and restarts the drag
// interval. now is in seconds.
func (m *InputMapper) PointerDown(x, y float64, width, height int, now float64) *System {
	m.held = true
	m.lastMove = now
	if !m.interacted {
		m.interacted = true
		if m.OnFirstInteraction != nil {
			m.OnFirstInteraction()
		}
	}
	return m.spawnAt(x, y, width, height)
}

// PointerMove spawns while the button is held, at most once per interval.
func (m *InputMapper) PointerMove(x, y float64, width, height int, now float64) *System {
	if !m.held {
		return nil
	}
	if now-m.lastMove < m.interval {
		return nil
	}
	s := m.spawnAt(x, y, width, height)
	if s != nil {
		m.lastMove = now
	}
	return s
}

func (m *InputMapper) PointerUp() { m.held = false }

// Held reports whether the pointer button is down.
func (m *InputMapper) Held() bool { return m.held }

func (m *InputMapper) spawnAt(x, y float64, width, height int) *System {
	p, err := m.WorldPoint(x, y, width, height)
	if err != nil {
		return nil
	}
	return m.spawner.Spawn(p, nil)
}
