// Package firework simulates interactive firework particle systems and
// drives them through a Scene supplied by the renderer.
//
// All methods must be called from a single goroutine: pointer callbacks and
// the frame tick are expected to run strictly one after the other.
package firework

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Options configures an Engine.
type Options struct {
	// MaxSystems caps concurrent top-level systems. 0 disables the cap.
	MaxSystems int
	// Gravity defaults to (0, GravityY, 0) when zero.
	Gravity mgl32.Vec3
	Seed    uint64

	OnSpawn func(s *System)
	OnEvict func(s *System)
}

// Stats are running counters for the engine.
type Stats struct {
	Systems   int
	Particles int
	Spawned   uint64
	Children  uint64
	Expired   uint64
	Evicted   uint64
}

// Engine owns the population registry and every live System.
type Engine struct {
	scene   Scene
	rnd     *Rand
	gravity mgl32.Vec3
	opts    Options

	systems []*System // oldest first
	stats   Stats
}

func New(scene Scene, opts Options) *Engine {
	g := opts.Gravity
	if g == (mgl32.Vec3{}) {
		g = mgl32.Vec3{0, GravityY, 0}
	}
	if opts.MaxSystems < 0 {
		opts.MaxSystems = 0
	}
	return &Engine{
		scene:   scene,
		rnd:     NewRand(opts.Seed),
		gravity: g,
		opts:    opts,
	}
}

// Systems returns a snapshot of the registry, oldest first.
func (e *Engine) Systems() []*System {
	out := make([]*System, len(e.systems))
	copy(out, e.systems)
	return out
}

// Len returns the number of live systems.
func (e *Engine) Len() int { return len(e.systems) }

func (e *Engine) Stats() Stats {
	st := e.stats
	st.Systems = len(e.systems)
	st.Particles = 0
	for _, s := range e.systems {
		st.Particles += s.count
	}
	return st
}

// Update advances every live system by dt seconds and removes those whose
// deadline has passed.
func (e *Engine) Update(dt float32) {
	if dt <= 0 {
		return
	}
	// Hooks may spawn or evict while we integrate, so walk a copy. New
	// systems first move on the next frame.
	live := slices.Clone(e.systems)
	for _, s := range live {
		if s.disposed() {
			continue
		}
		e.integrate(s, dt)
	}
	e.cull()
}

// Close disposes every live system.
func (e *Engine) Close() {
	for len(e.systems) > 0 {
		e.dispose(0)
	}
}
