package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"fireworks/internal/firework"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	var launches, fizzles int
	bus.Subscribe(EventLaunch, func(e Event) { launches += e.Count })
	bus.Subscribe(EventLaunch, func(Event) { launches++ })
	bus.Subscribe(EventFizzle, func(Event) { fizzles++ })

	bus.Emit(Event{Type: EventLaunch, Count: 10})
	bus.Emit(Event{Type: EventEvict})
	if launches != 11 || fizzles != 0 {
		t.Fatalf("launches %d, fizzles %d", launches, fizzles)
	}
}

func TestSystemEvent(t *testing.T) {
	e := firework.New(nopScene{}, firework.Options{Seed: 1})
	s := e.Spawn(mgl32.Vec3{1, 2, 0}, nil)

	var got []Event
	bus := NewEventBus()
	bus.Subscribe(EventEvict, func(ev Event) { got = append(got, ev) })
	bus.Emit(SystemEvent(EventEvict, s))

	if len(got) != 1 {
		t.Fatalf("events\nhave %d\nwant 1", len(got))
	}
	ev := got[0]
	if ev.ID != s.ID || ev.ID == uuid.Nil {
		t.Fatalf("ID\nhave %v\nwant %v", ev.ID, s.ID)
	}
	if ev.At != s.Origin || ev.Count != s.Count() {
		t.Fatalf("event %+v does not describe the system", ev)
	}
}

type nopObject struct{}

func (nopObject) Dispose()                   {}
func (nopObject) Update(firework.CloudState) {}

type nopSprite struct{}

func (nopSprite) Dispose()                   {}
func (nopSprite) Update(firework.SpriteState) {}

type nopScene struct{}

func (nopScene) NewPointCloud(firework.CloudSpec) firework.Cloud { return nopObject{} }
func (nopScene) NewSprite(firework.SpriteSpec) firework.Sprite   { return nopSprite{} }
func (nopScene) Add(firework.Object)                             {}
func (nopScene) Remove(firework.Object)                          {}
