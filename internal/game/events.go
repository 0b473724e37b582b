package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"fireworks/internal/firework"
)

type EventType int

const (
	EventLaunch EventType = iota // top-level system spawned
	EventFizzle                  // sub-burst spawned from a spark
	EventEvict                   // oldest system dropped by the population cap
)

type Event struct {
	Type  EventType
	ID    uuid.UUID // firework.System.ID
	At    mgl32.Vec3
	Count int // particles in the system
}

// SystemEvent describes s as an event of type t.
func SystemEvent(t EventType, s *firework.System) Event {
	return Event{Type: t, ID: s.ID, At: s.Origin, Count: s.Count()}
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
