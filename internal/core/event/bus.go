package event

import "skelviz/internal/core/ecs"

// Event is the closed set of frame notifications carried by the Bus.
type Event interface {
	isEvent()
}

// EntityDestroyed is emitted when a scene entity is removed. Consumers prune
// references (overlay live-bone slots, instance bindings) at the next frame
// start.
type EntityDestroyed struct {
	Entity ecs.EntityID
}

func (EntityDestroyed) isEvent() {}

// Bus is a double-buffered event queue. Events emitted during frame N are
// delivered at the start of frame N+1, so every system in a frame sees a
// consistent world regardless of registration order.
type Bus struct {
	front    []Event
	back     []Event
	handlers []func(Event)
}

func NewBus() *Bus {
	return &Bus{
		front: make([]Event, 0, 32),
		back:  make([]Event, 0, 32),
	}
}

// Emit queues an event for delivery next frame.
func (b *Bus) Emit(ev Event) {
	b.back = append(b.back, ev)
}

// Subscribe registers a handler. Handlers run on the frame goroutine.
func (b *Bus) Subscribe(fn func(Event)) {
	b.handlers = append(b.handlers, fn)
}

// SwapAndDispatch rotates the buffers and delivers last frame's events.
// Called once at frame start.
func (b *Bus) SwapAndDispatch() {
	b.front, b.back = b.back, b.front[:0]
	for _, ev := range b.front {
		for _, h := range b.handlers {
			h(ev)
		}
	}
}
