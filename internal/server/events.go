package server

import (
	"sync"

	"github.com/stakewarden/stakewarden/internal/vault"
)

// eventBuffer keeps the most recent vault events for the api. It
// implements vault.EventSink.
type eventBuffer struct {
	lock   sync.Mutex
	events []*vault.Event
	size   int
}

func newEventBuffer(size int) *eventBuffer {
	return &eventBuffer{size: size}
}

func (e *eventBuffer) Notify(event *vault.Event) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.events = append(e.events, event)
	if len(e.events) > e.size {
		e.events = e.events[len(e.events)-e.size:]
	}
	return nil
}

// recent returns up to limit events, newest first
func (e *eventBuffer) recent(limit int) []*vault.Event {
	e.lock.Lock()
	defer e.lock.Unlock()

	if limit <= 0 || limit > len(e.events) {
		limit = len(e.events)
	}
	out := make([]*vault.Event, limit)
	for i := 0; i < limit; i++ {
		out[i] = e.events[len(e.events)-1-i]
	}
	return out
}
