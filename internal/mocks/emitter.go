package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/studyhub-api/internal/events"
)

// Verify interface compliance at compile time.
var _ events.Emitter = (*Emitter)(nil)

// Emitter captures emitted events for assertions.
type Emitter struct {
	mu     sync.Mutex
	Events []*events.Event
}

// Emit records the event.
func (e *Emitter) Emit(_ context.Context, event *events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Events = append(e.Events, event)
	return nil
}

// TotalXP sums the amounts of all captured XPAwarded events.
func (e *Emitter) TotalXP() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, evt := range e.Events {
		if evt.Type != events.EventTypeXPAwarded {
			continue
		}
		var payload events.XPAwardedPayload
		if err := evt.UnmarshalPayload(&payload); err == nil {
			total += payload.Amount
		}
	}
	return total
}
