// Package events provides a minimal in-process event channel between the
// session engines and cross-cutting consumers. Its single current use is the
// experience-point side channel: every engine action that earns XP emits an
// event here instead of mutating shared progress state directly.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventTypeXPAwarded identifies experience-point award events.
const EventTypeXPAwarded = "xp_awarded"

// Event is a typed notification with a JSON payload.
type Event struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// Type indicates what happened, e.g. EventTypeXPAwarded.
	Type string `json:"type"`

	// Payload carries the event-specific data serialized as JSON.
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is when the event was emitted.
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// XPAwardedPayload is the payload of an EventTypeXPAwarded event.
type XPAwardedPayload struct {
	// Amount is the number of experience points earned. Always positive.
	Amount int `json:"amount"`

	// Source names the engine action that earned the points,
	// e.g. "quiz_answer" or "speaking_free".
	Source string `json:"source"`
}

// NewXPAwarded creates an XP award event.
func NewXPAwarded(amount int, source string) (*Event, error) {
	payload, err := json.Marshal(XPAwardedPayload{Amount: amount, Source: source})
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:        uuid.New(),
		Type:      EventTypeXPAwarded,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EmitXP builds and publishes an XP award event in one step. A nil emitter is
// a no-op so engines can be constructed without the side channel in tests.
func EmitXP(ctx context.Context, e Emitter, amount int, source string) error {
	if e == nil {
		return nil
	}
	evt, err := NewXPAwarded(amount, source)
	if err != nil {
		return err
	}
	return e.Emit(ctx, evt)
}

// Handler processes events dispatched by an Emitter.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// Emitter publishes events to registered handlers without the publisher
// knowing who consumes them.
type Emitter interface {
	// Emit publishes the given event to all registered handlers.
	Emit(ctx context.Context, event *Event) error
}
