package notify

import (
	"context"
	"time"
)

// EventType identifica un hook hacia el exterior.
type EventType string

const (
	EventKennelSelected   EventType = "kennel.selected"
	EventBookingRequested EventType = "booking.requested"
	EventBookingCreated   EventType = "booking.created"
	EventBookingUpdated   EventType = "booking.updated"
	EventRoomStatusChange EventType = "room.status_changed"
	EventPetAssigned      EventType = "pet.assigned"
	EventPetUnassigned    EventType = "pet.unassigned"
)

type Event struct {
	Type       EventType      `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// Publisher entrega eventos de dominio. Los servicios no fallan si Publish falla;
// sólo lo registran.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop descarta todo. Útil en tests.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
