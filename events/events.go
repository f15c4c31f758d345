package events

import (
	"context"
	"encoding/json"
	"time"
)

// Aggregates
const (
	AggregateOrder       = "orders"
	AggregateReservation = "reservations"
)

// Event types
const (
	OrderCreated             = "order.created"
	OrderStatusChanged       = "order.status_changed"
	ReservationCreated       = "reservation.created"
	ReservationStatusChanged = "reservation.status_changed"
	ReservationDeleted       = "reservation.deleted"
)

type Message struct {
	ID         uint            `json:"id"`
	Event      string          `json:"event"`
	Aggregate  string          `json:"aggregate"`
	RecordID   uint            `json:"recordId"`
	Data       json.RawMessage `json:"data"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// StatusChange is the payload of every *.status_changed event.
type StatusChange struct {
	From      string `json:"from"`
	To        string `json:"to,omitempty"`
	ActorID   uint   `json:"actorId"`
	ActorRole string `json:"actorRole"`
}
