package services

import (
	"context"
	"encoding/json"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
)

// recordEvent appends an outbox row inside the caller's transaction.
func recordEvent(ctx context.Context, tx *repository.Store, aggregate string, id uint, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return tx.AddOutboxEvent(ctx, &models.OutboxEvent{
		Aggregate: aggregate,
		RecordID:  id,
		EventType: event,
		Payload:   string(payload),
	})
}

func actorID(actor *models.Identity) uint {
	if actor == nil {
		return 0
	}
	return actor.UserID
}

func actorRole(actor *models.Identity) string {
	if actor == nil {
		return "ANONYMOUS"
	}
	return string(actor.Role)
}
