package repository

import (
	"context"
	"time"

	"github.com/yeremiapane/restaurant-booking/models"
)

func (s *Store) AddOutboxEvent(ctx context.Context, event *models.OutboxEvent) error {
	return translate(s.conn(ctx).Create(event).Error)
}

// PendingOutboxEvents returns unprocessed events oldest first.
func (s *Store) PendingOutboxEvents(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	var events []models.OutboxEvent
	err := s.conn(ctx).Where("processed = ?", false).Order("id ASC").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, translate(err)
	}
	return events, nil
}

func (s *Store) MarkOutboxProcessed(ctx context.Context, id uint, at time.Time) error {
	return translate(s.conn(ctx).Model(&models.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"processed": true, "processed_at": at}).Error)
}

func (s *Store) CountPendingOutboxEvents(ctx context.Context) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.OutboxEvent{}).Where("processed = ?", false).Count(&count).Error
	return count, translate(err)
}
