package models

import "time"

// OutboxEvent is written in the same transaction as the change it describes.
type OutboxEvent struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Aggregate   string     `gorm:"type:varchar(50);not null;index:idx_outbox_aggregate" json:"aggregate"`
	RecordID    uint       `gorm:"not null;index:idx_outbox_aggregate" json:"recordId"`
	EventType   string     `gorm:"type:varchar(50);not null" json:"eventType"`
	Payload     string     `gorm:"type:text;not null" json:"payload"`
	Processed   bool       `gorm:"not null;index" json:"processed"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
