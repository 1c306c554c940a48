package entity

import (
	"time"

	"github.com/google/uuid"
)

// WebhookEventEntity is the durable idempotency record for one gateway
// delivery. The gateway event id is unique; a second insert of the same
// delivery fails and is treated as a duplicate.
type WebhookEventEntity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID      string    `gorm:"uniqueIndex;not null"`
	EventType    string    `gorm:"not null"`
	Component    string    `gorm:"not null"`
	Payload      []byte    `gorm:"type:jsonb"`
	Processed    bool      `gorm:"not null;default:false"`
	ProcessError string
	CreatedAt    time.Time
	ProcessedAt  *time.Time
}

// TableName returns the database table name.
func (WebhookEventEntity) TableName() string {
	return "gateway_webhook_events"
}
