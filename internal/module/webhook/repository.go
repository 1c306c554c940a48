package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/storelink/paygate/internal/module/webhook/domain"
	"github.com/storelink/paygate/internal/module/webhook/entity"
	"gorm.io/gorm"
)

// Repository defines data access for webhook idempotency records.
type Repository interface {
	CreateWebhookEvent(ctx context.Context, webhook *domain.Webhook) error
	WebhookEventExists(ctx context.Context, eventID string) (bool, error)
	MarkWebhookEventProcessed(ctx context.Context, eventID string, processErr error) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new webhook repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWebhookEvent(ctx context.Context, webhook *domain.Webhook) error {
	ent := &entity.WebhookEventEntity{
		ID:        webhook.LocalID(),
		EventID:   webhook.GatewayID().String(),
		EventType: webhook.Type().String(),
		Component: webhook.Component().String(),
		Payload:   webhook.Entity(),
		CreatedAt: webhook.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(ent).Error; err != nil {
		return fmt.Errorf("create webhook event: %w", err)
	}
	return nil
}

func (r *repository) WebhookEventExists(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.WebhookEventEntity{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check webhook event: %w", err)
	}
	return count > 0, nil
}

func (r *repository) MarkWebhookEventProcessed(ctx context.Context, eventID string, processErr error) error {
	now := time.Now()
	updates := map[string]any{
		"processed":    processErr == nil,
		"processed_at": &now,
	}
	if processErr != nil {
		updates["process_error"] = processErr.Error()
	}
	err := r.db.WithContext(ctx).
		Model(&entity.WebhookEventEntity{}).
		Where("event_id = ?", eventID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("mark webhook event processed: %w", err)
	}
	return nil
}
