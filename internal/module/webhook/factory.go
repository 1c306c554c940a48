package webhook

import (
	"time"

	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/webhook/domain"
)

// Factory builds Webhook deliveries from the inbound envelope.
type Factory struct {
	now func() time.Time
}

// NewFactory creates a webhook factory.
func NewFactory() *Factory {
	return &Factory{now: time.Now}
}

// CreateFromPayload validates the envelope and wraps it as a delivery.
func (f *Factory) CreateFromPayload(payload *WebhookPayload) (*domain.Webhook, error) {
	gatewayID, err := kerneldomain.NewWebhookID(payload.ID)
	if err != nil {
		return nil, err
	}
	whType, err := domain.ParseWebhookType(payload.Type)
	if err != nil {
		return nil, err
	}
	createdAt := f.now()
	if payload.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, payload.CreatedAt); err == nil {
			createdAt = parsed
		}
	}
	return domain.NewWebhook(gatewayID, whType, payload.Data, createdAt), nil
}
