package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	kernel "github.com/storelink/paygate/internal/module/kernel/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// WebhookType is the dotted event name of a delivery, split into the
// entity it concerns and the action that happened to it.
type WebhookType struct {
	entityType string
	action     string
}

// ParseWebhookType splits a dotted event name ("charge.paid"). A name
// without a delimiter is rejected.
func ParseWebhookType(name string) (WebhookType, error) {
	entityType, action, ok := strings.Cut(name, ".")
	if !ok || entityType == "" || action == "" {
		return WebhookType{}, sherrors.Validation("malformed webhook type " + name)
	}
	return WebhookType{entityType: entityType, action: action}, nil
}

func (t WebhookType) EntityType() string { return t.entityType }
func (t WebhookType) Action() string     { return t.action }
func (t WebhookType) String() string     { return t.entityType + "." + t.action }

// Equals reports tag equality.
func (t WebhookType) Equals(other WebhookType) bool { return t == other }

// MarshalJSON encodes the bare dotted tag.
func (t WebhookType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Component classifies which subsystem a delivery belongs to.
type Component string

const (
	ComponentKernel     Component = "Kernel"
	ComponentRecurrence Component = "Recurrence"
)

func (c Component) String() string { return string(c) }

// ComponentFor derives the component from the entity type. Recurring
// billing entities route to Recurrence; everything else is Kernel.
func ComponentFor(entityType string) Component {
	switch entityType {
	case "subscription", "invoice", "plan", "plan_item":
		return ComponentRecurrence
	default:
		return ComponentKernel
	}
}

// Webhook is one gateway delivery: identity, type, component and the
// raw entity payload. The payload stays opaque here; the dispatcher
// decodes it against the schema the entity type demands.
type Webhook struct {
	localID   uuid.UUID
	gatewayID kernel.WebhookID
	whType    WebhookType
	component Component
	entity    json.RawMessage
	createdAt time.Time
}

// NewWebhook creates a webhook delivery record.
func NewWebhook(gatewayID kernel.WebhookID, whType WebhookType, entity json.RawMessage, createdAt time.Time) *Webhook {
	return &Webhook{
		localID:   uuid.New(),
		gatewayID: gatewayID,
		whType:    whType,
		component: ComponentFor(whType.EntityType()),
		entity:    entity,
		createdAt: createdAt,
	}
}

func (w *Webhook) LocalID() uuid.UUID          { return w.localID }
func (w *Webhook) GatewayID() kernel.WebhookID { return w.gatewayID }
func (w *Webhook) Type() WebhookType           { return w.whType }
func (w *Webhook) Component() Component        { return w.component }
func (w *Webhook) Entity() json.RawMessage     { return w.entity }
func (w *Webhook) CreatedAt() time.Time        { return w.createdAt }

// MarshalJSON projects the delivery for logging.
func (w *Webhook) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LocalID   uuid.UUID        `json:"localId"`
		GatewayID kernel.WebhookID `json:"gatewayId"`
		Type      WebhookType      `json:"type"`
		Component Component        `json:"component"`
		CreatedAt string           `json:"createdAt"`
	}{
		LocalID:   w.localID,
		GatewayID: w.gatewayID,
		Type:      w.whType,
		Component: w.component,
		CreatedAt: w.createdAt.Format(kernel.DateFormat),
	})
}
