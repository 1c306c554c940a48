package webhook

import "encoding/json"

// WebhookPayload is the inbound delivery envelope: {type, id, data}.
// Data stays raw until the dispatcher knows which schema applies.
type WebhookPayload struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"created_at,omitempty"`
}
