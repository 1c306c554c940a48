package domain

import (
	"encoding/json"

	kernel "github.com/storelink/paygate/internal/module/kernel/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// Customer is the buyer record mirrored from the gateway. The platform
// customer code is the dedup key; one code maps to at most one row.
type Customer struct {
	id        uint
	gatewayID kernel.CustomerID
	code      string
	name      string
	email     string
	document  string
}

// NewCustomer creates a customer keyed by platform code.
func NewCustomer(code, name, email string) (*Customer, error) {
	if code == "" {
		return nil, sherrors.Validation("customer code is required")
	}
	return &Customer{
		code:  code,
		name:  name,
		email: email,
	}, nil
}

// RestoreCustomer recreates a Customer from persisted data.
func RestoreCustomer(id uint, gatewayID kernel.CustomerID, code, name, email, document string) *Customer {
	return &Customer{
		id:        id,
		gatewayID: gatewayID,
		code:      code,
		name:      name,
		email:     email,
		document:  document,
	}
}

func (c *Customer) ID() uint                     { return c.id }
func (c *Customer) GatewayID() kernel.CustomerID { return c.gatewayID }
func (c *Customer) Code() string                 { return c.code }
func (c *Customer) Name() string                 { return c.name }
func (c *Customer) Email() string                { return c.email }
func (c *Customer) Document() string             { return c.document }

// SetID assigns the local identity after persistence.
func (c *Customer) SetID(id uint) { c.id = id }

// SetGatewayID records the gateway-side customer id once known.
func (c *Customer) SetGatewayID(id kernel.CustomerID) { c.gatewayID = id }

// SetDocument records the customer tax document.
func (c *Customer) SetDocument(document string) { c.document = document }

// MarshalJSON projects the customer for logging and API responses.
func (c *Customer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        uint              `json:"id"`
		GatewayID kernel.CustomerID `json:"gatewayId,omitempty"`
		Code      string            `json:"code"`
		Name      string            `json:"name,omitempty"`
		Email     string            `json:"email,omitempty"`
		Document  string            `json:"document,omitempty"`
	}{
		ID:        c.id,
		GatewayID: c.gatewayID,
		Code:      c.code,
		Name:      c.name,
		Email:     c.email,
		Document:  c.document,
	})
}
