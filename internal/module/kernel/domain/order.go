package domain

import (
	"encoding/json"

	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// Order is the local mirror of a platform order's payment state. The
// platform order itself is referenced by code and mutated through the
// PlatformOrder port, never owned.
type Order struct {
	id           uint
	gatewayID    OrderID
	platformCode string
	customerID   CustomerID
	status       OrderStatus
	charges      []*Charge
}

// NewOrder creates a local order mirror.
func NewOrder(gatewayID OrderID, platformCode string, status OrderStatus) *Order {
	return &Order{
		gatewayID:    gatewayID,
		platformCode: platformCode,
		status:       status,
	}
}

// RestoreOrder recreates an Order from persisted data.
func RestoreOrder(
	id uint,
	gatewayID OrderID,
	platformCode string,
	customerID CustomerID,
	status OrderStatus,
) *Order {
	return &Order{
		id:           id,
		gatewayID:    gatewayID,
		platformCode: platformCode,
		customerID:   customerID,
		status:       status,
	}
}

func (o *Order) ID() uint             { return o.id }
func (o *Order) GatewayID() OrderID   { return o.gatewayID }
func (o *Order) PlatformCode() string { return o.platformCode }
func (o *Order) CustomerID() CustomerID {
	return o.customerID
}
func (o *Order) Status() OrderStatus { return o.status }
func (o *Order) Charges() []*Charge  { return o.charges }

// SetID assigns the local identity after persistence.
func (o *Order) SetID(id uint) { o.id = id }

// SetCustomerID records the owning gateway customer.
func (o *Order) SetCustomerID(id CustomerID) { o.customerID = id }

// AddCharge appends a charge to the order.
func (o *Order) AddCharge(c *Charge) {
	o.charges = append(o.charges, c)
}

// SetStatus transitions the order. Terminal states (processing,
// canceled) admit no further transition; re-applying the current status
// is a no-op so redelivered webhooks are absorbed.
func (o *Order) SetStatus(status OrderStatus) error {
	if status == o.status {
		return nil
	}
	if !o.status.CanTransitionTo(status) {
		return sherrors.Validation(
			"order " + o.platformCode + " cannot move from " +
				o.status.String() + " to " + status.String(),
		)
	}
	o.status = status
	return nil
}

// MarshalJSON projects the order for logging and API responses.
func (o *Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID           uint        `json:"id"`
		GatewayID    OrderID     `json:"gatewayId"`
		PlatformCode string      `json:"platformCode"`
		CustomerID   CustomerID  `json:"customerId,omitempty"`
		Status       OrderStatus `json:"status"`
		Charges      []*Charge   `json:"charges,omitempty"`
	}{
		ID:           o.id,
		GatewayID:    o.gatewayID,
		PlatformCode: o.platformCode,
		CustomerID:   o.customerID,
		Status:       o.status,
		Charges:      o.charges,
	})
}
