package domain

import (
	"encoding/json"

	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// Charge represents one authorization/capture cycle against a payment
// method. The gateway is the source of truth for its status; local
// mutation only follows gateway notifications.
type Charge struct {
	id              uint
	gatewayID       ChargeID
	code            string
	amount          int64
	paidAmount      int64
	canceledAmount  int64
	refundedAmount  int64
	status          ChargeStatus
	paymentMethod   string
	customerID      CustomerID
	lastTransaction *Transaction
}

// NewCharge creates a charge from gateway data.
func NewCharge(gatewayID ChargeID, code string, amount int64, status ChargeStatus) (*Charge, error) {
	if amount < 0 {
		return nil, sherrors.Validation("amount should be greater than or equal to 0")
	}
	return &Charge{
		gatewayID: gatewayID,
		code:      code,
		amount:    amount,
		status:    status,
	}, nil
}

// RestoreCharge recreates a Charge from persisted data.
func RestoreCharge(
	id uint,
	gatewayID ChargeID,
	code string,
	amount, paidAmount, canceledAmount, refundedAmount int64,
	status ChargeStatus,
	paymentMethod string,
	customerID CustomerID,
) *Charge {
	return &Charge{
		id:             id,
		gatewayID:      gatewayID,
		code:           code,
		amount:         amount,
		paidAmount:     paidAmount,
		canceledAmount: canceledAmount,
		refundedAmount: refundedAmount,
		status:         status,
		paymentMethod:  paymentMethod,
		customerID:     customerID,
	}
}

func (c *Charge) ID() uint                      { return c.id }
func (c *Charge) GatewayID() ChargeID           { return c.gatewayID }
func (c *Charge) Code() string                  { return c.code }
func (c *Charge) Amount() int64                 { return c.amount }
func (c *Charge) PaidAmount() int64             { return c.paidAmount }
func (c *Charge) CanceledAmount() int64         { return c.canceledAmount }
func (c *Charge) RefundedAmount() int64         { return c.refundedAmount }
func (c *Charge) Status() ChargeStatus          { return c.status }
func (c *Charge) PaymentMethod() string         { return c.paymentMethod }
func (c *Charge) CustomerID() CustomerID        { return c.customerID }
func (c *Charge) LastTransaction() *Transaction { return c.lastTransaction }

// SetID assigns the local identity after persistence.
func (c *Charge) SetID(id uint) { c.id = id }

// SetPaymentMethod records the payment method tag.
func (c *Charge) SetPaymentMethod(method string) { c.paymentMethod = method }

// SetCustomerID records the owning gateway customer.
func (c *Charge) SetCustomerID(id CustomerID) { c.customerID = id }

// SetPaidAmount records the amount confirmed paid by the gateway.
func (c *Charge) SetPaidAmount(amount int64) error {
	if amount < 0 {
		return sherrors.Validation("paid amount should be greater than or equal to 0")
	}
	c.paidAmount = amount
	return nil
}

// SetCanceledAmount records the amount voided at the gateway.
func (c *Charge) SetCanceledAmount(amount int64) error {
	if amount < 0 {
		return sherrors.Validation("canceled amount should be greater than or equal to 0")
	}
	c.canceledAmount = amount
	return nil
}

// SetRefundedAmount records the amount refunded at the gateway.
func (c *Charge) SetRefundedAmount(amount int64) error {
	if amount < 0 {
		return sherrors.Validation("refunded amount should be greater than or equal to 0")
	}
	c.refundedAmount = amount
	return nil
}

// UpdateStatus applies a gateway-reported status change. Re-applying the
// current status is a no-op so redelivered notifications are absorbed.
func (c *Charge) UpdateStatus(status ChargeStatus) error {
	if status == c.status {
		return nil
	}
	if !c.status.CanTransitionTo(status) {
		return sherrors.Validation(
			"charge " + c.gatewayID.String() + " cannot move from " +
				c.status.String() + " to " + status.String(),
		)
	}
	c.status = status
	return nil
}

// AddTransaction records the most recent gateway transaction for this
// charge. The transaction keeps only a weak reference back.
func (c *Charge) AddTransaction(t *Transaction) {
	c.lastTransaction = t
}

// MarshalJSON projects the charge for logging and API responses.
func (c *Charge) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID              uint         `json:"id"`
		GatewayID       ChargeID     `json:"gatewayId"`
		Code            string       `json:"code"`
		Amount          int64        `json:"amount"`
		PaidAmount      int64        `json:"paidAmount"`
		CanceledAmount  int64        `json:"canceledAmount"`
		RefundedAmount  int64        `json:"refundedAmount"`
		Status          ChargeStatus `json:"status"`
		PaymentMethod   string       `json:"paymentMethod,omitempty"`
		CustomerID      CustomerID   `json:"customerId,omitempty"`
		LastTransaction *Transaction `json:"lastTransaction,omitempty"`
	}{
		ID:              c.id,
		GatewayID:       c.gatewayID,
		Code:            c.code,
		Amount:          c.amount,
		PaidAmount:      c.paidAmount,
		CanceledAmount:  c.canceledAmount,
		RefundedAmount:  c.refundedAmount,
		Status:          c.status,
		PaymentMethod:   c.paymentMethod,
		CustomerID:      c.customerID,
		LastTransaction: c.lastTransaction,
	})
}
