package domain

import (
	"encoding/json"
	"time"

	kernel "github.com/storelink/paygate/internal/module/kernel/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// Cycle is one billing period of a subscription.
type Cycle struct {
	start     time.Time
	end       time.Time
	billingAt time.Time
}

// NewCycle creates a billing cycle.
func NewCycle(start, end, billingAt time.Time) (Cycle, error) {
	if end.Before(start) {
		return Cycle{}, sherrors.Validation("cycle end precedes cycle start")
	}
	return Cycle{start: start, end: end, billingAt: billingAt}, nil
}

func (c Cycle) Start() time.Time     { return c.start }
func (c Cycle) End() time.Time       { return c.end }
func (c Cycle) BillingAt() time.Time { return c.billingAt }
func (c Cycle) IsZero() bool         { return c == Cycle{} }

// MarshalJSON projects the cycle with formatted-string timestamps.
func (c Cycle) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start     string `json:"cycleStart"`
		End       string `json:"cycleEnd"`
		BillingAt string `json:"billingAt,omitempty"`
	}{
		Start:     c.start.Format(kernel.DateFormat),
		End:       c.end.Format(kernel.DateFormat),
		BillingAt: formatOrEmpty(c.billingAt),
	})
}

func formatOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(kernel.DateFormat)
}

// Invoice mirrors a gateway subscription invoice. Customer and charge
// are weak references by id; the subscription back-reference closes the
// loop for webhook routing.
type Invoice struct {
	id             uint
	gatewayID      kernel.InvoiceID
	subscriptionID kernel.SubscriptionID
	customerID     kernel.CustomerID
	chargeID       kernel.ChargeID
	paymentMethod  string
	status         InvoiceStatus
	amount         int64
	installments   bool
	discountTotal  int64
	incrementTotal int64
	cycle          Cycle
}

// NewInvoice creates an invoice mirror from gateway data.
func NewInvoice(
	gatewayID kernel.InvoiceID,
	subscriptionID kernel.SubscriptionID,
	amount int64,
	status InvoiceStatus,
) (*Invoice, error) {
	if amount < 0 {
		return nil, sherrors.Validation("amount should be greater than or equal to 0")
	}
	return &Invoice{
		gatewayID:      gatewayID,
		subscriptionID: subscriptionID,
		amount:         amount,
		status:         status,
	}, nil
}

// RestoreInvoice recreates an Invoice from persisted data.
func RestoreInvoice(
	id uint,
	gatewayID kernel.InvoiceID,
	subscriptionID kernel.SubscriptionID,
	customerID kernel.CustomerID,
	chargeID kernel.ChargeID,
	paymentMethod string,
	status InvoiceStatus,
	amount int64,
	installments bool,
	discountTotal, incrementTotal int64,
	cycle Cycle,
) *Invoice {
	return &Invoice{
		id:             id,
		gatewayID:      gatewayID,
		subscriptionID: subscriptionID,
		customerID:     customerID,
		chargeID:       chargeID,
		paymentMethod:  paymentMethod,
		status:         status,
		amount:         amount,
		installments:   installments,
		discountTotal:  discountTotal,
		incrementTotal: incrementTotal,
		cycle:          cycle,
	}
}

func (i *Invoice) ID() uint                              { return i.id }
func (i *Invoice) GatewayID() kernel.InvoiceID           { return i.gatewayID }
func (i *Invoice) SubscriptionID() kernel.SubscriptionID { return i.subscriptionID }
func (i *Invoice) CustomerID() kernel.CustomerID         { return i.customerID }
func (i *Invoice) ChargeID() kernel.ChargeID             { return i.chargeID }
func (i *Invoice) PaymentMethod() string                 { return i.paymentMethod }
func (i *Invoice) Status() InvoiceStatus                 { return i.status }
func (i *Invoice) Amount() int64                         { return i.amount }
func (i *Invoice) Installments() bool                    { return i.installments }
func (i *Invoice) DiscountTotal() int64                  { return i.discountTotal }
func (i *Invoice) IncrementTotal() int64                 { return i.incrementTotal }
func (i *Invoice) Cycle() Cycle                          { return i.cycle }

// SetID assigns the local identity after persistence.
func (i *Invoice) SetID(id uint) { i.id = id }

// SetCustomerID records the billed customer.
func (i *Invoice) SetCustomerID(id kernel.CustomerID) { i.customerID = id }

// SetChargeID records the charge that settles the invoice.
func (i *Invoice) SetChargeID(id kernel.ChargeID) { i.chargeID = id }

// SetPaymentMethod records the payment method tag.
func (i *Invoice) SetPaymentMethod(method string) { i.paymentMethod = method }

// SetStatus applies a gateway-reported invoice status.
func (i *Invoice) SetStatus(status InvoiceStatus) { i.status = status }

// SetInstallments marks whether the amount is split in installments.
func (i *Invoice) SetInstallments(installments bool) { i.installments = installments }

// SetDiscountTotal records the summed discounts.
func (i *Invoice) SetDiscountTotal(total int64) { i.discountTotal = total }

// SetIncrementTotal records the summed increments.
func (i *Invoice) SetIncrementTotal(total int64) { i.incrementTotal = total }

// SetCycle attaches the billing period.
func (i *Invoice) SetCycle(cycle Cycle) { i.cycle = cycle }

// MarshalJSON projects the invoice for logging and API responses.
func (i *Invoice) MarshalJSON() ([]byte, error) {
	payload := struct {
		ID             uint                  `json:"id"`
		GatewayID      kernel.InvoiceID      `json:"gatewayId"`
		SubscriptionID kernel.SubscriptionID `json:"subscriptionId"`
		CustomerID     kernel.CustomerID     `json:"customerId,omitempty"`
		ChargeID       kernel.ChargeID       `json:"chargeId,omitempty"`
		PaymentMethod  string                `json:"paymentMethod,omitempty"`
		Status         InvoiceStatus         `json:"status"`
		Amount         int64                 `json:"amount"`
		Installments   bool                  `json:"installments"`
		DiscountTotal  int64                 `json:"discountTotal"`
		IncrementTotal int64                 `json:"incrementTotal"`
		Cycle          *Cycle                `json:"cycle,omitempty"`
	}{
		ID:             i.id,
		GatewayID:      i.gatewayID,
		SubscriptionID: i.subscriptionID,
		CustomerID:     i.customerID,
		ChargeID:       i.chargeID,
		PaymentMethod:  i.paymentMethod,
		Status:         i.status,
		Amount:         i.amount,
		Installments:   i.installments,
		DiscountTotal:  i.discountTotal,
		IncrementTotal: i.incrementTotal,
	}
	if !i.cycle.IsZero() {
		cycle := i.cycle
		payload.Cycle = &cycle
	}
	return json.Marshal(payload)
}
