package domain

import (
	"encoding/json"

	kernel "github.com/storelink/paygate/internal/module/kernel/domain"
	paymentdomain "github.com/storelink/paygate/internal/module/payment/domain"
)

// Subscription mirrors a gateway subscription. It owns references to its
// current charge and invoice; the platform order is a weak reference by
// code and is mutated through ports, never owned.
type Subscription struct {
	id                uint
	gatewayID         kernel.SubscriptionID
	code              string
	platformOrderCode string
	status            SubscriptionStatus
	planID            string
	customer          *paymentdomain.Customer
	currentCharge     *kernel.Charge
	currentInvoiceID  kernel.InvoiceID
	items             []*SubProduct
	installments      bool
	interval          string
	intervalCount     int
}

// NewSubscription creates a subscription mirror from gateway data.
func NewSubscription(gatewayID kernel.SubscriptionID, code string, status SubscriptionStatus) *Subscription {
	return &Subscription{
		gatewayID: gatewayID,
		code:      code,
		status:    status,
	}
}

// RestoreSubscription recreates a Subscription from persisted data.
func RestoreSubscription(
	id uint,
	gatewayID kernel.SubscriptionID,
	code string,
	platformOrderCode string,
	status SubscriptionStatus,
	planID string,
	installments bool,
	interval string,
	intervalCount int,
) *Subscription {
	return &Subscription{
		id:                id,
		gatewayID:         gatewayID,
		code:              code,
		platformOrderCode: platformOrderCode,
		status:            status,
		planID:            planID,
		installments:      installments,
		interval:          interval,
		intervalCount:     intervalCount,
	}
}

func (s *Subscription) ID() uint                          { return s.id }
func (s *Subscription) GatewayID() kernel.SubscriptionID  { return s.gatewayID }
func (s *Subscription) Code() string                      { return s.code }
func (s *Subscription) PlatformOrderCode() string         { return s.platformOrderCode }
func (s *Subscription) Status() SubscriptionStatus        { return s.status }
func (s *Subscription) PlanID() string                    { return s.planID }
func (s *Subscription) Customer() *paymentdomain.Customer { return s.customer }
func (s *Subscription) CurrentCharge() *kernel.Charge     { return s.currentCharge }
func (s *Subscription) CurrentInvoiceID() kernel.InvoiceID {
	return s.currentInvoiceID
}
func (s *Subscription) Items() []*SubProduct { return s.items }
func (s *Subscription) Installments() bool   { return s.installments }
func (s *Subscription) Interval() string     { return s.interval }
func (s *Subscription) IntervalCount() int   { return s.intervalCount }

// SetID assigns the local identity after persistence.
func (s *Subscription) SetID(id uint) { s.id = id }

// SetPlatformOrderCode links the host platform order this subscription
// bills against.
func (s *Subscription) SetPlatformOrderCode(code string) { s.platformOrderCode = code }

// SetStatus applies a gateway-reported subscription status.
func (s *Subscription) SetStatus(status SubscriptionStatus) { s.status = status }

// SetPlanID links the gateway plan.
func (s *Subscription) SetPlanID(id string) { s.planID = id }

// SetCustomer attaches the subscribing customer.
func (s *Subscription) SetCustomer(customer *paymentdomain.Customer) { s.customer = customer }

// SetCurrentCharge attaches the charge of the current billing cycle.
func (s *Subscription) SetCurrentCharge(charge *kernel.Charge) { s.currentCharge = charge }

// SetCurrentInvoiceID records the invoice of the current billing cycle.
func (s *Subscription) SetCurrentInvoiceID(id kernel.InvoiceID) { s.currentInvoiceID = id }

// AddItem appends a recurring line item.
func (s *Subscription) AddItem(item *SubProduct) { s.items = append(s.items, item) }

// SetInstallments marks whether cycle charges are split in installments.
func (s *Subscription) SetInstallments(installments bool) { s.installments = installments }

// SetInterval records the billing interval.
func (s *Subscription) SetInterval(interval string, count int) {
	s.interval = interval
	s.intervalCount = count
}

// MarshalJSON projects the subscription for logging and API responses.
func (s *Subscription) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID                uint                    `json:"id"`
		GatewayID         kernel.SubscriptionID   `json:"gatewayId"`
		Code              string                  `json:"code"`
		PlatformOrderCode string                  `json:"platformOrderCode,omitempty"`
		Status            SubscriptionStatus      `json:"status"`
		PlanID            string                  `json:"planId,omitempty"`
		Customer          *paymentdomain.Customer `json:"customer,omitempty"`
		CurrentCharge     *kernel.Charge          `json:"currentCharge,omitempty"`
		CurrentInvoiceID  kernel.InvoiceID        `json:"currentInvoiceId,omitempty"`
		Items             []*SubProduct           `json:"items,omitempty"`
		Installments      bool                    `json:"installments"`
		Interval          string                  `json:"interval,omitempty"`
		IntervalCount     int                     `json:"intervalCount,omitempty"`
	}{
		ID:                s.id,
		GatewayID:         s.gatewayID,
		Code:              s.code,
		PlatformOrderCode: s.platformOrderCode,
		Status:            s.status,
		PlanID:            s.planID,
		Customer:          s.customer,
		CurrentCharge:     s.currentCharge,
		CurrentInvoiceID:  s.currentInvoiceID,
		Items:             s.items,
		Installments:      s.installments,
		Interval:          s.interval,
		IntervalCount:     s.intervalCount,
	})
}
