package recurrence

import "github.com/storelink/paygate/internal/module/kernel"

// Gateway subscription payload schemas. Charge and customer blocks reuse
// the kernel schemas; the structures below add the recurrence surface.

// CycleData is the billing period block of subscription and invoice
// payloads.
type CycleData struct {
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
	BillingAt string `json:"billing_at,omitempty"`
}

// InvoiceData is the invoice payload sent by the gateway.
type InvoiceData struct {
	ID             string     `json:"id"`
	SubscriptionID string     `json:"subscription_id"`
	CustomerID     string     `json:"customer_id,omitempty"`
	ChargeID       string     `json:"charge_id,omitempty"`
	PaymentMethod  string     `json:"payment_method,omitempty"`
	Status         string     `json:"status"`
	Amount         int64      `json:"amount"`
	Installments   bool       `json:"installments,omitempty"`
	DiscountTotal  int64      `json:"total_discount,omitempty"`
	IncrementTotal int64      `json:"total_increment,omitempty"`
	Cycle          *CycleData `json:"cycle,omitempty"`
}

// SubscriptionItemData is one line item block of a subscription payload.
type SubscriptionItemData struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Quantity      int    `json:"quantity,omitempty"`
	Cycles        int    `json:"cycles,omitempty"`
	PricingScheme *struct {
		SchemeType string `json:"scheme_type"`
		Price      int64  `json:"price"`
	} `json:"pricing_scheme,omitempty"`
}

// SubscriptionData is the subscription payload sent by the gateway.
type SubscriptionData struct {
	ID            string                  `json:"id"`
	Code          string                  `json:"code"`
	Status        string                  `json:"status"`
	PlanID        string                  `json:"plan_id,omitempty"`
	Interval      string                  `json:"interval,omitempty"`
	IntervalCount int                     `json:"interval_count,omitempty"`
	Installments  bool                    `json:"installments,omitempty"`
	Customer      *kernel.CustomerData    `json:"customer,omitempty"`
	CurrentCharge *kernel.ChargeData      `json:"current_charge,omitempty"`
	Invoice       *InvoiceData            `json:"invoice,omitempty"`
	CurrentCycle  *CycleData              `json:"current_cycle,omitempty"`
	Items         []*SubscriptionItemData `json:"items,omitempty"`
}
