package domain

import (
	"fmt"

	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// SubscriptionStatus represents the gateway-reported status of a
// subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusFuture   SubscriptionStatus = "future"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
)

// ParseSubscriptionStatus validates a raw tag.
func ParseSubscriptionStatus(tag string) (SubscriptionStatus, error) {
	switch s := SubscriptionStatus(tag); s {
	case SubscriptionStatusActive,
		SubscriptionStatusCanceled,
		SubscriptionStatusFuture,
		SubscriptionStatusExpired:
		return s, nil
	}
	return "", sherrors.Validation(fmt.Sprintf("unknown subscription status %q", tag))
}

func (s SubscriptionStatus) String() string { return string(s) }

// InvoiceStatus represents the gateway-reported status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusCanceled InvoiceStatus = "canceled"
	InvoiceStatusFailed   InvoiceStatus = "failed"
)

// ParseInvoiceStatus validates a raw tag.
func ParseInvoiceStatus(tag string) (InvoiceStatus, error) {
	switch s := InvoiceStatus(tag); s {
	case InvoiceStatusPending,
		InvoiceStatusPaid,
		InvoiceStatusCanceled,
		InvoiceStatusFailed:
		return s, nil
	}
	return "", sherrors.Validation(fmt.Sprintf("unknown invoice status %q", tag))
}

func (s InvoiceStatus) String() string { return string(s) }

// PricingSchemeType selects how a recurring line item is priced.
type PricingSchemeType string

const (
	// PricingSchemeUnit bills price times quantity.
	PricingSchemeUnit PricingSchemeType = "UNIT"
	// PricingSchemeFlat bills a fixed price regardless of quantity.
	PricingSchemeFlat PricingSchemeType = "FLAT"
)

// ParsePricingSchemeType validates a raw selector. The empty selector
// falls back to UNIT.
func ParsePricingSchemeType(tag string) (PricingSchemeType, error) {
	if tag == "" {
		return PricingSchemeUnit, nil
	}
	switch t := PricingSchemeType(tag); t {
	case PricingSchemeUnit, PricingSchemeFlat:
		return t, nil
	}
	return "", sherrors.Parse("price_type", fmt.Errorf("unknown pricing scheme %q", tag))
}

func (t PricingSchemeType) String() string { return string(t) }

// IncrementType selects how an increment adjusts the recurring price.
type IncrementType string

const (
	IncrementTypeFlat       IncrementType = "flat"
	IncrementTypePercentage IncrementType = "percentage"
)

// ParseIncrementType validates a raw tag.
func ParseIncrementType(tag string) (IncrementType, error) {
	switch t := IncrementType(tag); t {
	case IncrementTypeFlat, IncrementTypePercentage:
		return t, nil
	}
	return "", sherrors.Parse("increment_type", fmt.Errorf("unknown increment type %q", tag))
}

func (t IncrementType) String() string { return string(t) }
