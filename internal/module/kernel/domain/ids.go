package domain

import (
	"fmt"
	"regexp"
	"strings"

	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// Gateway identifiers are opaque strings with a resource prefix, e.g.
// "ch_Jr8LmvqT2hbO1z4e". Constructors reject malformed input so an
// invalid id never enters the system.

var idSuffixPattern = regexp.MustCompile(`^[A-Za-z0-9]{8,}$`)

func validateID(kind, prefix, value string) error {
	rest, ok := strings.CutPrefix(value, prefix)
	if !ok || !idSuffixPattern.MatchString(rest) {
		return sherrors.Validation(fmt.Sprintf("malformed %s id %q", kind, value))
	}
	return nil
}

// ChargeID identifies a gateway charge.
type ChargeID string

// NewChargeID validates and wraps a gateway charge id.
func NewChargeID(value string) (ChargeID, error) {
	if err := validateID("charge", "ch_", value); err != nil {
		return "", err
	}
	return ChargeID(value), nil
}

func (id ChargeID) String() string { return string(id) }

// OrderID identifies a gateway order.
type OrderID string

// NewOrderID validates and wraps a gateway order id.
func NewOrderID(value string) (OrderID, error) {
	if err := validateID("order", "or_", value); err != nil {
		return "", err
	}
	return OrderID(value), nil
}

func (id OrderID) String() string { return string(id) }

// TransactionID identifies a gateway transaction.
type TransactionID string

// NewTransactionID validates and wraps a gateway transaction id.
func NewTransactionID(value string) (TransactionID, error) {
	if err := validateID("transaction", "tran_", value); err != nil {
		return "", err
	}
	return TransactionID(value), nil
}

func (id TransactionID) String() string { return string(id) }

// SubscriptionID identifies a gateway subscription.
type SubscriptionID string

// NewSubscriptionID validates and wraps a gateway subscription id.
func NewSubscriptionID(value string) (SubscriptionID, error) {
	if err := validateID("subscription", "sub_", value); err != nil {
		return "", err
	}
	return SubscriptionID(value), nil
}

func (id SubscriptionID) String() string { return string(id) }

// InvoiceID identifies a gateway invoice.
type InvoiceID string

// NewInvoiceID validates and wraps a gateway invoice id.
func NewInvoiceID(value string) (InvoiceID, error) {
	if err := validateID("invoice", "in_", value); err != nil {
		return "", err
	}
	return InvoiceID(value), nil
}

func (id InvoiceID) String() string { return string(id) }

// CustomerID identifies a gateway customer.
type CustomerID string

// NewCustomerID validates and wraps a gateway customer id.
func NewCustomerID(value string) (CustomerID, error) {
	if err := validateID("customer", "cus_", value); err != nil {
		return "", err
	}
	return CustomerID(value), nil
}

func (id CustomerID) String() string { return string(id) }

// PlanItemID identifies a gateway plan item.
type PlanItemID string

// NewPlanItemID validates and wraps a gateway plan item id.
func NewPlanItemID(value string) (PlanItemID, error) {
	if err := validateID("plan item", "pi_", value); err != nil {
		return "", err
	}
	return PlanItemID(value), nil
}

func (id PlanItemID) String() string { return string(id) }

// WebhookID identifies a gateway webhook delivery.
type WebhookID string

// NewWebhookID validates and wraps a gateway webhook id.
func NewWebhookID(value string) (WebhookID, error) {
	if err := validateID("webhook", "hook_", value); err != nil {
		return "", err
	}
	return WebhookID(value), nil
}

func (id WebhookID) String() string { return string(id) }

// CardID identifies a saved card stored at the gateway.
type CardID string

// NewCardID validates and wraps a saved card id.
func NewCardID(value string) (CardID, error) {
	if err := validateID("card", "card_", value); err != nil {
		return "", err
	}
	return CardID(value), nil
}

func (id CardID) String() string { return string(id) }

// CardToken is a one-time tokenized card reference.
type CardToken string

// NewCardToken validates and wraps a one-time card token.
func NewCardToken(value string) (CardToken, error) {
	if err := validateID("card token", "token_", value); err != nil {
		return "", err
	}
	return CardToken(value), nil
}

func (t CardToken) String() string { return string(t) }

// CardIdentifierKind classifies an ambiguous card identifier by shape.
type CardIdentifierKind int

const (
	// CardIdentifierInvalid marks an identifier that is neither a token
	// nor a saved card reference.
	CardIdentifierInvalid CardIdentifierKind = iota
	// CardIdentifierToken marks a one-time card token ("token_...").
	CardIdentifierToken
	// CardIdentifierSavedCard marks a saved card reference ("card_...").
	CardIdentifierSavedCard
)

// ClassifyCardIdentifier decides deterministically whether an identifier
// is a one-time token or a saved card reference. Payment construction
// switches on the result instead of attempting constructors in order.
func ClassifyCardIdentifier(identifier string) CardIdentifierKind {
	switch {
	case validateID("card token", "token_", identifier) == nil:
		return CardIdentifierToken
	case validateID("card", "card_", identifier) == nil:
		return CardIdentifierSavedCard
	default:
		return CardIdentifierInvalid
	}
}
