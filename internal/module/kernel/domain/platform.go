package domain

import "context"

// CantCreateReason is a human-readable business reason why a platform
// invoice cannot be created for an order. It is a rejection surfaced to
// the operator, not an error.
type CantCreateReason string

// PlatformOrder is the host platform's order record. The platform owns
// it; this module only pushes state and audit history through this port.
type PlatformOrder interface {
	Code() string
	State() OrderState
	SetState(state OrderState)
	AddHistoryComment(comment string)
	Save(ctx context.Context) error
}

// PlatformInvoice is a billing record created on the host platform.
type PlatformInvoice interface {
	GatewayID() InvoiceID
	SetState(state InvoiceState)
	Save(ctx context.Context) error
}

// InvoiceCreator creates platform invoices for completed payments.
type InvoiceCreator interface {
	// CantCreateReason returns a non-empty reason when invoice creation
	// would be refused for the order.
	CantCreateReason(ctx context.Context, order *Order) (CantCreateReason, error)
	// CreateInvoiceFor creates an invoice, or returns nil when the
	// platform refuses.
	CreateInvoiceFor(ctx context.Context, order *Order) (PlatformInvoice, error)
}

// PlatformOrderResolver looks up the platform order backing a local
// order code.
type PlatformOrderResolver interface {
	OrderByCode(ctx context.Context, code string) (PlatformOrder, error)
}
