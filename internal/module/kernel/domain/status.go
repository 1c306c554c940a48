package domain

import (
	"fmt"

	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// TransactionStatus represents the gateway-reported status of a
// transaction. Statuses are typed strings; equality is tag equality and
// JSON encoding is the bare tag.
type TransactionStatus string

const (
	TransactionStatusCaptured                 TransactionStatus = "captured"
	TransactionStatusPartialCapture           TransactionStatus = "partial_capture"
	TransactionStatusAuthorizedPendingCapture TransactionStatus = "authorized_pending_capture"
	TransactionStatusVoided                   TransactionStatus = "voided"
	TransactionStatusPartialVoid              TransactionStatus = "partial_void"
)

// ParseTransactionStatus validates a raw tag.
func ParseTransactionStatus(tag string) (TransactionStatus, error) {
	switch s := TransactionStatus(tag); s {
	case TransactionStatusCaptured,
		TransactionStatusPartialCapture,
		TransactionStatusAuthorizedPendingCapture,
		TransactionStatusVoided,
		TransactionStatusPartialVoid:
		return s, nil
	}
	return "", sherrors.Validation(fmt.Sprintf("unknown transaction status %q", tag))
}

func (s TransactionStatus) String() string { return string(s) }

// TransactionType represents the kind of financial movement a
// transaction performed against a charge.
type TransactionType string

const (
	TransactionTypeAuthorize      TransactionType = "authorize"
	TransactionTypeCapture        TransactionType = "capture"
	TransactionTypePartialCapture TransactionType = "partial_capture"
	TransactionTypeVoid           TransactionType = "void"
	TransactionTypePartialVoid    TransactionType = "partial_void"
)

// ParseTransactionType validates a raw tag.
func ParseTransactionType(tag string) (TransactionType, error) {
	switch t := TransactionType(tag); t {
	case TransactionTypeAuthorize,
		TransactionTypeCapture,
		TransactionTypePartialCapture,
		TransactionTypeVoid,
		TransactionTypePartialVoid:
		return t, nil
	}
	return "", sherrors.Validation(fmt.Sprintf("unknown transaction type %q", tag))
}

func (t TransactionType) String() string { return string(t) }

// ChargeStatus represents the lifecycle status of a charge as reported
// by the gateway.
type ChargeStatus string

const (
	ChargeStatusPending   ChargeStatus = "pending"
	ChargeStatusPaid      ChargeStatus = "paid"
	ChargeStatusFailed    ChargeStatus = "failed"
	ChargeStatusUnderpaid ChargeStatus = "underpaid"
	ChargeStatusOverpaid  ChargeStatus = "overpaid"
	ChargeStatusCanceled  ChargeStatus = "canceled"
)

// ParseChargeStatus validates a raw tag.
func ParseChargeStatus(tag string) (ChargeStatus, error) {
	switch s := ChargeStatus(tag); s {
	case ChargeStatusPending,
		ChargeStatusPaid,
		ChargeStatusFailed,
		ChargeStatusUnderpaid,
		ChargeStatusOverpaid,
		ChargeStatusCanceled:
		return s, nil
	}
	return "", sherrors.Validation(fmt.Sprintf("unknown charge status %q", tag))
}

func (s ChargeStatus) String() string { return string(s) }

// IsTerminal returns true if the status is a terminal state.
func (s ChargeStatus) IsTerminal() bool {
	return s == ChargeStatusFailed || s == ChargeStatusCanceled
}

// CanTransitionTo returns true if the status can transition to the
// target status.
func (s ChargeStatus) CanTransitionTo(target ChargeStatus) bool {
	if s == target {
		return false
	}
	switch s {
	case ChargeStatusPending:
		return true
	case ChargeStatusPaid, ChargeStatusUnderpaid, ChargeStatusOverpaid:
		return target == ChargeStatusCanceled
	default:
		return false
	}
}

// OrderStatus represents the local order status derived from gateway
// state. Processing and Canceled are terminal; there is no transition
// back out of them.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// ParseOrderStatus validates a raw tag.
func ParseOrderStatus(tag string) (OrderStatus, error) {
	switch s := OrderStatus(tag); s {
	case OrderStatusPending,
		OrderStatusPaid,
		OrderStatusProcessing,
		OrderStatusCanceled:
		return s, nil
	}
	return "", sherrors.Validation(fmt.Sprintf("unknown order status %q", tag))
}

func (s OrderStatus) String() string { return string(s) }

// IsTerminal returns true if the status is a terminal state.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusProcessing || s == OrderStatusCanceled
}

// CanTransitionTo returns true if the status can transition to the
// target status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	return s != target
}

// OrderState represents the host platform's order state.
type OrderState string

const (
	OrderStateNew        OrderState = "new"
	OrderStatePending    OrderState = "pending"
	OrderStateProcessing OrderState = "processing"
	OrderStateComplete   OrderState = "complete"
	OrderStateCanceled   OrderState = "canceled"
)

// ParseOrderState validates a raw tag.
func ParseOrderState(tag string) (OrderState, error) {
	switch s := OrderState(tag); s {
	case OrderStateNew,
		OrderStatePending,
		OrderStateProcessing,
		OrderStateComplete,
		OrderStateCanceled:
		return s, nil
	}
	return "", sherrors.Validation(fmt.Sprintf("unknown order state %q", tag))
}

func (s OrderState) String() string { return string(s) }

// InvoiceState represents the state of a platform invoice.
type InvoiceState string

const (
	InvoiceStateUnpaid   InvoiceState = "unpaid"
	InvoiceStatePaid     InvoiceState = "paid"
	InvoiceStateCanceled InvoiceState = "canceled"
)

// ParseInvoiceState validates a raw tag.
func ParseInvoiceState(tag string) (InvoiceState, error) {
	switch s := InvoiceState(tag); s {
	case InvoiceStateUnpaid, InvoiceStatePaid, InvoiceStateCanceled:
		return s, nil
	}
	return "", sherrors.Validation(fmt.Sprintf("unknown invoice state %q", tag))
}

func (s InvoiceState) String() string { return string(s) }
