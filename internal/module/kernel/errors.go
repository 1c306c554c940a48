package kernel

import "errors"

var (
	// ErrChargeNotFound indicates no charge exists for the given key.
	ErrChargeNotFound = errors.New("charge not found")
	// ErrOrderNotFound indicates no order exists for the given key.
	ErrOrderNotFound = errors.New("order not found")
	// ErrTransactionNotFound indicates no transaction exists for the given key.
	ErrTransactionNotFound = errors.New("transaction not found")
)
