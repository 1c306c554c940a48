package domain

import (
	"encoding/json"
	"time"

	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// DateFormat is the serialization format for aggregate timestamps. The
// formatted string, not the raw time, crosses the persistence and JSON
// boundary.
const DateFormat = "2006-01-02 15:04:05"

// Transaction represents one gateway-side financial movement against a
// charge. The charge is referenced by id only; a transaction does not
// own its charge.
type Transaction struct {
	id              uint
	gatewayID       TransactionID
	chargeID        ChargeID
	transactionType TransactionType
	amount          int64
	status          TransactionStatus
	createdAt       time.Time
}

// NewTransaction creates a transaction for a gateway-reported movement.
func NewTransaction(
	gatewayID TransactionID,
	chargeID ChargeID,
	transactionType TransactionType,
	amount int64,
	status TransactionStatus,
	createdAt time.Time,
) (*Transaction, error) {
	t := &Transaction{
		gatewayID:       gatewayID,
		chargeID:        chargeID,
		transactionType: transactionType,
		status:          status,
		createdAt:       createdAt,
	}
	if err := t.SetAmount(amount); err != nil {
		return nil, err
	}
	return t, nil
}

// RestoreTransaction recreates a Transaction from persisted data. The
// row was validated on the way in, so no re-validation happens here.
func RestoreTransaction(
	id uint,
	gatewayID TransactionID,
	chargeID ChargeID,
	transactionType TransactionType,
	amount int64,
	status TransactionStatus,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:              id,
		gatewayID:       gatewayID,
		chargeID:        chargeID,
		transactionType: transactionType,
		amount:          amount,
		status:          status,
		createdAt:       createdAt,
	}
}

func (t *Transaction) ID() uint                  { return t.id }
func (t *Transaction) GatewayID() TransactionID  { return t.gatewayID }
func (t *Transaction) ChargeID() ChargeID        { return t.chargeID }
func (t *Transaction) Type() TransactionType     { return t.transactionType }
func (t *Transaction) Amount() int64             { return t.amount }
func (t *Transaction) Status() TransactionStatus { return t.status }
func (t *Transaction) CreatedAt() time.Time      { return t.createdAt }

// SetID assigns the local identity after persistence.
func (t *Transaction) SetID(id uint) { t.id = id }

// SetAmount sets the amount in minor currency units. Negative amounts
// never enter the aggregate.
func (t *Transaction) SetAmount(amount int64) error {
	if amount < 0 {
		return sherrors.Validation("amount should be greater than or equal to 0")
	}
	t.amount = amount
	return nil
}

// SetStatus updates the gateway-reported status. Status is the only
// mutable field after construction.
func (t *Transaction) SetStatus(status TransactionStatus) {
	t.status = status
}

// MarshalJSON projects the transaction for logging and API responses.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        uint              `json:"id"`
		GatewayID TransactionID     `json:"gatewayId"`
		ChargeID  ChargeID          `json:"chargeId"`
		Type      TransactionType   `json:"type"`
		Amount    int64             `json:"amount"`
		Status    TransactionStatus `json:"status"`
		CreatedAt string            `json:"createdAt"`
	}{
		ID:        t.id,
		GatewayID: t.gatewayID,
		ChargeID:  t.chargeID,
		Type:      t.transactionType,
		Amount:    t.amount,
		Status:    t.status,
		CreatedAt: t.createdAt.Format(DateFormat),
	})
}
