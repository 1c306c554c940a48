package entity

import (
	"time"

	"github.com/storelink/paygate/internal/module/kernel/domain"
)

// ChargeEntity is the GORM entity for Charge.
type ChargeEntity struct {
	ID             uint   `gorm:"primaryKey"`
	GatewayID      string `gorm:"uniqueIndex;not null"`
	Code           string `gorm:"index"`
	Amount         int64
	PaidAmount     int64
	CanceledAmount int64
	RefundedAmount int64
	Status         string `gorm:"not null;default:pending"`
	PaymentMethod  string
	CustomerID     string `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the database table name.
func (ChargeEntity) TableName() string {
	return "gateway_charges"
}

// ToDomain converts entity to domain Charge.
func (e *ChargeEntity) ToDomain() *domain.Charge {
	return domain.RestoreCharge(
		e.ID,
		domain.ChargeID(e.GatewayID),
		e.Code,
		e.Amount,
		e.PaidAmount,
		e.CanceledAmount,
		e.RefundedAmount,
		domain.ChargeStatus(e.Status),
		e.PaymentMethod,
		domain.CustomerID(e.CustomerID),
	)
}

// FromDomainCharge converts domain Charge to entity.
func FromDomainCharge(c *domain.Charge) *ChargeEntity {
	return &ChargeEntity{
		ID:             c.ID(),
		GatewayID:      c.GatewayID().String(),
		Code:           c.Code(),
		Amount:         c.Amount(),
		PaidAmount:     c.PaidAmount(),
		CanceledAmount: c.CanceledAmount(),
		RefundedAmount: c.RefundedAmount(),
		Status:         c.Status().String(),
		PaymentMethod:  c.PaymentMethod(),
		CustomerID:     c.CustomerID().String(),
	}
}

// OrderEntity is the GORM entity for the local order mirror. Orders born
// from subscription notifications have no gateway order id, so the
// platform code is the unique key.
type OrderEntity struct {
	ID           uint   `gorm:"primaryKey"`
	GatewayID    string `gorm:"index"`
	PlatformCode string `gorm:"uniqueIndex;not null"`
	CustomerID   string `gorm:"index"`
	Status       string `gorm:"not null;default:pending"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the database table name.
func (OrderEntity) TableName() string {
	return "gateway_orders"
}

// ToDomain converts entity to domain Order.
func (e *OrderEntity) ToDomain() *domain.Order {
	return domain.RestoreOrder(
		e.ID,
		domain.OrderID(e.GatewayID),
		e.PlatformCode,
		domain.CustomerID(e.CustomerID),
		domain.OrderStatus(e.Status),
	)
}

// FromDomainOrder converts domain Order to entity.
func FromDomainOrder(o *domain.Order) *OrderEntity {
	return &OrderEntity{
		ID:           o.ID(),
		GatewayID:    o.GatewayID().String(),
		PlatformCode: o.PlatformCode(),
		CustomerID:   o.CustomerID().String(),
		Status:       o.Status().String(),
	}
}

// TransactionEntity is the GORM entity for Transaction.
type TransactionEntity struct {
	ID        uint   `gorm:"primaryKey"`
	GatewayID string `gorm:"uniqueIndex;not null"`
	ChargeID  string `gorm:"index;not null"`
	Type      string `gorm:"not null"`
	Amount    int64
	Status    string `gorm:"not null"`
	CreatedAt time.Time
}

// TableName returns the database table name.
func (TransactionEntity) TableName() string {
	return "gateway_transactions"
}

// ToDomain converts entity to domain Transaction.
func (e *TransactionEntity) ToDomain() *domain.Transaction {
	return domain.RestoreTransaction(
		e.ID,
		domain.TransactionID(e.GatewayID),
		domain.ChargeID(e.ChargeID),
		domain.TransactionType(e.Type),
		e.Amount,
		domain.TransactionStatus(e.Status),
		e.CreatedAt,
	)
}

// FromDomainTransaction converts domain Transaction to entity.
func FromDomainTransaction(t *domain.Transaction) *TransactionEntity {
	return &TransactionEntity{
		ID:        t.ID(),
		GatewayID: t.GatewayID().String(),
		ChargeID:  t.ChargeID().String(),
		Type:      t.Type().String(),
		Amount:    t.Amount(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt(),
	}
}
