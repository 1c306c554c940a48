package entity

import (
	"time"

	kernel "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/recurrence/domain"
)

// SubscriptionEntity is the GORM entity for Subscription.
type SubscriptionEntity struct {
	ID                uint   `gorm:"primaryKey"`
	GatewayID         string `gorm:"uniqueIndex;not null"`
	Code              string `gorm:"index;not null"`
	PlatformOrderCode string `gorm:"index"`
	Status            string `gorm:"not null"`
	PlanID            string
	Installments      bool
	Interval          string
	IntervalCount     int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the database table name.
func (SubscriptionEntity) TableName() string {
	return "gateway_subscriptions"
}

// ToDomain converts entity to domain Subscription.
func (e *SubscriptionEntity) ToDomain() *domain.Subscription {
	return domain.RestoreSubscription(
		e.ID,
		kernel.SubscriptionID(e.GatewayID),
		e.Code,
		e.PlatformOrderCode,
		domain.SubscriptionStatus(e.Status),
		e.PlanID,
		e.Installments,
		e.Interval,
		e.IntervalCount,
	)
}

// FromDomainSubscription converts domain Subscription to entity.
func FromDomainSubscription(s *domain.Subscription) *SubscriptionEntity {
	return &SubscriptionEntity{
		ID:                s.ID(),
		GatewayID:         s.GatewayID().String(),
		Code:              s.Code(),
		PlatformOrderCode: s.PlatformOrderCode(),
		Status:            s.Status().String(),
		PlanID:            s.PlanID(),
		Installments:      s.Installments(),
		Interval:          s.Interval(),
		IntervalCount:     s.IntervalCount(),
	}
}

// InvoiceEntity is the GORM entity for Invoice.
type InvoiceEntity struct {
	ID             uint   `gorm:"primaryKey"`
	GatewayID      string `gorm:"uniqueIndex;not null"`
	SubscriptionID string `gorm:"index;not null"`
	CustomerID     string `gorm:"index"`
	ChargeID       string `gorm:"index"`
	PaymentMethod  string
	Status         string `gorm:"not null"`
	Amount         int64
	Installments   bool
	DiscountTotal  int64
	IncrementTotal int64
	CycleStart     *time.Time
	CycleEnd       *time.Time
	CycleBillingAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the database table name.
func (InvoiceEntity) TableName() string {
	return "gateway_invoices"
}

// ToDomain converts entity to domain Invoice.
func (e *InvoiceEntity) ToDomain() *domain.Invoice {
	var cycle domain.Cycle
	if e.CycleStart != nil && e.CycleEnd != nil {
		billingAt := time.Time{}
		if e.CycleBillingAt != nil {
			billingAt = *e.CycleBillingAt
		}
		cycle, _ = domain.NewCycle(*e.CycleStart, *e.CycleEnd, billingAt)
	}
	return domain.RestoreInvoice(
		e.ID,
		kernel.InvoiceID(e.GatewayID),
		kernel.SubscriptionID(e.SubscriptionID),
		kernel.CustomerID(e.CustomerID),
		kernel.ChargeID(e.ChargeID),
		e.PaymentMethod,
		domain.InvoiceStatus(e.Status),
		e.Amount,
		e.Installments,
		e.DiscountTotal,
		e.IncrementTotal,
		cycle,
	)
}

// FromDomainInvoice converts domain Invoice to entity.
func FromDomainInvoice(i *domain.Invoice) *InvoiceEntity {
	ent := &InvoiceEntity{
		ID:             i.ID(),
		GatewayID:      i.GatewayID().String(),
		SubscriptionID: i.SubscriptionID().String(),
		CustomerID:     i.CustomerID().String(),
		ChargeID:       i.ChargeID().String(),
		PaymentMethod:  i.PaymentMethod(),
		Status:         i.Status().String(),
		Amount:         i.Amount(),
		Installments:   i.Installments(),
		DiscountTotal:  i.DiscountTotal(),
		IncrementTotal: i.IncrementTotal(),
	}
	if cycle := i.Cycle(); !cycle.IsZero() {
		start, end := cycle.Start(), cycle.End()
		ent.CycleStart = &start
		ent.CycleEnd = &end
		if billingAt := cycle.BillingAt(); !billingAt.IsZero() {
			ent.CycleBillingAt = &billingAt
		}
	}
	return ent
}

// SubProductEntity is the GORM entity for SubProduct. Timestamps are
// stored as formatted strings, matching the aggregate's serialization
// boundary.
type SubProductEntity struct {
	ID                  uint `gorm:"primaryKey"`
	ProductID           uint `gorm:"index"`
	ProductRecurrenceID uint `gorm:"index"`
	Name                string
	Description         string
	PriceType           string
	Price               int64
	Quantity            int
	Cycles              int
	CreatedAt           string
	UpdatedAt           string
}

// TableName returns the database table name.
func (SubProductEntity) TableName() string {
	return "recurrence_sub_products"
}

// ToDomain converts entity to domain SubProduct.
func (e *SubProductEntity) ToDomain() (*domain.SubProduct, error) {
	product := domain.NewSubProduct(e.Name, e.Description)
	product.SetID(e.ID)
	product.SetProductID(e.ProductID)
	product.SetProductRecurrenceID(e.ProductRecurrenceID)
	schemeType, err := domain.ParsePricingSchemeType(e.PriceType)
	if err != nil {
		return nil, err
	}
	scheme, err := domain.NewPricingScheme(schemeType, e.Price)
	if err != nil {
		return nil, err
	}
	product.SetPricingScheme(scheme)
	if e.Quantity > 0 {
		if err := product.SetQuantity(e.Quantity); err != nil {
			return nil, err
		}
	}
	if e.Cycles > 0 {
		if err := product.SetCycles(e.Cycles); err != nil {
			return nil, err
		}
	}
	if e.CreatedAt != "" {
		if err := product.SetCreatedAt(e.CreatedAt); err != nil {
			return nil, err
		}
	}
	if e.UpdatedAt != "" {
		if err := product.SetUpdatedAt(e.UpdatedAt); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// FromDomainSubProduct converts domain SubProduct to entity.
func FromDomainSubProduct(p *domain.SubProduct) *SubProductEntity {
	return &SubProductEntity{
		ID:                  p.ID(),
		ProductID:           p.ProductID(),
		ProductRecurrenceID: p.ProductRecurrenceID(),
		Name:                p.Name(),
		Description:         p.Description(),
		PriceType:           p.PricingScheme().Type().String(),
		Price:               p.PricingScheme().Price(),
		Quantity:            p.Quantity(),
		Cycles:              p.Cycles(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}
