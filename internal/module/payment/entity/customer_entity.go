package entity

import (
	"time"

	kernel "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/payment/domain"
)

// CustomerEntity is the GORM entity for Customer.
type CustomerEntity struct {
	ID        uint   `gorm:"primaryKey"`
	GatewayID string `gorm:"index"`
	Code      string `gorm:"uniqueIndex;not null"`
	Name      string
	Email     string
	Document  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name.
func (CustomerEntity) TableName() string {
	return "gateway_customers"
}

// ToDomain converts entity to domain Customer.
func (e *CustomerEntity) ToDomain() *domain.Customer {
	return domain.RestoreCustomer(
		e.ID,
		kernel.CustomerID(e.GatewayID),
		e.Code,
		e.Name,
		e.Email,
		e.Document,
	)
}

// FromDomainCustomer converts domain Customer to entity.
func FromDomainCustomer(c *domain.Customer) *CustomerEntity {
	return &CustomerEntity{
		ID:        c.ID(),
		GatewayID: c.GatewayID().String(),
		Code:      c.Code(),
		Name:      c.Name(),
		Email:     c.Email(),
		Document:  c.Document(),
	}
}
