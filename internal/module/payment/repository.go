package payment

import (
	"context"
	"errors"
	"fmt"

	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/payment/domain"
	"github.com/storelink/paygate/internal/module/payment/entity"
	"gorm.io/gorm"
)

// ErrCustomerNotFound indicates no customer exists for the given key.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository defines data access for customers. The platform
// code is the unique key.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomerByCode(ctx context.Context, code string) (*domain.Customer, error)
	GetCustomerByGatewayID(ctx context.Context, id kerneldomain.CustomerID) (*domain.Customer, error)
	DeleteCustomerByCode(ctx context.Context, code string) error
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	ent := entity.FromDomainCustomer(customer)
	if err := r.db.WithContext(ctx).Create(ent).Error; err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	customer.SetID(ent.ID)
	return nil
}

func (r *customerRepository) GetCustomerByCode(ctx context.Context, code string) (*domain.Customer, error) {
	var ent entity.CustomerEntity
	err := r.db.WithContext(ctx).First(&ent, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by code: %w", err)
	}
	return ent.ToDomain(), nil
}

func (r *customerRepository) GetCustomerByGatewayID(ctx context.Context, id kerneldomain.CustomerID) (*domain.Customer, error) {
	var ent entity.CustomerEntity
	err := r.db.WithContext(ctx).First(&ent, "gateway_id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by gateway id: %w", err)
	}
	return ent.ToDomain(), nil
}

func (r *customerRepository) DeleteCustomerByCode(ctx context.Context, code string) error {
	err := r.db.WithContext(ctx).Delete(&entity.CustomerEntity{}, "code = ?", code).Error
	if err != nil {
		return fmt.Errorf("delete customer by code: %w", err)
	}
	return nil
}
