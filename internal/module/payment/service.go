package payment

import (
	"context"
	"errors"

	"github.com/storelink/paygate/internal/module/payment/domain"
	"go.uber.org/zap"
)

// CustomerService keeps the customer mirror deduplicated by platform
// code.
type CustomerService struct {
	repo   CustomerRepository
	logger *zap.Logger
}

// NewCustomerService creates a customer service.
func NewCustomerService(repo CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

// UpsertCustomer saves the customer, replacing any existing row with the
// same platform code. A row already stored under the incoming gateway id
// is left untouched; the code is not a stable key across gateway ids, so
// a code collision forces delete and recreate.
func (s *CustomerService) UpsertCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.GatewayID() != "" {
		byGatewayID, err := s.repo.GetCustomerByGatewayID(ctx, customer.GatewayID())
		if err != nil && !errors.Is(err, ErrCustomerNotFound) {
			return err
		}
		if byGatewayID != nil {
			return nil
		}
	}

	existing, err := s.repo.GetCustomerByCode(ctx, customer.Code())
	if err != nil && !errors.Is(err, ErrCustomerNotFound) {
		return err
	}
	if existing != nil {
		if err := s.repo.DeleteCustomerByCode(ctx, customer.Code()); err != nil {
			return err
		}
		s.logger.Debug("customer replaced",
			zap.String("code", customer.Code()),
			zap.String("previous_gateway_id", existing.GatewayID().String()),
		)
	}
	return s.repo.CreateCustomer(ctx, customer)
}
