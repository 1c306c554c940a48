package payment

import (
	"context"
	"errors"
	"testing"

	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/payment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetCustomerByCode(ctx context.Context, code string) (*domain.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetCustomerByGatewayID(ctx context.Context, id kerneldomain.CustomerID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) DeleteCustomerByCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func testCustomer(t *testing.T, gatewayID kerneldomain.CustomerID) *domain.Customer {
	t.Helper()
	customer, err := domain.NewCustomer("CUST-1", "Ana Souza", "ana@example.com")
	require.NoError(t, err)
	if gatewayID != "" {
		customer.SetGatewayID(gatewayID)
	}
	return customer
}

func TestUpsertCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("known gateway id leaves the row untouched", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		customer := testCustomer(t, "cus_9WxYzAbCdEfGh123")

		repo.On("GetCustomerByGatewayID", ctx, customer.GatewayID()).Return(customer, nil)

		err := NewCustomerService(repo, zap.NewNop()).UpsertCustomer(ctx, customer)
		require.NoError(t, err)

		repo.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "DeleteCustomerByCode", mock.Anything, mock.Anything)
	})

	t.Run("code collision forces delete and recreate", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		customer := testCustomer(t, "cus_9WxYzAbCdEfGh123")
		previous := testCustomer(t, "cus_3RtUvWxYzAbCd456")

		repo.On("GetCustomerByGatewayID", ctx, customer.GatewayID()).Return(nil, ErrCustomerNotFound)
		repo.On("GetCustomerByCode", ctx, "CUST-1").Return(previous, nil)
		repo.On("DeleteCustomerByCode", ctx, "CUST-1").Return(nil)
		repo.On("CreateCustomer", ctx, customer).Return(nil)

		err := NewCustomerService(repo, zap.NewNop()).UpsertCustomer(ctx, customer)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown customer is created", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		customer := testCustomer(t, "")

		repo.On("GetCustomerByCode", ctx, "CUST-1").Return(nil, ErrCustomerNotFound)
		repo.On("CreateCustomer", ctx, customer).Return(nil)

		err := NewCustomerService(repo, zap.NewNop()).UpsertCustomer(ctx, customer)
		require.NoError(t, err)

		repo.AssertNotCalled(t, "GetCustomerByGatewayID", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		customer := testCustomer(t, "")

		repo.On("GetCustomerByCode", ctx, "CUST-1").Return(nil, errors.New("database down"))

		err := NewCustomerService(repo, zap.NewNop()).UpsertCustomer(ctx, customer)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})
}
