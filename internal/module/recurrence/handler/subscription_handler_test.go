package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/storelink/paygate/internal/module/kernel"
	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/payment"
	paymentdomain "github.com/storelink/paygate/internal/module/payment/domain"
	"github.com/storelink/paygate/internal/module/recurrence/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
	"github.com/storelink/paygate/internal/shared/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockKernelRepository struct {
	mock.Mock
}

func (m *MockKernelRepository) SaveCharge(ctx context.Context, charge *kerneldomain.Charge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockKernelRepository) GetChargeByGatewayID(ctx context.Context, id kerneldomain.ChargeID) (*kerneldomain.Charge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kerneldomain.Charge), args.Error(1)
}

func (m *MockKernelRepository) GetChargeByCode(ctx context.Context, code string) (*kerneldomain.Charge, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kerneldomain.Charge), args.Error(1)
}

func (m *MockKernelRepository) SaveOrder(ctx context.Context, order *kerneldomain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockKernelRepository) GetOrderByGatewayID(ctx context.Context, id kerneldomain.OrderID) (*kerneldomain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kerneldomain.Order), args.Error(1)
}

func (m *MockKernelRepository) GetOrderByPlatformCode(ctx context.Context, code string) (*kerneldomain.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kerneldomain.Order), args.Error(1)
}

func (m *MockKernelRepository) SaveTransaction(ctx context.Context, transaction *kerneldomain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockKernelRepository) GetTransactionByGatewayID(ctx context.Context, id kerneldomain.TransactionID) (*kerneldomain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kerneldomain.Transaction), args.Error(1)
}

type MockRecurrenceRepository struct {
	mock.Mock
}

func (m *MockRecurrenceRepository) SaveSubscription(ctx context.Context, subscription *domain.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockRecurrenceRepository) GetSubscriptionByGatewayID(ctx context.Context, id kerneldomain.SubscriptionID) (*domain.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockRecurrenceRepository) GetSubscriptionByCode(ctx context.Context, code string) (*domain.Subscription, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockRecurrenceRepository) SaveInvoice(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockRecurrenceRepository) GetInvoiceByGatewayID(ctx context.Context, id kerneldomain.InvoiceID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockRecurrenceRepository) SaveSubProduct(ctx context.Context, product *domain.SubProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockRecurrenceRepository) GetSubProductByID(ctx context.Context, id uint) (*domain.SubProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubProduct), args.Error(1)
}

func (m *MockRecurrenceRepository) ListSubProductsByProductID(ctx context.Context, productID uint) ([]*domain.SubProduct, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SubProduct), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) CreateCustomer(ctx context.Context, customer *paymentdomain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetCustomerByCode(ctx context.Context, code string) (*paymentdomain.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentdomain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetCustomerByGatewayID(ctx context.Context, id kerneldomain.CustomerID) (*paymentdomain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentdomain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) DeleteCustomerByCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockPlatformOrder struct {
	mock.Mock
}

func (m *MockPlatformOrder) Code() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlatformOrder) State() kerneldomain.OrderState {
	args := m.Called()
	return args.Get(0).(kerneldomain.OrderState)
}

func (m *MockPlatformOrder) SetState(state kerneldomain.OrderState) {
	m.Called(state)
}

func (m *MockPlatformOrder) AddHistoryComment(comment string) {
	m.Called(comment)
}

func (m *MockPlatformOrder) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPlatformOrderResolver struct {
	mock.Mock
}

func (m *MockPlatformOrderResolver) OrderByCode(ctx context.Context, code string) (kerneldomain.PlatformOrder, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(kerneldomain.PlatformOrder), args.Error(1)
}

type MockPlatformInvoice struct {
	mock.Mock
}

func (m *MockPlatformInvoice) GatewayID() kerneldomain.InvoiceID {
	args := m.Called()
	return args.Get(0).(kerneldomain.InvoiceID)
}

func (m *MockPlatformInvoice) SetState(state kerneldomain.InvoiceState) {
	m.Called(state)
}

func (m *MockPlatformInvoice) Save(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockInvoiceCreator struct {
	mock.Mock
}

func (m *MockInvoiceCreator) CantCreateReason(ctx context.Context, order *kerneldomain.Order) (kerneldomain.CantCreateReason, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(kerneldomain.CantCreateReason), args.Error(1)
}

func (m *MockInvoiceCreator) CreateInvoiceFor(ctx context.Context, order *kerneldomain.Order) (kerneldomain.PlatformInvoice, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(kerneldomain.PlatformInvoice), args.Error(1)
}

type handlerFixture struct {
	kernelRepo *MockKernelRepository
	repo       *MockRecurrenceRepository
	customers  *MockCustomerRepository
	resolver   *MockPlatformOrderResolver
	invoices   *MockInvoiceCreator
	handler    *SubscriptionHandler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		kernelRepo: new(MockKernelRepository),
		repo:       new(MockRecurrenceRepository),
		customers:  new(MockCustomerRepository),
		resolver:   new(MockPlatformOrderResolver),
		invoices:   new(MockInvoiceCreator),
	}
	logger := zap.NewNop()
	localizer := i18n.NewTranslator(nil)
	orders := kernel.NewOrderService(f.kernelRepo, f.resolver, localizer, logger, nil)
	f.handler = NewSubscriptionHandler(
		f.kernelRepo,
		f.repo,
		payment.NewCustomerService(f.customers, logger),
		orders,
		kernel.NewFactory(),
		f.invoices,
		localizer,
		logger,
	)
	return f
}

func subscriptionWithCharge(t *testing.T, status kerneldomain.ChargeStatus) *domain.Subscription {
	t.Helper()
	charge, err := kerneldomain.NewCharge("ch_Jr8LmvqT2hbO1z4e", "ORD-200", 2500, status)
	require.NoError(t, err)

	sub := domain.NewSubscription("sub_AbCdEf12345678", "ORD-200", domain.SubscriptionStatusActive)
	sub.SetPlatformOrderCode("ORD-200")
	sub.SetCurrentCharge(charge)
	return sub
}

func TestSubscriptionHandlerPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and pays the platform invoice", func(t *testing.T) {
		f := newHandlerFixture()
		sub := subscriptionWithCharge(t, kerneldomain.ChargeStatusPaid)
		platformOrder := new(MockPlatformOrder)
		platformInvoice := new(MockPlatformInvoice)

		f.kernelRepo.On("SaveCharge", ctx, sub.CurrentCharge()).Return(nil)
		f.repo.On("SaveSubscription", ctx, sub).Return(nil)
		f.invoices.On("CantCreateReason", ctx, mock.Anything).Return(kerneldomain.CantCreateReason(""), nil)
		f.invoices.On("CreateInvoiceFor", ctx, mock.Anything).Return(platformInvoice, nil)
		platformInvoice.On("SetState", kerneldomain.InvoiceStatePaid).Return()
		platformInvoice.On("Save", ctx).Return(nil)
		platformInvoice.On("GatewayID").Return(kerneldomain.InvoiceID("in_AbCdEf12345678"))
		f.kernelRepo.On("SaveOrder", ctx, mock.Anything).Return(nil)
		f.resolver.On("OrderByCode", ctx, "ORD-200").Return(platformOrder, nil)
		platformOrder.On("State").Return(kerneldomain.OrderStatePending)
		platformOrder.On("SetState", kerneldomain.OrderStateProcessing).Return()
		platformOrder.On("AddHistoryComment", "Invoice in_AbCdEf12345678 created and marked as paid").Return()
		platformOrder.On("AddHistoryComment", "Order ORD-200 moved to processing by the payment gateway").Return()
		platformOrder.On("Save", ctx).Return(nil)

		result, err := f.handler.Handle(ctx, sub)
		require.NoError(t, err)
		assert.True(t, result.Completed)
		assert.Empty(t, result.Reason)

		f.kernelRepo.AssertExpectations(t)
		f.repo.AssertExpectations(t)
		f.invoices.AssertExpectations(t)
		platformInvoice.AssertExpectations(t)
		platformOrder.AssertExpectations(t)
	})

	t.Run("refusal reason short-circuits without completing", func(t *testing.T) {
		f := newHandlerFixture()
		sub := subscriptionWithCharge(t, kerneldomain.ChargeStatusPaid)

		f.kernelRepo.On("SaveCharge", ctx, mock.Anything).Return(nil)
		f.repo.On("SaveSubscription", ctx, sub).Return(nil)
		f.invoices.On("CantCreateReason", ctx, mock.Anything).
			Return(kerneldomain.CantCreateReason("order already invoiced"), nil)

		result, err := f.handler.Handle(ctx, sub)
		require.NoError(t, err)
		assert.False(t, result.Completed)
		assert.Equal(t, kerneldomain.CantCreateReason("order already invoiced"), result.Reason)

		f.invoices.AssertNotCalled(t, "CreateInvoiceFor", mock.Anything, mock.Anything)
		f.resolver.AssertNotCalled(t, "OrderByCode", mock.Anything, mock.Anything)
	})

	t.Run("nil invoice from the platform becomes a reason", func(t *testing.T) {
		f := newHandlerFixture()
		sub := subscriptionWithCharge(t, kerneldomain.ChargeStatusPaid)

		f.kernelRepo.On("SaveCharge", ctx, mock.Anything).Return(nil)
		f.repo.On("SaveSubscription", ctx, sub).Return(nil)
		f.invoices.On("CantCreateReason", ctx, mock.Anything).Return(kerneldomain.CantCreateReason(""), nil)
		f.invoices.On("CreateInvoiceFor", ctx, mock.Anything).Return(nil, nil)

		result, err := f.handler.Handle(ctx, sub)
		require.NoError(t, err)
		assert.False(t, result.Completed)
		assert.Equal(t,
			kerneldomain.CantCreateReason("The platform refused to create an invoice for order ORD-200"),
			result.Reason,
		)
	})
}

func TestSubscriptionHandlerPending(t *testing.T) {
	ctx := context.Background()
	f := newHandlerFixture()
	sub := subscriptionWithCharge(t, kerneldomain.ChargeStatusPending)
	platformOrder := new(MockPlatformOrder)

	f.kernelRepo.On("SaveCharge", ctx, mock.Anything).Return(nil)
	f.repo.On("SaveSubscription", ctx, sub).Return(nil)
	f.kernelRepo.On("SaveOrder", ctx, mock.Anything).Return(nil)
	f.resolver.On("OrderByCode", ctx, "ORD-200").Return(platformOrder, nil)
	platformOrder.On("State").Return(kerneldomain.OrderStateNew)
	platformOrder.On("SetState", kerneldomain.OrderStatePending).Return()
	platformOrder.On("AddHistoryComment", "Waiting for payment of subscription sub_AbCdEf12345678").Return()
	platformOrder.On("AddHistoryComment", "Order ORD-200 moved to pending by the payment gateway").Return()
	platformOrder.On("Save", ctx).Return(nil)

	result, err := f.handler.Handle(ctx, sub)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	platformOrder.AssertExpectations(t)
	f.invoices.AssertNotCalled(t, "CreateInvoiceFor", mock.Anything, mock.Anything)
}

func TestSubscriptionHandlerRedelivery(t *testing.T) {
	ctx := context.Background()
	f := newHandlerFixture()
	sub := subscriptionWithCharge(t, kerneldomain.ChargeStatusPending)

	firstOrder := new(MockPlatformOrder)
	secondOrder := new(MockPlatformOrder)

	f.kernelRepo.On("SaveCharge", ctx, sub.CurrentCharge()).Return(nil)
	f.repo.On("SaveSubscription", ctx, sub).Return(nil)
	f.kernelRepo.On("SaveOrder", ctx, mock.Anything).Return(nil)
	f.resolver.On("OrderByCode", ctx, "ORD-200").Return(firstOrder, nil).Once()
	f.resolver.On("OrderByCode", ctx, "ORD-200").Return(secondOrder, nil).Once()

	firstOrder.On("State").Return(kerneldomain.OrderStateNew)
	firstOrder.On("SetState", kerneldomain.OrderStatePending).Return()
	firstOrder.On("AddHistoryComment", mock.Anything).Return()
	firstOrder.On("Save", ctx).Return(nil)

	secondOrder.On("State").Return(kerneldomain.OrderStatePending)

	first, err := f.handler.Handle(ctx, sub)
	require.NoError(t, err)
	second, err := f.handler.Handle(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The replay re-runs every upsert but never pushes a second state
	// change or duplicate history to the platform.
	f.kernelRepo.AssertNumberOfCalls(t, "SaveCharge", 2)
	f.repo.AssertNumberOfCalls(t, "SaveSubscription", 2)
	secondOrder.AssertNotCalled(t, "SetState", mock.Anything)
	secondOrder.AssertNotCalled(t, "AddHistoryComment", mock.Anything)
	secondOrder.AssertNotCalled(t, "Save", mock.Anything)
}

func TestSubscriptionHandlerFailed(t *testing.T) {
	ctx := context.Background()
	f := newHandlerFixture()
	sub := subscriptionWithCharge(t, kerneldomain.ChargeStatusFailed)
	platformOrder := new(MockPlatformOrder)

	f.kernelRepo.On("SaveCharge", ctx, mock.Anything).Return(nil)
	f.repo.On("SaveSubscription", ctx, sub).Return(nil)
	f.kernelRepo.On("SaveOrder", ctx, mock.Anything).Return(nil)
	f.resolver.On("OrderByCode", ctx, "ORD-200").Return(platformOrder, nil)
	platformOrder.On("State").Return(kerneldomain.OrderStatePending)
	platformOrder.On("SetState", kerneldomain.OrderStateCanceled).Return()
	platformOrder.On("AddHistoryComment", "Payment of subscription sub_AbCdEf12345678 failed").Return()
	platformOrder.On("AddHistoryComment", "Order ORD-200 canceled after payment failure").Return()
	platformOrder.On("AddHistoryComment", "Order ORD-200 moved to canceled by the payment gateway").Return()
	platformOrder.On("Save", ctx).Return(nil)

	result, err := f.handler.Handle(ctx, sub)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	platformOrder.AssertExpectations(t)
}

func TestSubscriptionHandlerEdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("missing current charge is a validation error", func(t *testing.T) {
		f := newHandlerFixture()
		sub := domain.NewSubscription("sub_AbCdEf12345678", "ORD-200", domain.SubscriptionStatusActive)

		_, err := f.handler.Handle(ctx, sub)
		require.Error(t, err)
		assert.Equal(t, 422, sherrors.GetStatusCode(err))
		f.kernelRepo.AssertNotCalled(t, "SaveCharge", mock.Anything, mock.Anything)
	})

	t.Run("unmapped charge status fails loudly", func(t *testing.T) {
		f := newHandlerFixture()
		sub := subscriptionWithCharge(t, kerneldomain.ChargeStatusUnderpaid)

		f.kernelRepo.On("SaveCharge", ctx, mock.Anything).Return(nil)
		f.repo.On("SaveSubscription", ctx, sub).Return(nil)

		_, err := f.handler.Handle(ctx, sub)
		require.Error(t, err)
		assert.Equal(t, 500, sherrors.GetStatusCode(err))
	})

	t.Run("subscription customer is upserted before dispatch", func(t *testing.T) {
		f := newHandlerFixture()
		sub := subscriptionWithCharge(t, kerneldomain.ChargeStatusFailed)

		customer, err := paymentdomain.NewCustomer("CUST-1", "Ana Souza", "ana@example.com")
		require.NoError(t, err)
		sub.SetCustomer(customer)

		platformOrder := new(MockPlatformOrder)
		f.kernelRepo.On("SaveCharge", ctx, mock.Anything).Return(nil)
		f.repo.On("SaveSubscription", ctx, sub).Return(nil)
		f.customers.On("GetCustomerByCode", ctx, "CUST-1").Return(nil, payment.ErrCustomerNotFound)
		f.customers.On("CreateCustomer", ctx, customer).Return(nil)
		f.kernelRepo.On("SaveOrder", ctx, mock.Anything).Return(nil)
		f.resolver.On("OrderByCode", ctx, "ORD-200").Return(platformOrder, nil)
		platformOrder.On("State").Return(kerneldomain.OrderStateCanceled)

		_, err = f.handler.Handle(ctx, sub)
		require.NoError(t, err)
		f.customers.AssertExpectations(t)
	})

	t.Run("save failure aborts before dispatch", func(t *testing.T) {
		f := newHandlerFixture()
		sub := subscriptionWithCharge(t, kerneldomain.ChargeStatusPaid)

		f.kernelRepo.On("SaveCharge", ctx, mock.Anything).Return(errors.New("database down"))

		_, err := f.handler.Handle(ctx, sub)
		assert.Error(t, err)
		f.repo.AssertNotCalled(t, "SaveSubscription", mock.Anything, mock.Anything)
	})
}
