package kernel

import (
	"time"

	"github.com/storelink/paygate/internal/module/kernel/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// Factory builds payment aggregates from gateway payload data. All id
// and status tags are validated on the way in; an aggregate returned by
// the factory is always well formed.
type Factory struct{}

// NewFactory creates a kernel aggregate factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateChargeFromData builds a Charge from a gateway charge payload.
func (f *Factory) CreateChargeFromData(data *ChargeData) (*domain.Charge, error) {
	gatewayID, err := domain.NewChargeID(data.ID)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseChargeStatus(data.Status)
	if err != nil {
		return nil, err
	}
	charge, err := domain.NewCharge(gatewayID, data.Code, data.Amount, status)
	if err != nil {
		return nil, err
	}
	if err := charge.SetPaidAmount(data.PaidAmount); err != nil {
		return nil, err
	}
	if err := charge.SetCanceledAmount(data.CanceledAmount); err != nil {
		return nil, err
	}
	if err := charge.SetRefundedAmount(data.RefundedAmount); err != nil {
		return nil, err
	}
	charge.SetPaymentMethod(data.PaymentMethod)
	if data.Customer != nil && data.Customer.ID != "" {
		customerID, err := domain.NewCustomerID(data.Customer.ID)
		if err != nil {
			return nil, err
		}
		charge.SetCustomerID(customerID)
	}
	if data.LastTransaction != nil {
		transaction, err := f.CreateTransactionFromData(gatewayID, data.LastTransaction)
		if err != nil {
			return nil, err
		}
		charge.AddTransaction(transaction)
	}
	return charge, nil
}

// CreateTransactionFromData builds a Transaction from a gateway
// transaction payload.
func (f *Factory) CreateTransactionFromData(chargeID domain.ChargeID, data *TransactionData) (*domain.Transaction, error) {
	gatewayID, err := domain.NewTransactionID(data.ID)
	if err != nil {
		return nil, err
	}
	transactionType, err := domain.ParseTransactionType(data.Type)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseTransactionStatus(data.Status)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseGatewayTime(data.CreatedAt)
	if err != nil {
		return nil, sherrors.Parse("created_at", err)
	}
	return domain.NewTransaction(gatewayID, chargeID, transactionType, data.Amount, status, createdAt)
}

// CreateOrderFromData builds an Order from a gateway order payload.
func (f *Factory) CreateOrderFromData(data *OrderData) (*domain.Order, error) {
	gatewayID, err := domain.NewOrderID(data.ID)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseOrderStatus(data.Status)
	if err != nil {
		return nil, err
	}
	order := domain.NewOrder(gatewayID, data.Code, status)
	if data.Customer != nil && data.Customer.ID != "" {
		customerID, err := domain.NewCustomerID(data.Customer.ID)
		if err != nil {
			return nil, err
		}
		order.SetCustomerID(customerID)
	}
	for _, chargeData := range data.Charges {
		charge, err := f.CreateChargeFromData(chargeData)
		if err != nil {
			return nil, err
		}
		order.AddCharge(charge)
	}
	return order, nil
}

// SubscriptionOrderData carries the pieces of a subscription
// notification needed to rebuild the backing order. Subscription
// payloads carry no gateway order id, so the platform code is the
// order's handle.
type SubscriptionOrderData struct {
	PlatformOrderCode string
	CustomerID        domain.CustomerID
	Charge            *domain.Charge
}

// CreateOrderFromSubscriptionData builds the local order mirror for a
// subscription cycle. The order status follows the cycle's charge.
func (f *Factory) CreateOrderFromSubscriptionData(data SubscriptionOrderData) (*domain.Order, error) {
	if data.PlatformOrderCode == "" {
		return nil, sherrors.Validation("subscription order requires a platform order code")
	}
	if data.Charge == nil {
		return nil, sherrors.Validation("subscription order requires a charge")
	}
	order := domain.NewOrder("", data.PlatformOrderCode, orderStatusForCharge(data.Charge.Status()))
	order.SetCustomerID(data.CustomerID)
	order.AddCharge(data.Charge)
	return order, nil
}

// orderStatusForCharge maps a charge status onto the order it pays.
func orderStatusForCharge(status domain.ChargeStatus) domain.OrderStatus {
	switch status {
	case domain.ChargeStatusPaid:
		return domain.OrderStatusPaid
	case domain.ChargeStatusFailed, domain.ChargeStatusCanceled:
		return domain.OrderStatusCanceled
	default:
		return domain.OrderStatusPending
	}
}

// parseGatewayTime accepts the gateway's RFC 3339 timestamps and the
// formatted-string form used in persisted rows.
func parseGatewayTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(domain.DateFormat, value)
}
