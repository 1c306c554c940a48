package recurrence

import (
	"fmt"
	"strconv"
	"time"

	"github.com/storelink/paygate/internal/module/kernel"
	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/payment"
	paymentdomain "github.com/storelink/paygate/internal/module/payment/domain"
	"github.com/storelink/paygate/internal/module/recurrence/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// SubProductFactory builds recurring line items from raw field maps,
// either form submissions or persisted rows. Only present, non-empty
// fields are applied; absent fields keep the aggregate's defaults.
type SubProductFactory struct{}

// NewSubProductFactory creates a sub product factory.
func NewSubProductFactory() *SubProductFactory {
	return &SubProductFactory{}
}

// CreateFromPostData populates a SubProduct from a raw field map.
func (f *SubProductFactory) CreateFromPostData(data map[string]any) (*domain.SubProduct, error) {
	product := domain.NewSubProduct(stringField(data, "name"), stringField(data, "description"))

	if raw, ok := data["id"]; ok {
		id, err := coerceUint(raw)
		if err != nil {
			return nil, sherrors.Parse("id", err)
		}
		product.SetID(id)
	}
	if raw, ok := data["product_id"]; ok {
		id, err := coerceUint(raw)
		if err != nil {
			return nil, sherrors.Parse("product_id", err)
		}
		product.SetProductID(id)
	}
	if raw, ok := data["product_recurrence_id"]; ok {
		id, err := coerceUint(raw)
		if err != nil {
			return nil, sherrors.Parse("product_recurrence_id", err)
		}
		product.SetProductRecurrenceID(id)
	}

	if raw, ok := data["price"]; ok {
		price, err := coerceInt64(raw)
		if err != nil {
			return nil, sherrors.Parse("price", err)
		}
		schemeType, err := domain.ParsePricingSchemeType(stringField(data, "price_type"))
		if err != nil {
			return nil, err
		}
		scheme, err := domain.NewPricingScheme(schemeType, price)
		if err != nil {
			return nil, err
		}
		product.SetPricingScheme(scheme)
	}

	if raw, ok := data["quantity"]; ok {
		quantity, err := coerceInt(raw)
		if err != nil {
			return nil, sherrors.Parse("quantity", err)
		}
		if err := product.SetQuantity(quantity); err != nil {
			return nil, err
		}
	}
	if raw, ok := data["cycles"]; ok {
		cycles, err := coerceInt(raw)
		if err != nil {
			return nil, sherrors.Parse("cycles", err)
		}
		if err := product.SetCycles(cycles); err != nil {
			return nil, err
		}
	}

	if value := stringField(data, "created_at"); value != "" {
		if err := product.SetCreatedAt(value); err != nil {
			return nil, err
		}
	}
	if value := stringField(data, "updated_at"); value != "" {
		if err := product.SetUpdatedAt(value); err != nil {
			return nil, err
		}
	}

	if raw, ok := data["increment"].(map[string]any); ok {
		increment, err := f.createIncrement(raw)
		if err != nil {
			return nil, err
		}
		product.SetIncrement(increment)
	}
	if raw, ok := data["selected_repetition"].(map[string]any); ok {
		repetition, err := f.createRepetition(raw)
		if err != nil {
			return nil, err
		}
		product.SetSelectedRepetition(repetition)
	}

	return product, nil
}

// CreateFromDBRow populates a SubProduct from a persisted row. Rows share
// field naming with the form surface, so the mechanics are the same.
func (f *SubProductFactory) CreateFromDBRow(row map[string]any) (*domain.SubProduct, error) {
	return f.CreateFromPostData(row)
}

func (f *SubProductFactory) createIncrement(data map[string]any) (domain.Increment, error) {
	value, err := coerceInt64(data["value"])
	if err != nil {
		return domain.Increment{}, sherrors.Parse("increment.value", err)
	}
	incrementType, err := domain.ParseIncrementType(stringField(data, "increment_type"))
	if err != nil {
		return domain.Increment{}, err
	}
	cycles := 0
	if raw, ok := data["cycles"]; ok {
		if cycles, err = coerceInt(raw); err != nil {
			return domain.Increment{}, sherrors.Parse("increment.cycles", err)
		}
	}
	return domain.NewIncrement(value, incrementType, cycles)
}

func (f *SubProductFactory) createRepetition(data map[string]any) (domain.Repetition, error) {
	id := uint(0)
	if raw, ok := data["id"]; ok {
		var err error
		if id, err = coerceUint(raw); err != nil {
			return domain.Repetition{}, sherrors.Parse("selected_repetition.id", err)
		}
	}
	intervalCount, err := coerceInt(data["interval_count"])
	if err != nil {
		return domain.Repetition{}, sherrors.Parse("selected_repetition.interval_count", err)
	}
	price := int64(0)
	if raw, ok := data["recurrence_price"]; ok {
		if price, err = coerceInt64(raw); err != nil {
			return domain.Repetition{}, sherrors.Parse("selected_repetition.recurrence_price", err)
		}
	}
	return domain.NewRepetition(id, stringField(data, "interval"), intervalCount, price), nil
}

// Factory builds recurrence aggregates from gateway payloads.
type Factory struct {
	kernelFactory *kernel.Factory
}

// NewFactory creates a recurrence factory.
func NewFactory(kernelFactory *kernel.Factory) *Factory {
	return &Factory{kernelFactory: kernelFactory}
}

// CreateSubscriptionFromData builds a Subscription from a gateway
// subscription payload.
func (f *Factory) CreateSubscriptionFromData(data *SubscriptionData) (*domain.Subscription, error) {
	gatewayID, err := kerneldomain.NewSubscriptionID(data.ID)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseSubscriptionStatus(data.Status)
	if err != nil {
		return nil, err
	}

	subscription := domain.NewSubscription(gatewayID, data.Code, status)
	subscription.SetPlatformOrderCode(data.Code)
	subscription.SetPlanID(data.PlanID)
	subscription.SetInstallments(data.Installments)
	subscription.SetInterval(data.Interval, data.IntervalCount)

	if data.Customer != nil {
		customer, err := f.createCustomer(data.Customer)
		if err != nil {
			return nil, err
		}
		subscription.SetCustomer(customer)
	}
	if data.CurrentCharge != nil {
		charge, err := f.kernelFactory.CreateChargeFromData(data.CurrentCharge)
		if err != nil {
			return nil, err
		}
		subscription.SetCurrentCharge(charge)
	}
	if data.Invoice != nil && data.Invoice.ID != "" {
		invoiceID, err := kerneldomain.NewInvoiceID(data.Invoice.ID)
		if err != nil {
			return nil, err
		}
		subscription.SetCurrentInvoiceID(invoiceID)
	}
	for _, item := range data.Items {
		subscription.AddItem(f.createItem(item))
	}

	return subscription, nil
}

// CreateInvoiceFromData builds an Invoice from a gateway invoice
// payload.
func (f *Factory) CreateInvoiceFromData(data *InvoiceData) (*domain.Invoice, error) {
	gatewayID, err := kerneldomain.NewInvoiceID(data.ID)
	if err != nil {
		return nil, err
	}
	subscriptionID, err := kerneldomain.NewSubscriptionID(data.SubscriptionID)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseInvoiceStatus(data.Status)
	if err != nil {
		return nil, err
	}

	invoice, err := domain.NewInvoice(gatewayID, subscriptionID, data.Amount, status)
	if err != nil {
		return nil, err
	}
	if data.CustomerID != "" {
		customerID, err := kerneldomain.NewCustomerID(data.CustomerID)
		if err != nil {
			return nil, err
		}
		invoice.SetCustomerID(customerID)
	}
	if data.ChargeID != "" {
		chargeID, err := kerneldomain.NewChargeID(data.ChargeID)
		if err != nil {
			return nil, err
		}
		invoice.SetChargeID(chargeID)
	}
	invoice.SetPaymentMethod(data.PaymentMethod)
	invoice.SetInstallments(data.Installments)
	invoice.SetDiscountTotal(data.DiscountTotal)
	invoice.SetIncrementTotal(data.IncrementTotal)

	if data.Cycle != nil {
		cycle, err := f.createCycle(data.Cycle)
		if err != nil {
			return nil, err
		}
		invoice.SetCycle(cycle)
	}
	return invoice, nil
}

func (f *Factory) createCustomer(data *kernel.CustomerData) (*paymentdomain.Customer, error) {
	customer, err := payment.CreateCustomerFromPostData(&payment.CustomerPostData{
		Code:     data.Code,
		Name:     data.Name,
		Email:    data.Email,
		Document: data.Document,
	})
	if err != nil {
		return nil, err
	}
	if data.ID != "" {
		gatewayID, err := kerneldomain.NewCustomerID(data.ID)
		if err != nil {
			return nil, err
		}
		customer.SetGatewayID(gatewayID)
	}
	return customer, nil
}

func (f *Factory) createItem(data *SubscriptionItemData) *domain.SubProduct {
	item := domain.NewSubProduct(data.Name, data.Description)
	if data.Quantity > 0 {
		_ = item.SetQuantity(data.Quantity)
	}
	if data.Cycles > 0 {
		_ = item.SetCycles(data.Cycles)
	}
	if data.PricingScheme != nil {
		schemeType, err := domain.ParsePricingSchemeType(data.PricingScheme.SchemeType)
		if err == nil {
			if scheme, err := domain.NewPricingScheme(schemeType, data.PricingScheme.Price); err == nil {
				item.SetPricingScheme(scheme)
			}
		}
	}
	return item
}

func (f *Factory) createCycle(data *CycleData) (domain.Cycle, error) {
	start, err := parseCycleTime(data.StartAt)
	if err != nil {
		return domain.Cycle{}, sherrors.Parse("cycle.start_at", err)
	}
	end, err := parseCycleTime(data.EndAt)
	if err != nil {
		return domain.Cycle{}, sherrors.Parse("cycle.end_at", err)
	}
	billingAt := time.Time{}
	if data.BillingAt != "" {
		if billingAt, err = parseCycleTime(data.BillingAt); err != nil {
			return domain.Cycle{}, sherrors.Parse("cycle.billing_at", err)
		}
	}
	return domain.NewCycle(start, end, billingAt)
}

func parseCycleTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(kerneldomain.DateFormat, value)
}

// --- raw field coercion ---

func stringField(data map[string]any, key string) string {
	if value, ok := data[key].(string); ok {
		return value
	}
	return ""
}

func coerceInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("cannot coerce %T to int", raw)
	}
}

func coerceInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("cannot coerce %T to int64", raw)
	}
}

func coerceUint(raw any) (uint, error) {
	value, err := coerceInt64(raw)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("negative value %d", value)
	}
	return uint(value), nil
}
