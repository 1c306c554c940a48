package recurrence

import (
	"testing"

	"github.com/storelink/paygate/internal/module/kernel"
	"github.com/storelink/paygate/internal/module/recurrence/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubProductFactoryCreateFromPostData(t *testing.T) {
	factory := NewSubProductFactory()

	t.Run("empty map keeps defaults", func(t *testing.T) {
		product, err := factory.CreateFromPostData(map[string]any{})
		require.NoError(t, err)
		assert.Empty(t, product.Name())
		assert.Equal(t, 1, product.Quantity())
		assert.Equal(t, 0, product.Cycles())
		assert.NotEmpty(t, product.CreatedAt())
	})

	t.Run("full form submission", func(t *testing.T) {
		product, err := factory.CreateFromPostData(map[string]any{
			"id":                    float64(7),
			"product_id":            "42",
			"product_recurrence_id": 9,
			"name":                  "<b>Gold</b> Plan",
			"description":           "Billed monthly.",
			"price":                 "2500",
			"price_type":            "FLAT",
			"quantity":              float64(2),
			"cycles":                12,
			"created_at":            "2026-03-14 15:09:26",
			"increment": map[string]any{
				"value":          float64(500),
				"increment_type": "flat",
				"cycles":         3,
			},
			"selected_repetition": map[string]any{
				"id":               float64(3),
				"interval":         "month",
				"interval_count":   float64(1),
				"recurrence_price": float64(2500),
			},
		})
		require.NoError(t, err)

		assert.Equal(t, uint(7), product.ID())
		assert.Equal(t, uint(42), product.ProductID())
		assert.Equal(t, uint(9), product.ProductRecurrenceID())
		assert.Equal(t, "Gold Plan", product.Name())
		assert.Equal(t, "Billed monthly.", product.Description())
		assert.Equal(t, domain.PricingSchemeFlat, product.PricingScheme().Type())
		assert.Equal(t, int64(2500), product.PricingScheme().Price())
		assert.Equal(t, 2, product.Quantity())
		assert.Equal(t, 12, product.Cycles())
		assert.Equal(t, "2026-03-14 15:09:26", product.CreatedAt())
		assert.Equal(t, int64(500), product.Increment().Value())
		assert.Equal(t, domain.IncrementTypeFlat, product.Increment().Type())
		assert.Equal(t, "month", product.SelectedRepetition().Interval())
		assert.Equal(t, int64(2500), product.SelectedRepetition().RecurrencePrice())
	})

	t.Run("missing price type defaults to unit", func(t *testing.T) {
		product, err := factory.CreateFromPostData(map[string]any{"price": 1000})
		require.NoError(t, err)
		assert.Equal(t, domain.PricingSchemeUnit, product.PricingScheme().Type())
	})

	t.Run("coercion failure names the field", func(t *testing.T) {
		_, err := factory.CreateFromPostData(map[string]any{"quantity": "many"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity")
		assert.Equal(t, 400, sherrors.GetStatusCode(err))
	})

	t.Run("unknown price type is rejected", func(t *testing.T) {
		_, err := factory.CreateFromPostData(map[string]any{
			"price":      1000,
			"price_type": "TIERED",
		})
		assert.Error(t, err)
	})

	t.Run("bad increment type is rejected", func(t *testing.T) {
		_, err := factory.CreateFromPostData(map[string]any{
			"increment": map[string]any{"value": 100, "increment_type": "stepped"},
		})
		assert.Error(t, err)
	})

	t.Run("timestamp must match the storage format", func(t *testing.T) {
		_, err := factory.CreateFromPostData(map[string]any{
			"created_at": "2026-03-14T15:09:26Z",
		})
		assert.Error(t, err)
	})
}

func subscriptionPayload() *SubscriptionData {
	return &SubscriptionData{
		ID:            "sub_AbCdEf12345678",
		Code:          "ORD-200",
		Status:        "active",
		PlanID:        "plan-9",
		Interval:      "month",
		IntervalCount: 1,
		Customer: &kernel.CustomerData{
			ID:    "cus_9WxYzAbCdEfGh123",
			Code:  "CUST-1",
			Name:  "Ana Souza",
			Email: "ana@example.com",
		},
		CurrentCharge: &kernel.ChargeData{
			ID:     "ch_Jr8LmvqT2hbO1z4e",
			Code:   "ORD-200",
			Amount: 2500,
			Status: "paid",
		},
		Invoice: &InvoiceData{ID: "in_AbCdEf12345678"},
		Items: []*SubscriptionItemData{{
			Name:     "Gold Plan",
			Quantity: 1,
		}},
	}
}

func TestCreateSubscriptionFromData(t *testing.T) {
	factory := NewFactory(kernel.NewFactory())

	t.Run("full payload", func(t *testing.T) {
		subscription, err := factory.CreateSubscriptionFromData(subscriptionPayload())
		require.NoError(t, err)

		assert.Equal(t, "sub_AbCdEf12345678", subscription.GatewayID().String())
		assert.Equal(t, "ORD-200", subscription.Code())
		assert.Equal(t, "ORD-200", subscription.PlatformOrderCode())
		assert.Equal(t, domain.SubscriptionStatusActive, subscription.Status())
		require.NotNil(t, subscription.Customer())
		assert.Equal(t, "cus_9WxYzAbCdEfGh123", subscription.Customer().GatewayID().String())
		require.NotNil(t, subscription.CurrentCharge())
		assert.Equal(t, "in_AbCdEf12345678", subscription.CurrentInvoiceID().String())
		assert.Len(t, subscription.Items(), 1)
	})

	t.Run("bad subscription id", func(t *testing.T) {
		data := subscriptionPayload()
		data.ID = "bogus"
		_, err := factory.CreateSubscriptionFromData(data)
		assert.Error(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		data := subscriptionPayload()
		data.Status = "paused"
		_, err := factory.CreateSubscriptionFromData(data)
		assert.Error(t, err)
	})

	t.Run("bad nested charge fails the subscription", func(t *testing.T) {
		data := subscriptionPayload()
		data.CurrentCharge.Status = "settled"
		_, err := factory.CreateSubscriptionFromData(data)
		assert.Error(t, err)
	})
}

func TestCreateInvoiceFromData(t *testing.T) {
	factory := NewFactory(kernel.NewFactory())

	payload := func() *InvoiceData {
		return &InvoiceData{
			ID:             "in_AbCdEf12345678",
			SubscriptionID: "sub_AbCdEf12345678",
			CustomerID:     "cus_9WxYzAbCdEfGh123",
			ChargeID:       "ch_Jr8LmvqT2hbO1z4e",
			PaymentMethod:  "credit_card",
			Status:         "paid",
			Amount:         2500,
			Cycle: &CycleData{
				StartAt:   "2026-03-01T00:00:00Z",
				EndAt:     "2026-03-31T23:59:59Z",
				BillingAt: "2026-03-01T00:00:00Z",
			},
		}
	}

	t.Run("full payload", func(t *testing.T) {
		invoice, err := factory.CreateInvoiceFromData(payload())
		require.NoError(t, err)

		assert.Equal(t, "in_AbCdEf12345678", invoice.GatewayID().String())
		assert.Equal(t, "sub_AbCdEf12345678", invoice.SubscriptionID().String())
		assert.Equal(t, domain.InvoiceStatusPaid, invoice.Status())
		assert.Equal(t, int64(2500), invoice.Amount())
		assert.False(t, invoice.Cycle().IsZero())
	})

	t.Run("cycle parse failure names the field", func(t *testing.T) {
		data := payload()
		data.Cycle.EndAt = "end of month"
		_, err := factory.CreateInvoiceFromData(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle.end_at")
	})

	t.Run("inverted cycle is rejected", func(t *testing.T) {
		data := payload()
		data.Cycle.StartAt, data.Cycle.EndAt = data.Cycle.EndAt, data.Cycle.StartAt
		_, err := factory.CreateInvoiceFromData(data)
		assert.Error(t, err)
	})
}
