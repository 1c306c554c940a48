package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionRejectsNegativeAmount(t *testing.T) {
	_, err := NewTransaction(
		"tran_AbCdEf12345678",
		"ch_Jr8LmvqT2hbO1z4e",
		TransactionTypeCapture,
		-1,
		TransactionStatusCaptured,
		time.Now(),
	)
	assert.Error(t, err)
}

func TestTransactionAcceptsZeroAmount(t *testing.T) {
	tx, err := NewTransaction(
		"tran_AbCdEf12345678",
		"ch_Jr8LmvqT2hbO1z4e",
		TransactionTypeVoid,
		0,
		TransactionStatusVoided,
		time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tx.Amount())
}

func TestTransactionJSONFormatsCreatedAt(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	tx, err := NewTransaction(
		"tran_AbCdEf12345678",
		"ch_Jr8LmvqT2hbO1z4e",
		TransactionTypeCapture,
		1500,
		TransactionStatusCaptured,
		createdAt,
	)
	require.NoError(t, err)

	encoded, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, "2026-03-14 15:09:26", decoded["createdAt"])
	assert.Equal(t, "captured", decoded["status"])
}

func TestChargeUpdateStatus(t *testing.T) {
	t.Run("valid transition", func(t *testing.T) {
		charge, err := NewCharge("ch_Jr8LmvqT2hbO1z4e", "ORD-100", 5000, ChargeStatusPending)
		require.NoError(t, err)

		require.NoError(t, charge.UpdateStatus(ChargeStatusPaid))
		assert.Equal(t, ChargeStatusPaid, charge.Status())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		charge, err := NewCharge("ch_Jr8LmvqT2hbO1z4e", "ORD-100", 5000, ChargeStatusPaid)
		require.NoError(t, err)

		require.NoError(t, charge.UpdateStatus(ChargeStatusPaid))
		assert.Equal(t, ChargeStatusPaid, charge.Status())
	})

	t.Run("invalid transition fails", func(t *testing.T) {
		charge, err := NewCharge("ch_Jr8LmvqT2hbO1z4e", "ORD-100", 5000, ChargeStatusFailed)
		require.NoError(t, err)

		err = charge.UpdateStatus(ChargeStatusPaid)
		assert.Error(t, err)
		assert.Equal(t, ChargeStatusFailed, charge.Status())
	})
}

func TestNewChargeRejectsNegativeAmount(t *testing.T) {
	_, err := NewCharge("ch_Jr8LmvqT2hbO1z4e", "ORD-100", -100, ChargeStatusPending)
	assert.Error(t, err)
}

func TestOrderSetStatus(t *testing.T) {
	t.Run("pending to paid", func(t *testing.T) {
		order := NewOrder("or_AbCdEf12345678", "ORD-100", OrderStatusPending)
		require.NoError(t, order.SetStatus(OrderStatusPaid))
		assert.Equal(t, OrderStatusPaid, order.Status())
	})

	t.Run("same status absorbs redelivery", func(t *testing.T) {
		order := NewOrder("or_AbCdEf12345678", "ORD-100", OrderStatusProcessing)
		require.NoError(t, order.SetStatus(OrderStatusProcessing))
	})

	t.Run("terminal state refuses transition", func(t *testing.T) {
		order := NewOrder("or_AbCdEf12345678", "ORD-100", OrderStatusCanceled)
		err := order.SetStatus(OrderStatusPending)
		assert.Error(t, err)
		assert.Equal(t, OrderStatusCanceled, order.Status())
	})
}
