package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionStatus(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{"captured", "captured", false},
		{"partial capture", "partial_capture", false},
		{"authorized pending capture", "authorized_pending_capture", false},
		{"voided", "voided", false},
		{"partial void", "partial_void", false},
		{"unknown tag", "settled", true},
		{"empty tag", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := ParseTransactionStatus(tt.tag)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.tag, status.String())
		})
	}
}

func TestStatusJSONIsBareTag(t *testing.T) {
	encoded, err := json.Marshal(TransactionStatusCaptured)
	require.NoError(t, err)
	assert.Equal(t, `"captured"`, string(encoded))

	encoded, err = json.Marshal(ChargeStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, `"paid"`, string(encoded))
}

func TestChargeStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from ChargeStatus
		to   ChargeStatus
		want bool
	}{
		{"pending to paid", ChargeStatusPending, ChargeStatusPaid, true},
		{"pending to failed", ChargeStatusPending, ChargeStatusFailed, true},
		{"pending to underpaid", ChargeStatusPending, ChargeStatusUnderpaid, true},
		{"paid to canceled", ChargeStatusPaid, ChargeStatusCanceled, true},
		{"paid to pending", ChargeStatusPaid, ChargeStatusPending, false},
		{"underpaid to canceled", ChargeStatusUnderpaid, ChargeStatusCanceled, true},
		{"overpaid to canceled", ChargeStatusOverpaid, ChargeStatusCanceled, true},
		{"failed is terminal", ChargeStatusFailed, ChargeStatusPending, false},
		{"canceled is terminal", ChargeStatusCanceled, ChargeStatusPaid, false},
		{"same status is not a transition", ChargeStatusPaid, ChargeStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestChargeStatusIsTerminal(t *testing.T) {
	assert.True(t, ChargeStatusFailed.IsTerminal())
	assert.True(t, ChargeStatusCanceled.IsTerminal())
	assert.False(t, ChargeStatusPending.IsTerminal())
	assert.False(t, ChargeStatusPaid.IsTerminal())
}

func TestOrderStatusTerminalStates(t *testing.T) {
	assert.True(t, OrderStatusProcessing.IsTerminal())
	assert.True(t, OrderStatusCanceled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusPaid.IsTerminal())

	// No transition leaves a terminal state.
	for _, target := range []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusProcessing} {
		assert.False(t, OrderStatusCanceled.CanTransitionTo(target))
	}
	for _, target := range []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusCanceled} {
		assert.False(t, OrderStatusProcessing.CanTransitionTo(target))
	}

	assert.True(t, OrderStatusPaid.CanTransitionTo(OrderStatusProcessing))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCanceled))
}

func TestParseOrderState(t *testing.T) {
	state, err := ParseOrderState("processing")
	require.NoError(t, err)
	assert.Equal(t, OrderStateProcessing, state)

	_, err = ParseOrderState("shipped")
	assert.Error(t, err)
}
