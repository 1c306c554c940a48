package handler

import (
	"context"
	"testing"

	"github.com/storelink/paygate/internal/module/recurrence/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testInvoice(t *testing.T, status domain.InvoiceStatus) *domain.Invoice {
	t.Helper()
	invoice, err := domain.NewInvoice("in_AbCdEf12345678", "sub_AbCdEf12345678", 2500, status)
	require.NoError(t, err)
	return invoice
}

func TestInvoiceHandler(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		action string
		start  domain.InvoiceStatus
		want   domain.InvoiceStatus
	}{
		{"paid action marks paid", "paid", domain.InvoiceStatusPending, domain.InvoiceStatusPaid},
		{"canceled action marks canceled", "canceled", domain.InvoiceStatusPending, domain.InvoiceStatusCanceled},
		{"payment failure marks failed", "payment_failed", domain.InvoiceStatusPending, domain.InvoiceStatusFailed},
		{"created keeps payload status", "created", domain.InvoiceStatusPending, domain.InvoiceStatusPending},
		{"updated keeps payload status", "updated", domain.InvoiceStatusPaid, domain.InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRecurrenceRepository)
			invoice := testInvoice(t, tt.start)
			repo.On("SaveInvoice", ctx, invoice).Return(nil)

			err := NewInvoiceHandler(repo, zap.NewNop()).Handle(ctx, invoice, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, invoice.Status())
			repo.AssertExpectations(t)
		})
	}

	t.Run("unknown action fails without persisting", func(t *testing.T) {
		repo := new(MockRecurrenceRepository)
		invoice := testInvoice(t, domain.InvoiceStatusPending)

		err := NewInvoiceHandler(repo, zap.NewNop()).Handle(ctx, invoice, "archived")
		require.Error(t, err)
		assert.Equal(t, 500, sherrors.GetStatusCode(err))
		repo.AssertNotCalled(t, "SaveInvoice", mock.Anything, mock.Anything)
	})
}
