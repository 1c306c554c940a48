package handler

import (
	"context"

	"github.com/storelink/paygate/internal/module/recurrence"
	"github.com/storelink/paygate/internal/module/recurrence/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
	"go.uber.org/zap"
)

// InvoiceHandler applies invoice notifications to the local invoice
// mirror.
type InvoiceHandler struct {
	repo   recurrence.Repository
	logger *zap.Logger
}

// NewInvoiceHandler creates an invoice response handler.
func NewInvoiceHandler(repo recurrence.Repository, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{repo: repo, logger: logger}
}

// Handle persists the invoice with the status the action demands. The
// created and updated actions keep the payload's own status.
func (h *InvoiceHandler) Handle(ctx context.Context, invoice *domain.Invoice, action string) error {
	switch action {
	case "paid":
		invoice.SetStatus(domain.InvoiceStatusPaid)
	case "canceled":
		invoice.SetStatus(domain.InvoiceStatusCanceled)
	case "payment_failed":
		invoice.SetStatus(domain.InvoiceStatusFailed)
	case "created", "updated":
		// keep payload status
	default:
		return sherrors.UnhandledStatus("invoice." + action)
	}

	if err := h.repo.SaveInvoice(ctx, invoice); err != nil {
		return err
	}
	h.logger.Info("invoice synchronized",
		zap.String("invoice_id", invoice.GatewayID().String()),
		zap.String("status", invoice.Status().String()),
	)
	return nil
}
