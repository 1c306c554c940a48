// Package handler holds the response handlers that reconcile gateway
// notifications with the host platform. Handlers run request-scoped and
// synchronous; deliveries are at-least-once, so every step is an upsert
// or a same-state no-op.
package handler

import (
	"context"

	"github.com/storelink/paygate/internal/module/kernel"
	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/payment"
	"github.com/storelink/paygate/internal/module/recurrence"
	"github.com/storelink/paygate/internal/module/recurrence/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
	"github.com/storelink/paygate/internal/shared/i18n"
	"go.uber.org/zap"
)

// Result is the outcome of one handler invocation. It carries either
// completion or a business rejection reason, never both.
type Result struct {
	Completed bool
	Reason    kerneldomain.CantCreateReason
}

type transitionFunc func(ctx context.Context, sub *domain.Subscription, order *kerneldomain.Order) (Result, error)

// SubscriptionHandler applies a subscription notification whose current
// charge carries a gateway-reported status. Step order is fixed: charge
// save, order rebuild, subscription save, customer upsert, status
// dispatch. Later steps read state written by earlier ones.
type SubscriptionHandler struct {
	kernelRepo  kernel.Repository
	repo        recurrence.Repository
	customers   *payment.CustomerService
	orders      *kernel.OrderService
	factory     *kernel.Factory
	invoices    kerneldomain.InvoiceCreator
	localizer   i18n.Localizer
	logger      *zap.Logger
	transitions map[kerneldomain.ChargeStatus]transitionFunc
}

// NewSubscriptionHandler creates a subscription response handler.
func NewSubscriptionHandler(
	kernelRepo kernel.Repository,
	repo recurrence.Repository,
	customers *payment.CustomerService,
	orders *kernel.OrderService,
	factory *kernel.Factory,
	invoices kerneldomain.InvoiceCreator,
	localizer i18n.Localizer,
	logger *zap.Logger,
) *SubscriptionHandler {
	h := &SubscriptionHandler{
		kernelRepo: kernelRepo,
		repo:       repo,
		customers:  customers,
		orders:     orders,
		factory:    factory,
		invoices:   invoices,
		localizer:  localizer,
		logger:     logger,
	}
	h.transitions = map[kerneldomain.ChargeStatus]transitionFunc{
		kerneldomain.ChargeStatusPaid:    h.handlePaid,
		kerneldomain.ChargeStatusPending: h.handlePending,
		kerneldomain.ChargeStatusFailed:  h.handleFailed,
	}
	return h
}

// Handle reconciles one subscription notification. A charge status with
// no registered transition fails with an UnhandledStatus error; the
// dispatch has no catch-all.
func (h *SubscriptionHandler) Handle(ctx context.Context, sub *domain.Subscription) (Result, error) {
	charge := sub.CurrentCharge()
	if charge == nil {
		return Result{}, sherrors.Validation("subscription " + sub.GatewayID().String() + " carries no current charge")
	}

	if err := h.kernelRepo.SaveCharge(ctx, charge); err != nil {
		return Result{}, err
	}
	if tx := charge.LastTransaction(); tx != nil {
		if err := h.kernelRepo.SaveTransaction(ctx, tx); err != nil {
			return Result{}, err
		}
	}

	order, err := h.factory.CreateOrderFromSubscriptionData(kernel.SubscriptionOrderData{
		PlatformOrderCode: h.platformOrderCode(sub),
		CustomerID:        h.customerID(sub),
		Charge:            charge,
	})
	if err != nil {
		return Result{}, err
	}

	if err := h.repo.SaveSubscription(ctx, sub); err != nil {
		return Result{}, err
	}

	if customer := sub.Customer(); customer != nil {
		if err := h.customers.UpsertCustomer(ctx, customer); err != nil {
			return Result{}, err
		}
	}

	transition, ok := h.transitions[charge.Status()]
	if !ok {
		return Result{}, sherrors.UnhandledStatus(charge.Status().String())
	}
	return transition(ctx, sub, order)
}

func (h *SubscriptionHandler) handlePaid(ctx context.Context, sub *domain.Subscription, order *kerneldomain.Order) (Result, error) {
	reason, err := h.invoices.CantCreateReason(ctx, order)
	if err != nil {
		return Result{}, err
	}
	if reason != "" {
		h.logger.Info("invoice creation refused",
			zap.String("order_code", order.PlatformCode()),
			zap.String("reason", string(reason)),
		)
		return Result{Reason: reason}, nil
	}

	invoice, err := h.invoices.CreateInvoiceFor(ctx, order)
	if err != nil {
		return Result{}, err
	}
	if invoice == nil {
		reason := kerneldomain.CantCreateReason(h.localizer.Translate(
			"The platform refused to create an invoice for order %s",
			order.PlatformCode(),
		))
		return Result{Reason: reason}, nil
	}

	invoice.SetState(kerneldomain.InvoiceStatePaid)
	if err := invoice.Save(ctx); err != nil {
		return Result{}, err
	}

	if err := order.SetStatus(kerneldomain.OrderStatusProcessing); err != nil {
		return Result{}, err
	}
	if err := h.orders.SyncPlatformWith(ctx, order, h.localizer.Translate(
		"Invoice %s created and marked as paid",
		invoice.GatewayID().String(),
	)); err != nil {
		return Result{}, err
	}

	h.logger.Info("subscription payment processed",
		zap.String("subscription_id", sub.GatewayID().String()),
		zap.String("order_code", order.PlatformCode()),
	)
	return Result{Completed: true}, nil
}

func (h *SubscriptionHandler) handlePending(ctx context.Context, sub *domain.Subscription, order *kerneldomain.Order) (Result, error) {
	comment := h.localizer.Translate(
		"Waiting for payment of subscription %s",
		sub.GatewayID().String(),
	)
	if err := h.orders.SyncPlatformWith(ctx, order, comment); err != nil {
		return Result{}, err
	}
	return Result{Completed: true}, nil
}

func (h *SubscriptionHandler) handleFailed(ctx context.Context, sub *domain.Subscription, order *kerneldomain.Order) (Result, error) {
	if err := order.SetStatus(kerneldomain.OrderStatusCanceled); err != nil {
		return Result{}, err
	}
	failure := h.localizer.Translate(
		"Payment of subscription %s failed",
		sub.GatewayID().String(),
	)
	cancellation := h.localizer.Translate(
		"Order %s canceled after payment failure",
		order.PlatformCode(),
	)
	if err := h.orders.SyncPlatformWith(ctx, order, failure, cancellation); err != nil {
		return Result{}, err
	}
	return Result{Completed: true}, nil
}

// platformOrderCode resolves the host order the subscription bills. The
// subscription code doubles as the platform order code when no explicit
// link exists.
func (h *SubscriptionHandler) platformOrderCode(sub *domain.Subscription) string {
	if code := sub.PlatformOrderCode(); code != "" {
		return code
	}
	return sub.Code()
}

func (h *SubscriptionHandler) customerID(sub *domain.Subscription) kerneldomain.CustomerID {
	if customer := sub.Customer(); customer != nil && customer.GatewayID() != "" {
		return customer.GatewayID()
	}
	return sub.CurrentCharge().CustomerID()
}
