package kernel

import (
	"context"
	"errors"

	"github.com/storelink/paygate/internal/module/kernel/domain"
	"go.uber.org/zap"
)

// Handler applies charge and order notifications to the local mirrors
// and keeps the platform order in step.
type Handler struct {
	repo   Repository
	orders *OrderService
	logger *zap.Logger
}

// NewHandler creates a kernel response handler.
func NewHandler(repo Repository, orders *OrderService, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, orders: orders, logger: logger}
}

// HandleCharge persists a gateway-reported charge. A stored charge is
// moved through its transition table first, so an out-of-order
// notification surfaces as a validation error instead of silently
// rewinding state.
func (h *Handler) HandleCharge(ctx context.Context, charge *domain.Charge) error {
	existing, err := h.repo.GetChargeByGatewayID(ctx, charge.GatewayID())
	if err != nil && !errors.Is(err, ErrChargeNotFound) {
		return err
	}
	if existing != nil {
		if err := existing.UpdateStatus(charge.Status()); err != nil {
			return err
		}
	}

	if err := h.repo.SaveCharge(ctx, charge); err != nil {
		return err
	}
	if tx := charge.LastTransaction(); tx != nil {
		if err := h.repo.SaveTransaction(ctx, tx); err != nil {
			return err
		}
	}

	order, err := h.repo.GetOrderByPlatformCode(ctx, charge.Code())
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			h.logger.Debug("charge has no local order",
				zap.String("charge_id", charge.GatewayID().String()),
				zap.String("code", charge.Code()),
			)
			return nil
		}
		return err
	}
	if err := order.SetStatus(orderStatusForCharge(charge.Status())); err != nil {
		return err
	}
	return h.orders.SyncPlatformWith(ctx, order)
}

// HandleOrder persists a gateway-reported order with its charges and
// pushes the resulting state to the platform.
func (h *Handler) HandleOrder(ctx context.Context, order *domain.Order) error {
	for _, charge := range order.Charges() {
		if err := h.repo.SaveCharge(ctx, charge); err != nil {
			return err
		}
		if tx := charge.LastTransaction(); tx != nil {
			if err := h.repo.SaveTransaction(ctx, tx); err != nil {
				return err
			}
		}
	}
	return h.orders.SyncPlatformWith(ctx, order)
}
