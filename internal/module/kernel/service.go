package kernel

import (
	"context"
	"fmt"

	"github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/shared/i18n"
	"github.com/storelink/paygate/internal/utils/metrics"
	"go.uber.org/zap"
)

// OrderService pushes gateway-derived order state to the host platform
// and keeps the local mirror persisted.
type OrderService struct {
	repo      Repository
	resolver  domain.PlatformOrderResolver
	localizer i18n.Localizer
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewOrderService creates an order service.
func NewOrderService(
	repo Repository,
	resolver domain.PlatformOrderResolver,
	localizer i18n.Localizer,
	logger *zap.Logger,
	m *metrics.Metrics,
) *OrderService {
	return &OrderService{
		repo:      repo,
		resolver:  resolver,
		localizer: localizer,
		logger:    logger,
		metrics:   m,
	}
}

// SyncPlatformWith persists the local order mirror and pushes its status
// to the backing platform order, appending the given audit comments. An
// already-synchronized platform order is left untouched so redelivered
// notifications do not duplicate history.
func (s *OrderService) SyncPlatformWith(ctx context.Context, order *domain.Order, comments ...string) error {
	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return err
	}

	platformOrder, err := s.resolver.OrderByCode(ctx, order.PlatformCode())
	if err != nil {
		return fmt.Errorf("resolve platform order %s: %w", order.PlatformCode(), err)
	}

	state := StateForOrderStatus(order.Status())
	if platformOrder.State() == state {
		s.logger.Debug("platform order already in target state",
			zap.String("order_code", order.PlatformCode()),
			zap.String("state", state.String()),
		)
		return nil
	}

	platformOrder.SetState(state)
	for _, comment := range comments {
		platformOrder.AddHistoryComment(comment)
	}
	platformOrder.AddHistoryComment(s.localizer.Translate(
		"Order %s moved to %s by the payment gateway",
		order.PlatformCode(), state.String(),
	))

	err = platformOrder.Save(ctx)
	if s.metrics != nil {
		s.metrics.RecordPlatformSync(state.String(), err)
	}
	if err != nil {
		return fmt.Errorf("save platform order %s: %w", order.PlatformCode(), err)
	}

	s.logger.Info("platform order synchronized",
		zap.String("order_code", order.PlatformCode()),
		zap.String("state", state.String()),
	)
	return nil
}

// StateForOrderStatus maps a local order status onto the platform order
// state it demands.
func StateForOrderStatus(status domain.OrderStatus) domain.OrderState {
	switch status {
	case domain.OrderStatusPaid, domain.OrderStatusProcessing:
		return domain.OrderStateProcessing
	case domain.OrderStatusCanceled:
		return domain.OrderStateCanceled
	default:
		return domain.OrderStatePending
	}
}
