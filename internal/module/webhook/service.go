package webhook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/storelink/paygate/internal/module/kernel"
	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/recurrence"
	rechandler "github.com/storelink/paygate/internal/module/recurrence/handler"
	"github.com/storelink/paygate/internal/module/webhook/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
	"github.com/storelink/paygate/internal/utils/metrics"
	"go.uber.org/zap"
)

// GatewayClient fetches full entities when a delivery carries only an
// id.
type GatewayClient interface {
	GetCharge(ctx context.Context, id string) (*kernel.ChargeData, error)
	GetSubscription(ctx context.Context, id string) (*recurrence.SubscriptionData, error)
}

// DeliveryDedup is the fast-path seen-set for delivery ids. A marked
// key must be forgotten whenever the delivery fails before completion,
// otherwise the gateway's retry is absorbed as a duplicate.
type DeliveryDedup interface {
	MarkSeen(ctx context.Context, deliveryID string) (bool, error)
	Forget(ctx context.Context, deliveryID string) error
}

// Verdict is the delivery-boundary outcome of processing one webhook.
// Exactly one of Processed, Duplicate or Reason describes the result; a
// processing error instead makes the delivery retryable.
type Verdict struct {
	Processed bool
	Duplicate bool
	Reason    kerneldomain.CantCreateReason
}

// Service processes gateway deliveries: dedup, durable event record,
// dispatch to the response handler the entity type demands, and outcome
// bookkeeping.
type Service struct {
	factory           *Factory
	repo              Repository
	dedup             DeliveryDedup
	kernelFactory     *kernel.Factory
	kernelHandler     *kernel.Handler
	recurrenceFactory *recurrence.Factory
	subscriptions     *rechandler.SubscriptionHandler
	invoices          *rechandler.InvoiceHandler
	gateway           GatewayClient
	logger            *zap.Logger
	metrics           *metrics.Metrics
}

// NewService creates a webhook service.
func NewService(
	factory *Factory,
	repo Repository,
	dedup DeliveryDedup,
	kernelFactory *kernel.Factory,
	kernelHandler *kernel.Handler,
	recurrenceFactory *recurrence.Factory,
	subscriptions *rechandler.SubscriptionHandler,
	invoices *rechandler.InvoiceHandler,
	gateway GatewayClient,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		factory:           factory,
		repo:              repo,
		dedup:             dedup,
		kernelFactory:     kernelFactory,
		kernelHandler:     kernelHandler,
		recurrenceFactory: recurrenceFactory,
		subscriptions:     subscriptions,
		invoices:          invoices,
		gateway:           gateway,
		logger:            logger,
		metrics:           m,
	}
}

// Process handles one delivery end to end. Duplicates are absorbed as a
// no-op; handler failures leave the delivery retryable.
func (s *Service) Process(ctx context.Context, payload *WebhookPayload) (Verdict, error) {
	webhook, err := s.factory.CreateFromPayload(payload)
	if err != nil {
		return Verdict{}, err
	}
	eventID := webhook.GatewayID().String()

	duplicate, err := s.isDuplicate(ctx, eventID)
	if err != nil {
		return Verdict{}, err
	}
	if duplicate {
		if s.metrics != nil {
			s.metrics.WebhookDuplicateTotal.Inc()
		}
		s.logger.Info("duplicate webhook delivery absorbed",
			zap.String("event_id", eventID),
			zap.String("type", webhook.Type().String()),
		)
		return Verdict{Duplicate: true}, nil
	}

	if err := s.repo.CreateWebhookEvent(ctx, webhook); err != nil {
		s.forgetDelivery(ctx, eventID)
		return Verdict{}, err
	}

	started := time.Now()
	reason, dispatchErr := s.dispatch(ctx, webhook)

	outcome := "processed"
	switch {
	case dispatchErr != nil:
		outcome = "failed"
	case reason != "":
		outcome = "rejected"
	}
	if s.metrics != nil {
		s.metrics.RecordWebhookEvent(
			webhook.Type().EntityType(), webhook.Type().Action(),
			outcome, time.Since(started),
		)
	}

	if err := s.repo.MarkWebhookEventProcessed(ctx, eventID, dispatchErr); err != nil {
		s.logger.Error("failed to mark webhook event processed",
			zap.String("event_id", eventID), zap.Error(err),
		)
	}
	if dispatchErr != nil {
		s.forgetDelivery(ctx, eventID)
		return Verdict{}, dispatchErr
	}
	if reason != "" {
		return Verdict{Reason: reason}, nil
	}
	return Verdict{Processed: true}, nil
}

// forgetDelivery frees the fast-path key so the gateway's retry is not
// absorbed as a duplicate.
func (s *Service) forgetDelivery(ctx context.Context, eventID string) {
	if s.dedup == nil {
		return
	}
	if err := s.dedup.Forget(ctx, eventID); err != nil {
		s.logger.Warn("failed to forget delivery key",
			zap.String("event_id", eventID), zap.Error(err),
		)
	}
}

// isDuplicate checks the Redis fast path first, then the durable event
// record. A Redis failure degrades to the database check.
func (s *Service) isDuplicate(ctx context.Context, eventID string) (bool, error) {
	if s.dedup != nil {
		seen, err := s.dedup.MarkSeen(ctx, eventID)
		if err != nil {
			s.logger.Warn("delivery dedup unavailable",
				zap.String("event_id", eventID), zap.Error(err),
			)
		} else if seen {
			return true, nil
		}
	}
	return s.repo.WebhookEventExists(ctx, eventID)
}

func (s *Service) dispatch(ctx context.Context, webhook *domain.Webhook) (kerneldomain.CantCreateReason, error) {
	switch webhook.Component() {
	case domain.ComponentRecurrence:
		return s.dispatchRecurrence(ctx, webhook)
	default:
		return "", s.dispatchKernel(ctx, webhook)
	}
}

func (s *Service) dispatchKernel(ctx context.Context, webhook *domain.Webhook) error {
	switch webhook.Type().EntityType() {
	case "charge":
		data, err := s.chargeData(ctx, webhook)
		if err != nil {
			return err
		}
		charge, err := s.kernelFactory.CreateChargeFromData(data)
		if err != nil {
			return err
		}
		return s.kernelHandler.HandleCharge(ctx, charge)

	case "order":
		var data kernel.OrderData
		if err := decodeEntity(webhook.Entity(), &data); err != nil {
			return err
		}
		order, err := s.kernelFactory.CreateOrderFromData(&data)
		if err != nil {
			return err
		}
		return s.kernelHandler.HandleOrder(ctx, order)

	default:
		return sherrors.UnhandledStatus(webhook.Type().String())
	}
}

func (s *Service) dispatchRecurrence(ctx context.Context, webhook *domain.Webhook) (kerneldomain.CantCreateReason, error) {
	switch webhook.Type().EntityType() {
	case "subscription":
		data, err := s.subscriptionData(ctx, webhook)
		if err != nil {
			return "", err
		}
		sub, err := s.recurrenceFactory.CreateSubscriptionFromData(data)
		if err != nil {
			return "", err
		}
		result, err := s.subscriptions.Handle(ctx, sub)
		if err != nil {
			return "", err
		}
		return result.Reason, nil

	case "invoice":
		var data recurrence.InvoiceData
		if err := decodeEntity(webhook.Entity(), &data); err != nil {
			return "", err
		}
		invoice, err := s.recurrenceFactory.CreateInvoiceFromData(&data)
		if err != nil {
			return "", err
		}
		return "", s.invoices.Handle(ctx, invoice, webhook.Type().Action())

	default:
		return "", sherrors.UnhandledStatus(webhook.Type().String())
	}
}

// chargeData decodes the charge block, refreshing it from the gateway
// when the delivery carries only an id.
func (s *Service) chargeData(ctx context.Context, webhook *domain.Webhook) (*kernel.ChargeData, error) {
	var data kernel.ChargeData
	if err := decodeEntity(webhook.Entity(), &data); err != nil {
		return nil, err
	}
	if data.Status != "" || s.gateway == nil {
		return &data, nil
	}
	if data.ID == "" {
		return nil, sherrors.Validation("charge payload carries neither status nor id")
	}
	return s.gateway.GetCharge(ctx, data.ID)
}

func (s *Service) subscriptionData(ctx context.Context, webhook *domain.Webhook) (*recurrence.SubscriptionData, error) {
	var data recurrence.SubscriptionData
	if err := decodeEntity(webhook.Entity(), &data); err != nil {
		return nil, err
	}
	if data.Status != "" || s.gateway == nil {
		return &data, nil
	}
	if data.ID == "" {
		return nil, sherrors.Validation("subscription payload carries neither status nor id")
	}
	return s.gateway.GetSubscription(ctx, data.ID)
}

func decodeEntity(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return sherrors.Validation("webhook delivery carries no entity payload")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return sherrors.Parse("data", err)
	}
	return nil
}
