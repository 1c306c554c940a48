package kernel

import (
	"context"
	"errors"
	"fmt"

	"github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/kernel/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines data access for payment aggregates. Save operations
// upsert keyed by the gateway id, so replaying a notification never
// produces a duplicate row.
type Repository interface {
	// Charge operations
	SaveCharge(ctx context.Context, charge *domain.Charge) error
	GetChargeByGatewayID(ctx context.Context, id domain.ChargeID) (*domain.Charge, error)
	GetChargeByCode(ctx context.Context, code string) (*domain.Charge, error)

	// Order operations
	SaveOrder(ctx context.Context, order *domain.Order) error
	GetOrderByGatewayID(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	GetOrderByPlatformCode(ctx context.Context, code string) (*domain.Order, error)

	// Transaction operations
	SaveTransaction(ctx context.Context, transaction *domain.Transaction) error
	GetTransactionByGatewayID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new kernel repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// --- Charge Operations ---

func (r *repository) SaveCharge(ctx context.Context, charge *domain.Charge) error {
	ent := entity.FromDomainCharge(charge)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "gateway_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"code", "amount", "paid_amount", "canceled_amount",
				"refunded_amount", "status", "payment_method",
				"customer_id", "updated_at",
			}),
		}).
		Create(ent).Error
	if err != nil {
		return fmt.Errorf("save charge: %w", err)
	}
	charge.SetID(ent.ID)
	return nil
}

func (r *repository) GetChargeByGatewayID(ctx context.Context, id domain.ChargeID) (*domain.Charge, error) {
	var ent entity.ChargeEntity
	err := r.db.WithContext(ctx).First(&ent, "gateway_id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChargeNotFound
		}
		return nil, fmt.Errorf("get charge by gateway id: %w", err)
	}
	return ent.ToDomain(), nil
}

func (r *repository) GetChargeByCode(ctx context.Context, code string) (*domain.Charge, error) {
	var ent entity.ChargeEntity
	err := r.db.WithContext(ctx).First(&ent, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChargeNotFound
		}
		return nil, fmt.Errorf("get charge by code: %w", err)
	}
	return ent.ToDomain(), nil
}

// --- Order Operations ---

func (r *repository) SaveOrder(ctx context.Context, order *domain.Order) error {
	ent := entity.FromDomainOrder(order)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "platform_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"gateway_id", "customer_id", "status", "updated_at",
			}),
		}).
		Create(ent).Error
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	order.SetID(ent.ID)
	return nil
}

func (r *repository) GetOrderByGatewayID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	var ent entity.OrderEntity
	err := r.db.WithContext(ctx).First(&ent, "gateway_id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by gateway id: %w", err)
	}
	return ent.ToDomain(), nil
}

func (r *repository) GetOrderByPlatformCode(ctx context.Context, code string) (*domain.Order, error) {
	var ent entity.OrderEntity
	err := r.db.WithContext(ctx).First(&ent, "platform_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by platform code: %w", err)
	}
	return ent.ToDomain(), nil
}

// --- Transaction Operations ---

func (r *repository) SaveTransaction(ctx context.Context, transaction *domain.Transaction) error {
	ent := entity.FromDomainTransaction(transaction)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "gateway_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"type", "amount", "status",
			}),
		}).
		Create(ent).Error
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	transaction.SetID(ent.ID)
	return nil
}

func (r *repository) GetTransactionByGatewayID(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	var ent entity.TransactionEntity
	err := r.db.WithContext(ctx).First(&ent, "gateway_id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction by gateway id: %w", err)
	}
	return ent.ToDomain(), nil
}
