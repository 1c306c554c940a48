package recurrence

import (
	"context"
	"errors"
	"fmt"

	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/recurrence/domain"
	"github.com/storelink/paygate/internal/module/recurrence/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrSubscriptionNotFound indicates no subscription exists for the given key.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrInvoiceNotFound indicates no invoice exists for the given key.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrSubProductNotFound indicates no sub product exists for the given key.
	ErrSubProductNotFound = errors.New("sub product not found")
)

// Repository defines data access for recurrence aggregates. Saves upsert
// keyed by gateway id.
type Repository interface {
	// Subscription operations
	SaveSubscription(ctx context.Context, subscription *domain.Subscription) error
	GetSubscriptionByGatewayID(ctx context.Context, id kerneldomain.SubscriptionID) (*domain.Subscription, error)
	GetSubscriptionByCode(ctx context.Context, code string) (*domain.Subscription, error)

	// Invoice operations
	SaveInvoice(ctx context.Context, invoice *domain.Invoice) error
	GetInvoiceByGatewayID(ctx context.Context, id kerneldomain.InvoiceID) (*domain.Invoice, error)

	// SubProduct operations
	SaveSubProduct(ctx context.Context, product *domain.SubProduct) error
	GetSubProductByID(ctx context.Context, id uint) (*domain.SubProduct, error)
	ListSubProductsByProductID(ctx context.Context, productID uint) ([]*domain.SubProduct, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new recurrence repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// --- Subscription Operations ---

func (r *repository) SaveSubscription(ctx context.Context, subscription *domain.Subscription) error {
	ent := entity.FromDomainSubscription(subscription)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "gateway_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"code", "platform_order_code", "status", "plan_id",
				"installments", "interval", "interval_count", "updated_at",
			}),
		}).
		Create(ent).Error
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	subscription.SetID(ent.ID)
	return nil
}

func (r *repository) GetSubscriptionByGatewayID(ctx context.Context, id kerneldomain.SubscriptionID) (*domain.Subscription, error) {
	var ent entity.SubscriptionEntity
	err := r.db.WithContext(ctx).First(&ent, "gateway_id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription by gateway id: %w", err)
	}
	return ent.ToDomain(), nil
}

func (r *repository) GetSubscriptionByCode(ctx context.Context, code string) (*domain.Subscription, error) {
	var ent entity.SubscriptionEntity
	err := r.db.WithContext(ctx).First(&ent, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription by code: %w", err)
	}
	return ent.ToDomain(), nil
}

// --- Invoice Operations ---

func (r *repository) SaveInvoice(ctx context.Context, invoice *domain.Invoice) error {
	ent := entity.FromDomainInvoice(invoice)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "gateway_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"subscription_id", "customer_id", "charge_id",
				"payment_method", "status", "amount", "installments",
				"discount_total", "increment_total", "cycle_start",
				"cycle_end", "cycle_billing_at", "updated_at",
			}),
		}).
		Create(ent).Error
	if err != nil {
		return fmt.Errorf("save invoice: %w", err)
	}
	invoice.SetID(ent.ID)
	return nil
}

func (r *repository) GetInvoiceByGatewayID(ctx context.Context, id kerneldomain.InvoiceID) (*domain.Invoice, error) {
	var ent entity.InvoiceEntity
	err := r.db.WithContext(ctx).First(&ent, "gateway_id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("get invoice by gateway id: %w", err)
	}
	return ent.ToDomain(), nil
}

// --- SubProduct Operations ---

func (r *repository) SaveSubProduct(ctx context.Context, product *domain.SubProduct) error {
	ent := entity.FromDomainSubProduct(product)
	if err := r.db.WithContext(ctx).Save(ent).Error; err != nil {
		return fmt.Errorf("save sub product: %w", err)
	}
	product.SetID(ent.ID)
	return nil
}

func (r *repository) GetSubProductByID(ctx context.Context, id uint) (*domain.SubProduct, error) {
	var ent entity.SubProductEntity
	err := r.db.WithContext(ctx).First(&ent, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubProductNotFound
		}
		return nil, fmt.Errorf("get sub product by id: %w", err)
	}
	return ent.ToDomain()
}

func (r *repository) ListSubProductsByProductID(ctx context.Context, productID uint) ([]*domain.SubProduct, error) {
	var ents []entity.SubProductEntity
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id").
		Find(&ents).Error
	if err != nil {
		return nil, fmt.Errorf("list sub products by product id: %w", err)
	}
	products := make([]*domain.SubProduct, 0, len(ents))
	for i := range ents {
		product, err := ents[i].ToDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
