package payment

import (
	"time"

	"github.com/storelink/paygate/internal/module/kernel"
	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/module/payment/domain"
	"github.com/storelink/paygate/internal/shared/config"
	"go.uber.org/zap"
)

// Factory builds Payment aggregates from inbound payment instructions.
// Card identifiers are classified up front; an entry whose identifier is
// neither a token nor a saved card reference is dropped, never escalated.
type Factory struct {
	cfg          config.GatewayConfig
	installments *kernel.InstallmentService
	logger       *zap.Logger
	now          func() time.Time
}

// NewFactory creates a payment factory.
func NewFactory(cfg config.GatewayConfig, installments *kernel.InstallmentService, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:          cfg,
		installments: installments,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateFromPaymentsData builds every payment the payload describes.
// Dropped card entries shrink the result; any other construction failure
// aborts the whole batch.
func (f *Factory) CreateFromPaymentsData(data *PaymentsData) ([]domain.Payment, error) {
	var payments []domain.Payment

	cardKinds := []struct {
		method  domain.PaymentMethod
		cfg     config.MethodConfig
		entries []*CardEntryData
	}{
		{domain.PaymentMethodCreditCard, f.cfg.CreditCard, data.CreditCards},
		{domain.PaymentMethodDebitCard, f.cfg.DebitCard, data.DebitCards},
		{domain.PaymentMethodVoucher, f.cfg.Voucher, data.Vouchers},
	}
	for _, kind := range cardKinds {
		for _, entry := range kind.entries {
			p, err := f.createCardPayment(kind.method, kind.cfg, entry)
			if err != nil {
				return nil, err
			}
			if p == nil {
				continue
			}
			payments = append(payments, p)
		}
	}

	for _, entry := range data.Boletos {
		p, err := f.createBoletoPayment(entry)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, nil
}

// createCardPayment builds one card payment. A nil, nil return means the
// entry was dropped.
func (f *Factory) createCardPayment(
	method domain.PaymentMethod,
	methodCfg config.MethodConfig,
	entry *CardEntryData,
) (domain.Payment, error) {
	brand, err := domain.ParseCardBrand(entry.Brand)
	if err != nil && entry.Brand != "" {
		return nil, err
	}

	descriptor := methodCfg.StatementDescriptor
	if descriptor == "" {
		descriptor = f.cfg.StatementDescriptor
	}

	var base cardBase
	switch kerneldomain.ClassifyCardIdentifier(entry.Identifier) {
	case kerneldomain.CardIdentifierToken:
		token, err := kerneldomain.NewCardToken(entry.Identifier)
		if err != nil {
			return nil, err
		}
		p, err := domain.NewNewCardPayment(
			method, token, brand, entry.Amount, entry.Installments,
			methodCfg.Capture, descriptor, entry.SaveOnSuccess,
		)
		if err != nil {
			return nil, err
		}
		base = p

	case kerneldomain.CardIdentifierSavedCard:
		if entry.CustomerID == "" {
			f.dropEntry(method, entry.Identifier, "saved card without customer id")
			return nil, nil
		}
		cardID, err := kerneldomain.NewCardID(entry.Identifier)
		if err != nil {
			return nil, err
		}
		customerID, err := kerneldomain.NewCustomerID(entry.CustomerID)
		if err != nil {
			f.dropEntry(method, entry.Identifier, "malformed customer id")
			return nil, nil
		}
		p, err := domain.NewSavedCardPayment(
			method, cardID, customerID, brand, entry.Amount,
			entry.Installments, methodCfg.Capture, descriptor,
		)
		if err != nil {
			return nil, err
		}
		base = p

	default:
		f.dropEntry(method, entry.Identifier, "unrecognized card identifier")
		return nil, nil
	}

	if entry.Installments > 1 {
		total, err := f.installments.ResolveTotal(
			brand.String(), entry.Amount, entry.Installments, methodCfg.Installment,
		)
		if err != nil {
			return nil, err
		}
		if err := base.SetAmount(total); err != nil {
			return nil, err
		}
	}

	if f.cfg.Multibuyer && entry.Customer != nil {
		customer, err := CreateCustomerFromPostData(entry.Customer)
		if err != nil {
			return nil, err
		}
		base.SetCustomer(customer)
	}

	return base, nil
}

func (f *Factory) createBoletoPayment(entry *BoletoEntryData) (domain.Payment, error) {
	dueAt := f.now().AddDate(0, 0, f.cfg.Boleto.DueDays)
	p, err := domain.NewBoletoPayment(entry.Amount, f.cfg.Boleto.Bank, f.cfg.Boleto.Instructions, dueAt)
	if err != nil {
		return nil, err
	}
	if f.cfg.Multibuyer && entry.Customer != nil {
		customer, err := CreateCustomerFromPostData(entry.Customer)
		if err != nil {
			return nil, err
		}
		p.SetCustomer(customer)
	}
	return p, nil
}

func (f *Factory) dropEntry(method domain.PaymentMethod, identifier, reason string) {
	f.logger.Warn("payment entry dropped",
		zap.String("method", method.String()),
		zap.String("identifier", identifier),
		zap.String("reason", reason),
	)
}

// cardBase is the mutable surface shared by both card payment variants.
type cardBase interface {
	domain.Payment
	SetAmount(amount int64) error
	SetCustomer(customer *domain.Customer)
}

// CreateCustomerFromPostData builds a Customer from inbound customer
// data.
func CreateCustomerFromPostData(data *CustomerPostData) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(data.Code, data.Name, data.Email)
	if err != nil {
		return nil, err
	}
	if data.Document != "" {
		customer.SetDocument(data.Document)
	}
	return customer, nil
}
