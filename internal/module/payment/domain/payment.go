package domain

import (
	"time"

	kernel "github.com/storelink/paygate/internal/module/kernel/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

// PaymentMethod tags the instrument used to settle a payment.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodVoucher    PaymentMethod = "voucher"
	PaymentMethodBoleto     PaymentMethod = "boleto"
)

// ParsePaymentMethod validates a raw tag.
func ParsePaymentMethod(tag string) (PaymentMethod, error) {
	switch m := PaymentMethod(tag); m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodVoucher, PaymentMethodBoleto:
		return m, nil
	}
	return "", sherrors.Validation("unknown payment method " + tag)
}

func (m PaymentMethod) String() string { return string(m) }

// CardBrand tags a card network.
type CardBrand string

const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMastercard CardBrand = "mastercard"
	CardBrandElo        CardBrand = "elo"
	CardBrandAmex       CardBrand = "amex"
	CardBrandHipercard  CardBrand = "hipercard"
)

// ParseCardBrand validates a raw tag.
func ParseCardBrand(tag string) (CardBrand, error) {
	switch b := CardBrand(tag); b {
	case CardBrandVisa, CardBrandMastercard, CardBrandElo,
		CardBrandAmex, CardBrandHipercard:
		return b, nil
	}
	return "", sherrors.Validation("unknown card brand " + tag)
}

func (b CardBrand) String() string { return string(b) }

// Payment is one settlement instruction ready to send to the gateway.
type Payment interface {
	Method() PaymentMethod
	// Amount is the charged total in minor currency units, interest
	// included for card payments.
	Amount() int64
	// Customer is the buyer this payment bills, nil unless multibuyer
	// data was attached.
	Customer() *Customer
}

// cardPayment carries the fields shared by the new-card and saved-card
// variants.
type cardPayment struct {
	method              PaymentMethod
	baseAmount          int64
	amount              int64
	installments        int
	brand               CardBrand
	capture             bool
	statementDescriptor string
	saveOnSuccess       bool
	customer            *Customer
}

func (p *cardPayment) Method() PaymentMethod      { return p.method }
func (p *cardPayment) Amount() int64              { return p.amount }
func (p *cardPayment) BaseAmount() int64          { return p.baseAmount }
func (p *cardPayment) Installments() int          { return p.installments }
func (p *cardPayment) Brand() CardBrand           { return p.brand }
func (p *cardPayment) Capture() bool              { return p.capture }
func (p *cardPayment) StatementDescriptor() string { return p.statementDescriptor }
func (p *cardPayment) SaveOnSuccess() bool        { return p.saveOnSuccess }
func (p *cardPayment) Customer() *Customer        { return p.customer }

// SetAmount records the charged total after installment resolution.
func (p *cardPayment) SetAmount(amount int64) error {
	if amount < 0 {
		return sherrors.Validation("amount should be greater than or equal to 0")
	}
	p.amount = amount
	return nil
}

// SetCustomer attaches the multibuyer customer.
func (p *cardPayment) SetCustomer(customer *Customer) { p.customer = customer }

// NewCardPayment pays with a one-time tokenized card.
type NewCardPayment struct {
	cardPayment
	token kernel.CardToken
}

// NewNewCardPayment creates the tokenized-card payment variant.
func NewNewCardPayment(
	method PaymentMethod,
	token kernel.CardToken,
	brand CardBrand,
	amount int64,
	installments int,
	capture bool,
	statementDescriptor string,
	saveOnSuccess bool,
) (*NewCardPayment, error) {
	if amount < 0 {
		return nil, sherrors.Validation("amount should be greater than or equal to 0")
	}
	if installments < 1 {
		installments = 1
	}
	return &NewCardPayment{
		cardPayment: cardPayment{
			method:              method,
			baseAmount:          amount,
			amount:              amount,
			installments:        installments,
			brand:               brand,
			capture:             capture,
			statementDescriptor: statementDescriptor,
			saveOnSuccess:       saveOnSuccess,
		},
		token: token,
	}, nil
}

// Token returns the one-time card token.
func (p *NewCardPayment) Token() kernel.CardToken { return p.token }

// SavedCardPayment pays with a card already stored at the gateway. The
// owning customer id is required to authorize use of the stored card.
type SavedCardPayment struct {
	cardPayment
	cardID     kernel.CardID
	customerID kernel.CustomerID
}

// NewSavedCardPayment creates the saved-card payment variant.
func NewSavedCardPayment(
	method PaymentMethod,
	cardID kernel.CardID,
	customerID kernel.CustomerID,
	brand CardBrand,
	amount int64,
	installments int,
	capture bool,
	statementDescriptor string,
) (*SavedCardPayment, error) {
	if amount < 0 {
		return nil, sherrors.Validation("amount should be greater than or equal to 0")
	}
	if customerID == "" {
		return nil, sherrors.Validation("saved card payment requires a customer id")
	}
	if installments < 1 {
		installments = 1
	}
	return &SavedCardPayment{
		cardPayment: cardPayment{
			method:              method,
			baseAmount:          amount,
			amount:              amount,
			installments:        installments,
			brand:               brand,
			capture:             capture,
			statementDescriptor: statementDescriptor,
		},
		cardID:     cardID,
		customerID: customerID,
	}, nil
}

// CardID returns the stored card reference.
func (p *SavedCardPayment) CardID() kernel.CardID { return p.cardID }

// CustomerID returns the stored card's owner.
func (p *SavedCardPayment) CustomerID() kernel.CustomerID { return p.customerID }

// BoletoPayment pays with a bank payment slip. No brand or installment
// resolution applies; the issuing bank and instructions come from
// configuration.
type BoletoPayment struct {
	amount       int64
	bank         string
	instructions string
	dueAt        time.Time
	customer     *Customer
}

// NewBoletoPayment creates a boleto payment.
func NewBoletoPayment(amount int64, bank, instructions string, dueAt time.Time) (*BoletoPayment, error) {
	if amount < 0 {
		return nil, sherrors.Validation("amount should be greater than or equal to 0")
	}
	if bank == "" {
		return nil, sherrors.Validation("boleto payment requires an issuing bank")
	}
	return &BoletoPayment{
		amount:       amount,
		bank:         bank,
		instructions: instructions,
		dueAt:        dueAt,
	}, nil
}

func (p *BoletoPayment) Method() PaymentMethod { return PaymentMethodBoleto }
func (p *BoletoPayment) Amount() int64         { return p.amount }
func (p *BoletoPayment) Bank() string          { return p.bank }
func (p *BoletoPayment) Instructions() string  { return p.instructions }
func (p *BoletoPayment) DueAt() time.Time      { return p.dueAt }
func (p *BoletoPayment) Customer() *Customer   { return p.customer }

// SetCustomer attaches the multibuyer customer.
func (p *BoletoPayment) SetCustomer(customer *Customer) { p.customer = customer }
