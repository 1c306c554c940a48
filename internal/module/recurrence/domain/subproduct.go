package domain

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	kernel "github.com/storelink/paygate/internal/module/kernel/domain"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
)

const maxTextLength = 256

var (
	markupPattern    = regexp.MustCompile(`<[^>]*>`)
	nonAlphanumSpace = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
)

// SanitizeName strips markup and any character outside letters, digits
// and spaces, then truncates to 256 characters.
func SanitizeName(raw string) string {
	clean := markupPattern.ReplaceAllString(raw, "")
	clean = nonAlphanumSpace.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)
	if len(clean) > maxTextLength {
		clean = clean[:maxTextLength]
	}
	return clean
}

// SanitizeDescription strips markup and truncates to 256 characters.
// Punctuation is kept.
func SanitizeDescription(raw string) string {
	clean := markupPattern.ReplaceAllString(raw, "")
	clean = strings.TrimSpace(clean)
	if len(clean) > maxTextLength {
		clean = clean[:maxTextLength]
	}
	return clean
}

// PricingScheme is the pricing variant of a recurring line item.
type PricingScheme struct {
	schemeType PricingSchemeType
	price      int64
}

// NewPricingScheme creates a pricing scheme.
func NewPricingScheme(schemeType PricingSchemeType, price int64) (PricingScheme, error) {
	if price < 0 {
		return PricingScheme{}, sherrors.Validation("price should be greater than or equal to 0")
	}
	return PricingScheme{schemeType: schemeType, price: price}, nil
}

func (p PricingScheme) Type() PricingSchemeType { return p.schemeType }
func (p PricingScheme) Price() int64            { return p.price }

// MarshalJSON projects the scheme as a gateway request fragment.
func (p PricingScheme) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SchemeType PricingSchemeType `json:"scheme_type"`
		Price      int64             `json:"price"`
	}{p.schemeType, p.price})
}

// Increment is a price adjustment applied to a subscription for a number
// of cycles.
type Increment struct {
	value         int64
	incrementType IncrementType
	cycles        int
}

// NewIncrement creates an increment.
func NewIncrement(value int64, incrementType IncrementType, cycles int) (Increment, error) {
	if value < 0 {
		return Increment{}, sherrors.Validation("increment value should be greater than or equal to 0")
	}
	return Increment{value: value, incrementType: incrementType, cycles: cycles}, nil
}

func (i Increment) Value() int64        { return i.value }
func (i Increment) Type() IncrementType { return i.incrementType }
func (i Increment) Cycles() int         { return i.cycles }
func (i Increment) IsZero() bool        { return i == Increment{} }

// MarshalJSON projects the increment as a gateway request fragment.
func (i Increment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value         int64         `json:"value"`
		IncrementType IncrementType `json:"increment_type"`
		Cycles        int           `json:"cycles,omitempty"`
	}{i.value, i.incrementType, i.cycles})
}

// Repetition is one selectable billing interval for a recurring product.
type Repetition struct {
	id              uint
	interval        string
	intervalCount   int
	recurrencePrice int64
}

// NewRepetition creates a repetition.
func NewRepetition(id uint, interval string, intervalCount int, recurrencePrice int64) Repetition {
	return Repetition{
		id:              id,
		interval:        interval,
		intervalCount:   intervalCount,
		recurrencePrice: recurrencePrice,
	}
}

func (r Repetition) ID() uint               { return r.id }
func (r Repetition) Interval() string       { return r.interval }
func (r Repetition) IntervalCount() int     { return r.intervalCount }
func (r Repetition) RecurrencePrice() int64 { return r.recurrencePrice }
func (r Repetition) IsZero() bool           { return r == Repetition{} }

// SubProduct is a recurring-billing line item. Name and description are
// always within length and character constraints after construction;
// timestamps cross the persistence boundary as formatted strings.
type SubProduct struct {
	id                  uint
	productID           uint
	productRecurrenceID uint
	name                string
	description         string
	pricingScheme       PricingScheme
	quantity            int
	cycles              int
	increment           Increment
	selectedRepetition  Repetition
	createdAt           string
	updatedAt           string
}

// NewSubProduct creates a line item with sanitized text fields.
func NewSubProduct(name, description string) *SubProduct {
	now := time.Now().Format(kernel.DateFormat)
	return &SubProduct{
		name:        SanitizeName(name),
		description: SanitizeDescription(description),
		quantity:    1,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (s *SubProduct) ID() uint                       { return s.id }
func (s *SubProduct) ProductID() uint                { return s.productID }
func (s *SubProduct) ProductRecurrenceID() uint      { return s.productRecurrenceID }
func (s *SubProduct) Name() string                   { return s.name }
func (s *SubProduct) Description() string            { return s.description }
func (s *SubProduct) PricingScheme() PricingScheme   { return s.pricingScheme }
func (s *SubProduct) Quantity() int                  { return s.quantity }
func (s *SubProduct) Cycles() int                    { return s.cycles }
func (s *SubProduct) Increment() Increment           { return s.increment }
func (s *SubProduct) SelectedRepetition() Repetition { return s.selectedRepetition }
func (s *SubProduct) CreatedAt() string              { return s.createdAt }
func (s *SubProduct) UpdatedAt() string              { return s.updatedAt }

// SetID assigns the local identity after persistence.
func (s *SubProduct) SetID(id uint) { s.id = id }

// SetProductID links the backing catalog product.
func (s *SubProduct) SetProductID(id uint) { s.productID = id }

// SetProductRecurrenceID links the backing recurrence definition.
func (s *SubProduct) SetProductRecurrenceID(id uint) { s.productRecurrenceID = id }

// SetName replaces the name, re-applying sanitization.
func (s *SubProduct) SetName(name string) { s.name = SanitizeName(name) }

// SetDescription replaces the description, re-applying sanitization.
func (s *SubProduct) SetDescription(description string) {
	s.description = SanitizeDescription(description)
}

// SetPricingScheme sets the pricing variant.
func (s *SubProduct) SetPricingScheme(scheme PricingScheme) { s.pricingScheme = scheme }

// SetQuantity sets the billed quantity.
func (s *SubProduct) SetQuantity(quantity int) error {
	if quantity < 1 {
		return sherrors.Validation("quantity should be greater than or equal to 1")
	}
	s.quantity = quantity
	return nil
}

// SetCycles sets how many billing cycles the item lasts. Zero means
// until canceled.
func (s *SubProduct) SetCycles(cycles int) error {
	if cycles < 0 {
		return sherrors.Validation("cycles should be greater than or equal to 0")
	}
	s.cycles = cycles
	return nil
}

// SetIncrement attaches a price adjustment.
func (s *SubProduct) SetIncrement(increment Increment) { s.increment = increment }

// SetSelectedRepetition records the billing interval the buyer chose.
func (s *SubProduct) SetSelectedRepetition(repetition Repetition) {
	s.selectedRepetition = repetition
}

// SetCreatedAt stores an already formatted creation timestamp.
func (s *SubProduct) SetCreatedAt(value string) error {
	if _, err := time.Parse(kernel.DateFormat, value); err != nil {
		return sherrors.Parse("created_at", err)
	}
	s.createdAt = value
	return nil
}

// SetUpdatedAt stores an already formatted update timestamp.
func (s *SubProduct) SetUpdatedAt(value string) error {
	if _, err := time.Parse(kernel.DateFormat, value); err != nil {
		return sherrors.Parse("updated_at", err)
	}
	s.updatedAt = value
	return nil
}

// ToGatewayRequest projects the line item as a gateway subscription item
// fragment.
func (s *SubProduct) ToGatewayRequest() map[string]any {
	req := map[string]any{
		"name":           s.name,
		"description":    s.description,
		"quantity":       s.quantity,
		"pricing_scheme": s.pricingScheme,
	}
	if s.cycles > 0 {
		req["cycles"] = s.cycles
	}
	if !s.increment.IsZero() {
		req["increment"] = s.increment
	}
	return req
}

// MarshalJSON projects the line item for logging and API responses.
func (s *SubProduct) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID                  uint          `json:"id"`
		ProductID           uint          `json:"productId,omitempty"`
		ProductRecurrenceID uint          `json:"productRecurrenceId,omitempty"`
		Name                string        `json:"name"`
		Description         string        `json:"description,omitempty"`
		PricingScheme       PricingScheme `json:"pricingScheme"`
		Quantity            int           `json:"quantity"`
		Cycles              int           `json:"cycles,omitempty"`
		Increment           *Increment    `json:"increment,omitempty"`
		CreatedAt           string        `json:"createdAt,omitempty"`
		UpdatedAt           string        `json:"updatedAt,omitempty"`
	}{
		ID:                  s.id,
		ProductID:           s.productID,
		ProductRecurrenceID: s.productRecurrenceID,
		Name:                s.name,
		Description:         s.description,
		PricingScheme:       s.pricingScheme,
		Quantity:            s.quantity,
		Cycles:              s.cycles,
		Increment:           incrementOrNil(s.increment),
		CreatedAt:           s.createdAt,
		UpdatedAt:           s.updatedAt,
	})
}

func incrementOrNil(i Increment) *Increment {
	if i.IsZero() {
		return nil
	}
	return &i
}
