package payment

// Checkout payment-instruction schemas. The payload is keyed by payment
// kind; each key holds the entries of that kind. Absent keys contribute
// no payments.

// CustomerPostData is the multibuyer customer block of a payment entry.
type CustomerPostData struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

// CardEntryData is one card payment instruction. Identifier carries
// either a one-time token or a saved card reference; CustomerID is
// required only for the saved card case.
type CardEntryData struct {
	Identifier    string            `json:"identifier"`
	Brand         string            `json:"brand,omitempty"`
	Amount        int64             `json:"amount"`
	Installments  int               `json:"installments"`
	CustomerID    string            `json:"customer_id,omitempty"`
	Customer      *CustomerPostData `json:"customer,omitempty"`
	SaveOnSuccess bool              `json:"save_on_success,omitempty"`
	CVV           string            `json:"cvv_card,omitempty"`
}

// BoletoEntryData is one boleto payment instruction.
type BoletoEntryData struct {
	Amount   int64             `json:"amount"`
	Customer *CustomerPostData `json:"customer,omitempty"`
}

// PaymentsData is the full inbound payment-instruction payload.
type PaymentsData struct {
	CreditCards []*CardEntryData   `json:"credit_card,omitempty"`
	DebitCards  []*CardEntryData   `json:"debit_card,omitempty"`
	Vouchers    []*CardEntryData   `json:"voucher,omitempty"`
	Boletos     []*BoletoEntryData `json:"boleto,omitempty"`
}
