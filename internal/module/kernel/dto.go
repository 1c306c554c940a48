package kernel

// Gateway notification payload schemas. The webhook intake decodes raw
// JSON into these structs; factories turn them into aggregates. Raw maps
// never cross into the domain layer.

// CustomerData is the customer block embedded in gateway payloads.
type CustomerData struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

// TransactionData is the transaction block embedded in charge payloads.
type TransactionData struct {
	ID        string `json:"id"`
	Type      string `json:"transaction_type"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ChargeData is the charge payload sent by the gateway.
type ChargeData struct {
	ID              string           `json:"id"`
	Code            string           `json:"code"`
	Amount          int64            `json:"amount"`
	PaidAmount      int64            `json:"paid_amount"`
	CanceledAmount  int64            `json:"canceled_amount"`
	RefundedAmount  int64            `json:"refunded_amount"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"payment_method"`
	Customer        *CustomerData    `json:"customer,omitempty"`
	LastTransaction *TransactionData `json:"last_transaction,omitempty"`
}

// OrderData is the order payload sent by the gateway.
type OrderData struct {
	ID       string        `json:"id"`
	Code     string        `json:"code"`
	Status   string        `json:"status"`
	Customer *CustomerData `json:"customer,omitempty"`
	Charges  []*ChargeData `json:"charges,omitempty"`
}
