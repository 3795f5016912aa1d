package sales

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxItems is the maximum number of line items a single sale may carry.
const MaxItems = 5

// PaymentMethod is the closed set of ways a sale can be paid.
type PaymentMethod string

const (
	PaymentCash            PaymentMethod = "cash"
	PaymentCredit          PaymentMethod = "credit"
	PaymentDebit           PaymentMethod = "debit"
	PaymentInstantTransfer PaymentMethod = "instant-transfer"
)

// legacy codes still sent by older front-ends
var paymentAliases = map[string]PaymentMethod{
	"dinheiro": PaymentCash,
	"credito":  PaymentCredit,
	"debito":   PaymentDebit,
	"pix":      PaymentInstantTransfer,
}

// ParsePaymentMethod normalizes a user supplied payment code.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := paymentAliases[code]; ok {
		return alias, nil
	}
	m := PaymentMethod(code)
	if !m.Valid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

// Valid reports whether m belongs to the enumeration.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentDebit, PaymentInstantTransfer:
		return true
	}
	return false
}

// Label is the human readable name printed on receipts.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCredit:
		return "Credit card"
	case PaymentDebit:
		return "Debit card"
	case PaymentInstantTransfer:
		return "Instant transfer"
	}
	return string(m)
}

// Item is one line of a sale. Subtotal is computed once when the item is created.
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ItemInput carries the user entered fields of a candidate item.
type ItemInput struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Sale represents a completed sales transaction. Sales are never edited once saved.
type Sale struct {
	ID            string          `json:"id"`
	SellerID      string          `json:"seller_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []Item          `json:"items"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
}
