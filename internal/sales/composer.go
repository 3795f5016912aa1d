package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItem returns current extended with a new item built from in.
// current is never modified, on error or otherwise.
func AddItem(current []Item, in ItemInput) ([]Item, error) {
	if len(current) >= MaxItems {
		return current, ErrMaxItemsExceeded
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || !in.UnitPrice.IsPositive() || !in.Quantity.IsPositive() {
		return current, ErrMissingItemFields
	}

	item := Item{
		ID:        uuid.NewString(),
		Name:      name,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Subtotal:  in.Quantity.Mul(in.UnitPrice),
	}

	next := make([]Item, 0, len(current)+1)
	next = append(next, current...)
	return append(next, item), nil
}

// RemoveItem drops the item with the given id. Unknown ids are a no-op.
func RemoveItem(current []Item, itemID string) []Item {
	idx := -1
	for i, it := range current {
		if it.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return current
	}

	next := make([]Item, 0, len(current)-1)
	next = append(next, current[:idx]...)
	return append(next, current[idx+1:]...)
}

// ComputeTotal sums the stored subtotals. No rounding is applied.
func ComputeTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// NewSale builds a Sale ready to be committed by the caller.
func NewSale(sellerID string, items []Item, method PaymentMethod, now time.Time) (Sale, error) {
	if strings.TrimSpace(sellerID) == "" || len(items) == 0 {
		return Sale{}, ErrRequiredFieldsMissing
	}
	if len(items) > MaxItems {
		return Sale{}, ErrMaxItemsExceeded
	}
	if !method.Valid() {
		return Sale{}, ErrInvalidPaymentMethod
	}

	owned := make([]Item, len(items))
	copy(owned, items)

	return Sale{
		ID:            uuid.NewString(),
		SellerID:      sellerID,
		CreatedAt:     now,
		Items:         owned,
		PaymentMethod: method,
		Total:         ComputeTotal(owned),
	}, nil
}
