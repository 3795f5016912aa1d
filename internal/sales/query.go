package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Criteria narrows a list of sales. Zero-valued fields are ignored.
//
// DateFrom and DateTo are compared at calendar-date granularity in their own
// location, so a sale made at 23:59 on DateTo is still included.
type Criteria struct {
	SellerID string
	DateFrom time.Time
	DateTo   time.Time
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.SellerID == "" && c.DateFrom.IsZero() && c.DateTo.IsZero()
}

// Summary is the aggregate over a filtered set of sales.
type Summary struct {
	TotalSales decimal.Decimal `json:"total_sales"`
	Commission decimal.Decimal `json:"commission"`
}

// Filter keeps the sales matching every set criterion, preserving input order.
func Filter(sales []Sale, c Criteria) []Sale {
	if c.IsZero() {
		return sales
	}

	filtered := make([]Sale, 0, len(sales))
	for _, sale := range sales {
		if c.SellerID != "" && sale.SellerID != c.SellerID {
			continue
		}
		if !c.DateFrom.IsZero() && dateOf(sale.CreatedAt, c.DateFrom.Location()).Before(dateOf(c.DateFrom, c.DateFrom.Location())) {
			continue
		}
		if !c.DateTo.IsZero() && dateOf(sale.CreatedAt, c.DateTo.Location()).After(dateOf(c.DateTo, c.DateTo.Location())) {
			continue
		}
		filtered = append(filtered, sale)
	}
	return filtered
}

// Summarize totals the filtered sales and derives the commission.
// commissionPercent is not clamped to [0,100].
func Summarize(filtered []Sale, commissionPercent decimal.Decimal) Summary {
	total := decimal.Zero
	for _, sale := range filtered {
		total = total.Add(sale.Total)
	}
	return Summary{
		TotalSales: total,
		Commission: total.Mul(commissionPercent).Div(hundred),
	}
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
