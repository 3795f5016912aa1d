package sellers

import (
	"strconv"
	"strings"
	"sync/atomic"

	"pos_sales/internal/sales"
)

// Seller is a person who can be assigned to sales.
type Seller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var (
	ErrNameRequired   = &sales.ValidationError{Reason: "seller name is required"}
	ErrSellerHasSales = &sales.ConstraintError{Reason: "seller has recorded sales"}
)

// IDSource hands out fresh seller ids.
type IDSource interface {
	Next() string
}

// Sequence is a monotonic IDSource producing decimal ids. Ids are never reused.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a Sequence whose first id is after+1.
func NewSequence(after int64) *Sequence {
	s := &Sequence{}
	s.last.Store(after)
	return s
}

func (s *Sequence) Next() string {
	return strconv.FormatInt(s.last.Add(1), 10)
}

// Seed is the initial roster.
func Seed() []Seller {
	return []Seller{
		{ID: "1", Name: "João Silva"},
		{ID: "2", Name: "Maria Santos"},
		{ID: "3", Name: "Pedro Oliveira"},
	}
}

// MaxNumericID returns the largest id in list that parses as an integer, or 0.
func MaxNumericID(list []Seller) int64 {
	var highest int64
	for _, s := range list {
		if n, err := strconv.ParseInt(s.ID, 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// Add returns list extended with a new seller named name (trimmed).
func Add(list []Seller, name string, ids IDSource) ([]Seller, Seller, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return list, Seller{}, ErrNameRequired
	}

	seller := Seller{ID: ids.Next(), Name: name}
	next := make([]Seller, 0, len(list)+1)
	next = append(next, list...)
	return append(next, seller), seller, nil
}

// Remove returns list without sellerID. It fails with ErrSellerHasSales when
// any sale references the seller. Unknown ids leave the list unchanged.
func Remove(list []Seller, recorded []sales.Sale, sellerID string) ([]Seller, error) {
	for _, sale := range recorded {
		if sale.SellerID == sellerID {
			return list, ErrSellerHasSales
		}
	}

	next := make([]Seller, 0, len(list))
	for _, s := range list {
		if s.ID != sellerID {
			next = append(next, s)
		}
	}
	return next, nil
}

// Find looks a seller up by id.
func Find(list []Seller, id string) (Seller, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Seller{}, false
}
