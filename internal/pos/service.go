package pos

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos_sales/internal/metrics"
	"pos_sales/internal/sales"
	"pos_sales/internal/sellers"
)

var (
	ErrDraftNotFound  = errors.New("draft not found")
	ErrSellerNotFound = errors.New("seller not found")
	ErrNoSales        = errors.New("no sale has been recorded yet")
)

// Service owns the process-wide sale list, seller roster and open drafts.
// Every method runs under one lock, so the seller deletion guard and the
// sale append can never interleave.
type Service struct {
	mu       sync.Mutex
	storage  sales.Storage
	roster   []sellers.Seller
	ids      sellers.IDSource
	drafts   map[string][]sales.Item
	lastSale *sales.Sale

	logger  *zap.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = rec }
}

// NewService creates a new Service starting from the given roster.
func NewService(storage sales.Storage, roster []sellers.Seller, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	owned := make([]sellers.Seller, len(roster))
	copy(owned, roster)

	s := &Service{
		storage: storage,
		roster:  owned,
		ids:     sellers.NewSequence(sellers.MaxNumericID(owned)),
		drafts:  map[string][]sales.Item{},
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics.Sellers(len(s.roster))
	return s
}

// Sellers returns a copy of the roster.
func (s *Service) Sellers() []sellers.Seller {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]sellers.Seller, len(s.roster))
	copy(out, s.roster)
	return out
}

// Seller looks a seller up by id.
func (s *Service) Seller(id string) (sellers.Seller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sellers.Find(s.roster, id)
}

// AddSeller registers a new seller.
func (s *Service) AddSeller(name string) (sellers.Seller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, seller, err := sellers.Add(s.roster, name, s.ids)
	if err != nil {
		s.reject("add_seller", err)
		return sellers.Seller{}, err
	}
	s.roster = next
	s.metrics.Sellers(len(s.roster))

	s.logger.Info("seller added", zap.String("seller_id", seller.ID), zap.String("name", seller.Name))
	return seller, nil
}

// RemoveSeller deletes a seller that has no recorded sales.
func (s *Service) RemoveSeller(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := sellers.Find(s.roster, id); !ok {
		return ErrSellerNotFound
	}

	all, err := s.storage.GetAll()
	if err != nil {
		s.logger.Error("failed to get all sales from storage", zap.Error(err))
		return fmt.Errorf("failed to retrieve sales: %w", err)
	}

	next, err := sellers.Remove(s.roster, all, id)
	if err != nil {
		s.reject("remove_seller", err)
		s.logger.Warn("seller removal refused", zap.String("seller_id", id), zap.Error(err))
		return err
	}
	s.roster = next
	s.metrics.Sellers(len(s.roster))

	s.logger.Info("seller removed", zap.String("seller_id", id))
	return nil
}

// Draft is a sale under composition.
type Draft struct {
	ID    string          `json:"id"`
	Items []sales.Item    `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func newDraft(id string, items []sales.Item) Draft {
	if items == nil {
		items = []sales.Item{}
	}
	return Draft{ID: id, Items: items, Total: sales.ComputeTotal(items)}
}

// OpenDraft starts an empty draft.
func (s *Service) OpenDraft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.drafts[id] = nil
	return newDraft(id, nil)
}

// Draft returns the current state of a draft.
func (s *Service) Draft(id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return newDraft(id, items), nil
}

// AddDraftItem appends an item to a draft.
func (s *Service) AddDraftItem(id string, in sales.ItemInput) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}

	next, err := sales.AddItem(items, in)
	if err != nil {
		s.reject("add_item", err)
		return newDraft(id, items), err
	}
	s.drafts[id] = next
	return newDraft(id, next), nil
}

// RemoveDraftItem drops an item from a draft; unknown item ids are ignored.
func (s *Service) RemoveDraftItem(id, itemID string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	next := sales.RemoveItem(items, itemID)
	s.drafts[id] = next
	return newDraft(id, next), nil
}

// DiscardDraft forgets a draft.
func (s *Service) DiscardDraft(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[id]; !ok {
		return ErrDraftNotFound
	}
	delete(s.drafts, id)
	return nil
}

// CheckoutDraft saves the draft as a sale and discards it.
// On failure the draft is kept so the caller can correct and retry.
func (s *Service) CheckoutDraft(id, sellerID string, method sales.PaymentMethod) (sales.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.drafts[id]
	if !ok {
		return sales.Sale{}, ErrDraftNotFound
	}

	sale, err := s.save(sellerID, items, method)
	if err != nil {
		return sales.Sale{}, err
	}
	delete(s.drafts, id)
	return sale, nil
}

// CreateSale composes and saves a sale in one step.
func (s *Service) CreateSale(sellerID string, inputs []sales.ItemInput, method sales.PaymentMethod) (sales.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []sales.Item
	for _, in := range inputs {
		next, err := sales.AddItem(items, in)
		if err != nil {
			s.reject("create_sale", err)
			return sales.Sale{}, err
		}
		items = next
	}
	return s.save(sellerID, items, method)
}

// save must be called with s.mu held.
func (s *Service) save(sellerID string, items []sales.Item, method sales.PaymentMethod) (sales.Sale, error) {
	sale, err := sales.NewSale(sellerID, items, method, s.now())
	if err != nil {
		s.reject("save_sale", err)
		return sales.Sale{}, err
	}
	if _, ok := sellers.Find(s.roster, sellerID); !ok {
		s.reject("save_sale", sales.ErrUnknownSeller)
		return sales.Sale{}, sales.ErrUnknownSeller
	}

	if err := s.storage.Append(sale); err != nil {
		s.logger.Error("failed to save sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return sales.Sale{}, fmt.Errorf("failed to save sale: %w", err)
	}
	s.lastSale = &sale
	s.metrics.SaleSaved(string(sale.PaymentMethod), sale.Total.InexactFloat64())

	s.logger.Info("sale created",
		zap.String("sale_id", sale.ID),
		zap.String("seller_id", sale.SellerID),
		zap.Int("items", len(sale.Items)),
		zap.String("total", sale.Total.StringFixed(2)),
	)
	return sale, nil
}

// Sales returns every recorded sale in insertion order.
func (s *Service) Sales() ([]sales.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.GetAll()
}

// Sale returns one recorded sale.
func (s *Service) Sale(id string) (sales.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Read(id)
}

// LastSale returns the most recently saved sale.
func (s *Service) LastSale() (sales.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastSale == nil {
		return sales.Sale{}, ErrNoSales
	}
	return *s.lastSale, nil
}

// Report filters the recorded sales and computes total and commission.
func (s *Service) Report(c sales.Criteria, commissionPercent decimal.Decimal) (sales.Report, error) {
	all, err := s.Sales()
	if err != nil {
		s.logger.Error("failed to get all sales from storage", zap.Error(err))
		return sales.Report{}, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	report := sales.RunReport(all, c, commissionPercent)

	s.logger.Info("sales search completed",
		zap.String("seller_filter", c.SellerID),
		zap.Time("date_from", c.DateFrom),
		zap.Time("date_to", c.DateTo),
		zap.Int("results_count", len(report.Results)),
		zap.Stringer("state", report.State),
		zap.String("total_sales", report.Summary.TotalSales.StringFixed(2)),
	)
	return report, nil
}

// SellerClosing is one seller's line in the end-of-day closing.
type SellerClosing struct {
	SellerID   string        `json:"seller_id"`
	SellerName string        `json:"seller_name"`
	Count      int           `json:"count"`
	Summary    sales.Summary `json:"summary"`
}

// DailyClosing summarizes the given calendar day per seller, in roster order.
// Sellers without sales that day are omitted.
func (s *Service) DailyClosing(day time.Time, commissionPercent decimal.Decimal) ([]SellerClosing, error) {
	all, err := s.Sales()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}
	roster := s.Sellers()

	ofDay := sales.Filter(all, sales.Criteria{DateFrom: day, DateTo: day})
	closing := make([]SellerClosing, 0, len(roster))
	for _, seller := range roster {
		mine := sales.Filter(ofDay, sales.Criteria{SellerID: seller.ID})
		if len(mine) == 0 {
			continue
		}
		closing = append(closing, SellerClosing{
			SellerID:   seller.ID,
			SellerName: seller.Name,
			Count:      len(mine),
			Summary:    sales.Summarize(mine, commissionPercent),
		})
	}
	return closing, nil
}

func (s *Service) reject(op string, err error) {
	switch {
	case sales.IsValidation(err):
		s.metrics.Rejected(op, "validation")
	case sales.IsConstraint(err):
		s.metrics.Rejected(op, "constraint")
	}
}
