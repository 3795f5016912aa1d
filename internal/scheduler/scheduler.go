package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos_sales/internal/pos"
)

// Scheduler runs the end-of-day closing job.
type Scheduler struct {
	cron       *cron.Cron
	svc        *pos.Service
	schedule   string
	commission decimal.Decimal
	loc        *time.Location
	logger     *zap.Logger
}

// NewScheduler creates a scheduler whose cron expressions are evaluated in loc.
func NewScheduler(svc *pos.Service, schedule string, commission decimal.Decimal, loc *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		svc:        svc,
		schedule:   schedule,
		commission: commission,
		loc:        loc,
		logger:     logger,
	}
}

// Start registers the closing job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, func() { s.CloseDay(time.Now()) }); err != nil {
		return fmt.Errorf("schedule daily closing: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// CloseDay logs the per-seller closing of the calendar day containing at.
func (s *Scheduler) CloseDay(at time.Time) []pos.SellerClosing {
	day := at.In(s.loc)
	closing, err := s.svc.DailyClosing(day, s.commission)
	if err != nil {
		s.logger.Error("failed to build daily closing", zap.Error(err))
		return nil
	}

	if len(closing) == 0 {
		s.logger.Info("daily closing: no sales", zap.String("date", day.Format("2006-01-02")))
		return closing
	}

	for _, c := range closing {
		s.logger.Info("daily closing",
			zap.String("date", day.Format("2006-01-02")),
			zap.String("seller_id", c.SellerID),
			zap.String("seller", c.SellerName),
			zap.Int("sales", c.Count),
			zap.String("total_sales", c.Summary.TotalSales.StringFixed(2)),
			zap.String("commission", c.Summary.Commission.StringFixed(2)),
		)
	}
	return closing
}
