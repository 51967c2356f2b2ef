package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
)

type budgetStorage interface {
	AddCategory(ctx context.Context, name string) (budget.Category, error)
	GetCategory(ctx context.Context, id int64) (budget.Category, error)
	FindCategoryByName(ctx context.Context, name string) (budget.Category, error)
	ListCategories(ctx context.Context) ([]budget.Category, error)
	RenameCategory(ctx context.Context, id int64, name string) (budget.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	AddTransaction(ctx context.Context, tx budget.Transaction) (budget.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (budget.Transaction, error)
	ListTransactions(ctx context.Context) ([]budget.TransactionView, error)
	SaveTransaction(ctx context.Context, tx budget.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
}

type reportGenerator interface {
	GenerateReport(ctx context.Context, period string) (budget.Report, error)
	Periods() []string
}

type reportCache interface {
	CacheReport(report budget.Report) error
	GetReport(period string) (budget.Report, error)
	InvalidateReports(periods []string) error
}

type eventPublisher interface {
	PublishTransactionEvent(ctx context.Context, event budget.TransactionEvent) error
}

type Option func(s *Service)

func WithCache(cache reportCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithPublisher(publisher eventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// Service holds the bookkeeping rules for categories and transactions.
type Service struct {
	storage   budgetStorage
	reports   reportGenerator
	cache     reportCache
	publisher eventPublisher
	now       func() time.Time

	// generation counts report invalidations; a report built across one is
	// not cached.
	cacheMu    sync.Mutex
	generation uint64
}

func NewService(storage budgetStorage, reports reportGenerator, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		reports: reports,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Report(ctx context.Context, period string) (report budget.Report, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "report")
	defer finishSpan(span, &err)
	span.SetTag("period", period)

	if !s.knownPeriod(period) {
		return budget.Report{}, validation(msgUnsupportedPeriod)
	}

	if s.cache != nil {
		cached, cacheErr := s.cache.GetReport(period)
		if cacheErr == nil {
			return cached, nil
		}
		logger.Debug("report cache miss", zap.String("period", period), zap.Error(cacheErr))
	}

	generation := s.reportGeneration()

	report, err = s.reports.GenerateReport(ctx, period)
	if err != nil {
		return budget.Report{}, errors.Wrap(err, "report")
	}

	if s.cache != nil {
		s.cacheReport(report, generation)
	}
	return report, nil
}

func (s *Service) reportGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generation
}

// cacheReport stores report unless reports were invalidated after it was
// started at generation.
func (s *Service) cacheReport(report budget.Report, generation uint64) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.generation != generation {
		logger.Debug("report outdated by a write, not caching", zap.String("period", report.Period))
		return
	}
	if err := s.cache.CacheReport(report); err != nil {
		logger.Error("failed to cache report", zap.String("period", report.Period), zap.Error(err))
	}
}

func (s *Service) knownPeriod(period string) bool {
	for _, p := range s.reports.Periods() {
		if p == period {
			return true
		}
	}
	return false
}

// afterWrite drops cached reports and announces the change, best effort.
func (s *Service) afterWrite(ctx context.Context, kind budget.EventKind, tx budget.Transaction) {
	s.invalidateReports()
	if s.publisher != nil {
		event := budget.TransactionEvent{
			ID:          uuid.NewString(),
			Kind:        kind,
			Transaction: tx,
			OccurredAt:  s.now(),
		}
		if err := s.publisher.PublishTransactionEvent(ctx, event); err != nil {
			logger.Error("failed to publish transaction event",
				zap.String("kind", string(kind)),
				zap.Int64("transactionID", tx.ID),
				zap.Error(err))
		}
	}
}

func (s *Service) invalidateReports() {
	if s.cache == nil {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.generation++
	if err := s.cache.InvalidateReports(s.reports.Periods()); err != nil {
		logger.Error("failed to invalidate reports", zap.Error(err))
	}
}

func finishSpan(span opentracing.Span, err *error) {
	if *err != nil {
		ext.Error.Set(span, true)
	}
	span.Finish()
}
