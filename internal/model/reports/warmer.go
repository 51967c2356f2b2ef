package reports

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
)

type reportStore interface {
	CacheReport(report budget.Report) error
}

// Warmer rebuilds every cached report after a transaction changes, so the
// first reader after a write does not pay for generation.
type Warmer struct {
	generator *Generator
	store     reportStore
}

func NewWarmer(generator *Generator, store reportStore) *Warmer {
	return &Warmer{
		generator: generator,
		store:     store,
	}
}

func (w *Warmer) HandleTransactionEvent(ctx context.Context, event budget.TransactionEvent) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "warmReports")
	defer func() {
		if err != nil {
			ext.Error.Set(span, true)
		}
		span.Finish()
	}()
	span.SetTag("eventID", event.ID)

	logger.Info("warming reports",
		zap.String("eventID", event.ID),
		zap.String("kind", string(event.Kind)))

	for _, period := range w.generator.Periods() {
		report, genErr := w.generator.GenerateReport(ctx, period)
		if genErr != nil {
			return errors.Wrap(genErr, "warm reports")
		}
		if err = w.store.CacheReport(report); err != nil {
			return errors.Wrap(err, "warm reports")
		}
	}
	return nil
}
