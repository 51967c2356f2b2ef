package reports

import (
	"context"
	"sort"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
)

const (
	PeriodAll   = ""
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

var periods = []string{PeriodAll, PeriodWeek, PeriodMonth, PeriodYear}

type transactionsStorage interface {
	ListTransactions(ctx context.Context) ([]budget.TransactionView, error)
}

type Generator struct {
	storage transactionsStorage
	now     func() time.Time
}

func NewGenerator(storage transactionsStorage) *Generator {
	return &Generator{
		storage: storage,
		now:     time.Now,
	}
}

func (g *Generator) GenerateReport(ctx context.Context, period string) (budget.Report, error) {
	logger.Info("GenerateReport - start", zap.String("period", period))
	defer logger.Info("GenerateReport - end")

	start, ok := periodStart(period, g.now().UTC())
	if !ok {
		return budget.Report{}, errors.Errorf("report period %q is not supported", period)
	}

	txs, err := g.storage.ListTransactions(ctx)
	if err != nil {
		return budget.Report{}, errors.Wrap(err, "generate report")
	}

	report := groupByCategory(filterFrom(txs, start))
	report.Period = period
	return report, nil
}

// Periods lists the accepted period names; "" means all time.
func (g *Generator) Periods() []string {
	res := make([]string, len(periods))
	copy(res, periods)
	return res
}

func periodStart(period string, at time.Time) (time.Time, bool) {
	n := now.With(at)
	switch period {
	case PeriodAll:
		return time.Time{}, true
	case PeriodWeek:
		return n.BeginningOfWeek(), true
	case PeriodMonth:
		return n.BeginningOfMonth(), true
	case PeriodYear:
		return n.BeginningOfYear(), true
	}
	return time.Time{}, false
}

func filterFrom(txs []budget.TransactionView, start time.Time) []budget.TransactionView {
	res := make([]budget.TransactionView, 0, len(txs))
	for _, tx := range txs {
		if !tx.Date.Before(start) {
			res = append(res, tx)
		}
	}
	return res
}

func groupByCategory(txs []budget.TransactionView) budget.Report {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}

	records := make([]budget.ReportRecord, 0, len(sums))
	total := decimal.Zero
	for cat, amount := range sums {
		records = append(records, budget.ReportRecord{Category: cat, Amount: amount})
		total = total.Add(amount)
	}
	sort.Slice(records, func(i, j int) bool {
		if c := records[i].Amount.Cmp(records[j].Amount); c != 0 {
			return c > 0
		}
		return records[i].Category < records[j].Category
	})

	return budget.Report{
		Records: records,
		Total:   total,
	}
}
