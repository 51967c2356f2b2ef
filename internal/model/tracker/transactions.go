package tracker

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/entity/budget"
	"max.ks1230/budget-tracker/internal/logger"
	"max.ks1230/budget-tracker/internal/model/customerr"
)

const amountScale = 2

var amountLimit = decimal.New(1, 12)

// TransactionInput holds raw field values as they arrive from a form.
type TransactionInput struct {
	Date       string
	Amount     string
	CategoryID string
	Notes      string
}

// TransactionPatch changes only the fields that are set.
type TransactionPatch struct {
	Date       *string
	Amount     *string
	CategoryID *string
	Notes      *string
}

func (s *Service) CreateTransaction(ctx context.Context, in TransactionInput) (tx budget.Transaction, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "createTransaction")
	defer finishSpan(span, &err)

	if strings.TrimSpace(in.Date) == "" ||
		strings.TrimSpace(in.Amount) == "" ||
		strings.TrimSpace(in.CategoryID) == "" {
		return budget.Transaction{}, validation(msgTransactionFieldsRequired)
	}

	if tx.Date, err = parseDate(in.Date); err != nil {
		return budget.Transaction{}, err
	}
	if tx.Amount, err = parseAmount(in.Amount); err != nil {
		return budget.Transaction{}, err
	}
	if tx.CategoryID, err = parseCategoryID(in.CategoryID); err != nil {
		return budget.Transaction{}, err
	}
	if tx.Notes, err = checkNotes(in.Notes); err != nil {
		return budget.Transaction{}, err
	}

	if err = s.ensureCategory(ctx, tx.CategoryID); err != nil {
		return budget.Transaction{}, err
	}

	tx, err = s.storage.AddTransaction(ctx, tx)
	if errors.Is(err, customerr.ErrMissingReference) {
		return budget.Transaction{}, notFound(msgCategoryNotFound)
	}
	if err != nil {
		return budget.Transaction{}, errors.Wrap(err, "create transaction")
	}
	span.SetTag("transactionID", tx.ID)
	logger.Info("transaction created",
		zap.Int64("transactionID", tx.ID),
		zap.Int64("categoryID", tx.CategoryID),
		zap.String("amount", tx.Amount.String()))

	s.afterWrite(ctx, budget.EventCreated, tx)
	return tx, nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]budget.TransactionView, error) {
	views, err := s.storage.ListTransactions(ctx)
	return views, errors.Wrap(err, "list transactions")
}

func (s *Service) UpdateTransaction(ctx context.Context, id int64, patch TransactionPatch) (tx budget.Transaction, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "updateTransaction")
	defer finishSpan(span, &err)
	span.SetTag("transactionID", id)

	tx, err = s.storage.GetTransaction(ctx, id)
	if errors.Is(err, customerr.ErrNotFound) {
		return budget.Transaction{}, notFound(msgTransactionNotFound)
	}
	if err != nil {
		return budget.Transaction{}, errors.Wrap(err, "update transaction")
	}

	if patch.Date != nil {
		if tx.Date, err = parseDate(*patch.Date); err != nil {
			return budget.Transaction{}, err
		}
	}
	if patch.Amount != nil {
		if tx.Amount, err = parseAmount(*patch.Amount); err != nil {
			return budget.Transaction{}, err
		}
	}
	if patch.Notes != nil {
		if tx.Notes, err = checkNotes(*patch.Notes); err != nil {
			return budget.Transaction{}, err
		}
	}
	if patch.CategoryID != nil {
		if tx.CategoryID, err = parseCategoryID(*patch.CategoryID); err != nil {
			return budget.Transaction{}, err
		}
		if err = s.ensureCategory(ctx, tx.CategoryID); err != nil {
			return budget.Transaction{}, err
		}
	}

	err = s.storage.SaveTransaction(ctx, tx)
	switch {
	case errors.Is(err, customerr.ErrMissingReference):
		return budget.Transaction{}, notFound(msgCategoryNotFound)
	case errors.Is(err, customerr.ErrNotFound):
		return budget.Transaction{}, notFound(msgTransactionNotFound)
	}
	if err != nil {
		return budget.Transaction{}, errors.Wrap(err, "update transaction")
	}
	logger.Info("transaction updated", zap.Int64("transactionID", id))

	s.afterWrite(ctx, budget.EventUpdated, tx)
	return tx, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id int64) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "deleteTransaction")
	defer finishSpan(span, &err)
	span.SetTag("transactionID", id)

	tx, err := s.storage.GetTransaction(ctx, id)
	if errors.Is(err, customerr.ErrNotFound) {
		return notFound(msgTransactionNotFound)
	}
	if err != nil {
		return errors.Wrap(err, "delete transaction")
	}

	err = s.storage.DeleteTransaction(ctx, id)
	if errors.Is(err, customerr.ErrNotFound) {
		return notFound(msgTransactionNotFound)
	}
	if err != nil {
		return errors.Wrap(err, "delete transaction")
	}
	logger.Info("transaction deleted", zap.Int64("transactionID", id))

	s.afterWrite(ctx, budget.EventDeleted, tx)
	return nil
}

func (s *Service) ensureCategory(ctx context.Context, id int64) error {
	_, err := s.storage.GetCategory(ctx, id)
	if errors.Is(err, customerr.ErrNotFound) {
		return notFound(msgCategoryNotFound)
	}
	return errors.Wrap(err, "check category")
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.ParseInLocation(budget.DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, validation(msgInvalidDate)
	}
	return date, nil
}

// parseAmount accepts what fits the stored NUMERIC(14, 2): at most two
// decimal places and an absolute value below 10^12.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, validation(msgInvalidAmount)
	}
	if !amount.Equal(amount.Round(amountScale)) || amount.Abs().GreaterThanOrEqual(amountLimit) {
		return decimal.Decimal{}, validation(msgInvalidAmount)
	}
	return amount, nil
}

func parseCategoryID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, validation(msgInvalidCategoryID)
	}
	return id, nil
}

func checkNotes(notes string) (string, error) {
	if utf8.RuneCountInString(notes) > maxNotes {
		return "", validation(msgNotesTooLong)
	}
	return notes, nil
}
