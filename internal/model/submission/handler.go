package submission

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/clients/budgetapi"
	"max.ks1230/budget-tracker/internal/logger"
)

const (
	FormID      = "transaction-form"
	TableBodyID = "transactions-body"

	SuccessMessage = "Transaction added successfully!"
	FailureMessage = "An error occurred while adding the transaction."
)

// ErrMissingTransaction means the server claimed success without echoing a transaction.
var ErrMissingTransaction = errors.New("response has no transaction")

type Event interface {
	PreventDefault()
}

type Form interface {
	// Values returns one value per field name; for repeated names the last one wins.
	Values() map[string]string
	Reset()
}

// Table receives rendered rows. Cells are plain text and must never be
// interpreted as markup.
type Table interface {
	AppendRow(cells []string)
}

type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Document locates the elements the handler is bound to.
type Document interface {
	Form(id string) (Form, bool)
	TableBody(id string) (Table, bool)
}

type transactionPoster interface {
	CreateTransaction(ctx context.Context, fields map[string]string) (budgetapi.Response, error)
}

type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeRejected
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeRejected:
		return "rejected"
	default:
		return "failed"
	}
}

type Result struct {
	Outcome Outcome
	Row     []string
	Message string
	Err     error
}

type Handler struct {
	client   transactionPoster
	form     Form
	table    Table
	notifier Notifier
}

func New(client transactionPoster, form Form, table Table, notifier Notifier) *Handler {
	return &Handler{
		client:   client,
		form:     form,
		table:    table,
		notifier: notifier,
	}
}

// Attach binds a handler to the transaction form and table body of doc.
func Attach(doc Document, client transactionPoster, notifier Notifier) (*Handler, error) {
	form, ok := doc.Form(FormID)
	if !ok {
		return nil, errors.Errorf("element %q not found", FormID)
	}
	table, ok := doc.TableBody(TableBodyID)
	if !ok {
		return nil, errors.Errorf("element %q not found", TableBodyID)
	}
	return New(client, form, table, notifier), nil
}

// HandleSubmit runs one submission: a single POST, no retries. It never
// leaves the handler unusable, whatever the outcome.
func (h *Handler) HandleSubmit(ctx context.Context, event Event) Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, "submitTransaction")
	defer span.Finish()

	event.PreventDefault()

	start := time.Now()
	res := h.submit(ctx)
	observeSubmission(time.Since(start), res.Outcome)

	span.SetTag("outcome", res.Outcome.String())
	if res.Outcome == OutcomeFailed {
		ext.Error.Set(span, true)
	}
	return res
}

func (h *Handler) submit(ctx context.Context) Result {
	fields := h.form.Values()

	resp, err := h.client.CreateTransaction(ctx, fields)
	if err == nil && resp.Transaction == nil {
		if _, rejected := resp.Failed(); !rejected {
			err = ErrMissingTransaction
		}
	}
	if err != nil {
		logger.Error("Error:", zap.Error(err))
		h.notifier.Notify(ctx, FailureMessage)
		return Result{Outcome: OutcomeFailed, Message: FailureMessage, Err: err}
	}

	if msg, rejected := resp.Failed(); rejected {
		h.notifier.Notify(ctx, msg)
		return Result{Outcome: OutcomeRejected, Message: msg}
	}

	row := resp.Transaction.Cells()
	h.table.AppendRow(row)
	h.notifier.Notify(ctx, SuccessMessage)
	h.form.Reset()
	return Result{Outcome: OutcomeAdded, Row: row, Message: SuccessMessage}
}
