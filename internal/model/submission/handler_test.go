package submission

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"max.ks1230/budget-tracker/internal/clients/budgetapi"
)

type submitEvent struct {
	prevented int
}

func (e *submitEvent) PreventDefault() {
	e.prevented++
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) {
	n.messages = append(n.messages, message)
}

type posterMock struct {
	mock.Mock
}

func (m *posterMock) CreateTransaction(ctx context.Context, fields map[string]string) (budgetapi.Response, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(budgetapi.Response), args.Error(1)
}

type page struct {
	form  *FieldForm
	table *RowBuffer
}

func (p page) Form(id string) (Form, bool) {
	if id != FormID || p.form == nil {
		return nil, false
	}
	return p.form, true
}

func (p page) TableBody(id string) (Table, bool) {
	if id != TableBodyID || p.table == nil {
		return nil, false
	}
	return p.table, true
}

// fakeServer answers every request with body and counts POSTs to /transactions.
func fakeServer(t *testing.T, status int, body string) (*httptest.Server, *int32, *map[string]string) {
	t.Helper()
	var posts int32
	received := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/transactions" {
			atomic.AddInt32(&posts, 1)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			raw, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(raw, &received))
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &posts, &received
}

func filledForm() *FieldForm {
	form := NewFieldForm(nil)
	form.Set("date", "2024-01-01")
	form.Set("amount", "10")
	form.Set("category_id", "2")
	form.Set("notes", "x")
	return form
}

func Test_OnSubmit_ShouldPostOnceAppendRowAndResetForm(t *testing.T) {
	srv, posts, received := fakeServer(t, http.StatusCreated,
		`{"transaction": {"id":1,"date":"2024-01-01","amount":"10","category_id":"2","notes":"x"}}`)
	form, table, notifier := filledForm(), &RowBuffer{}, &recordingNotifier{}
	event := &submitEvent{}

	res := New(budgetapi.New(srv.URL, srv.Client()), form, table, notifier).
		HandleSubmit(context.Background(), event)

	assert.Equal(t, OutcomeAdded, res.Outcome)
	assert.Equal(t, 1, event.prevented)
	assert.Equal(t, int32(1), atomic.LoadInt32(posts))
	assert.Equal(t, map[string]string{"date": "2024-01-01", "amount": "10", "category_id": "2", "notes": "x"}, *received)
	assert.Equal(t, [][]string{{"1", "2024-01-01", "10", "2", "x"}}, table.Rows())
	assert.Equal(t, []string{"Transaction added successfully!"}, notifier.messages)
	assert.Empty(t, form.Values())
}

func Test_OnSubmit_ShouldNotifyServerErrorAndKeepForm(t *testing.T) {
	srv, posts, _ := fakeServer(t, http.StatusBadRequest, `{"error":"invalid amount"}`)
	form, table, notifier := filledForm(), &RowBuffer{}, &recordingNotifier{}
	before := form.Values()

	res := New(budgetapi.New(srv.URL, nil), form, table, notifier).
		HandleSubmit(context.Background(), &submitEvent{})

	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, int32(1), atomic.LoadInt32(posts))
	assert.Equal(t, []string{"invalid amount"}, notifier.messages)
	assert.Empty(t, table.Rows())
	assert.Equal(t, before, form.Values())
}

func Test_OnSubmit_ShouldShowGenericMessageWhenRequestFails(t *testing.T) {
	poster := &posterMock{}
	poster.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(budgetapi.Response{}, errors.New("connection refused")).Once()
	form, table, notifier := filledForm(), &RowBuffer{}, &recordingNotifier{}
	event := &submitEvent{}

	res := New(poster, form, table, notifier).HandleSubmit(context.Background(), event)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.EqualError(t, res.Err, "connection refused")
	assert.Equal(t, 1, event.prevented)
	assert.Equal(t, []string{"An error occurred while adding the transaction."}, notifier.messages)
	assert.Empty(t, table.Rows())
	assert.NotEmpty(t, form.Values())
	poster.AssertExpectations(t)
}

func Test_OnSubmit_ShouldTreatUnparsableResponseAsFailure(t *testing.T) {
	srv, _, _ := fakeServer(t, http.StatusInternalServerError, `<html>oops</html>`)
	notifier := &recordingNotifier{}

	res := New(budgetapi.New(srv.URL, nil), filledForm(), &RowBuffer{}, notifier).
		HandleSubmit(context.Background(), &submitEvent{})

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, []string{FailureMessage}, notifier.messages)
}

func Test_OnSubmit_ShouldTreatSuccessWithoutTransactionAsFailure(t *testing.T) {
	srv, _, _ := fakeServer(t, http.StatusOK, `{"message":"ok"}`)
	table := &RowBuffer{}

	res := New(budgetapi.New(srv.URL, nil), filledForm(), table, &recordingNotifier{}).
		HandleSubmit(context.Background(), &submitEvent{})

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.True(t, errors.Is(res.Err, ErrMissingTransaction))
	assert.Empty(t, table.Rows())
}

func Test_OnSubmit_ShouldKeepMarkupAsPlainText(t *testing.T) {
	srv, _, _ := fakeServer(t, http.StatusCreated,
		`{"transaction": {"id":3,"date":"2024-01-02","amount":"1","category_id":1,"notes":"<img src=x onerror=alert(1)>"}}`)
	table := &RowBuffer{}

	New(budgetapi.New(srv.URL, nil), filledForm(), table, &recordingNotifier{}).
		HandleSubmit(context.Background(), &submitEvent{})

	require.Len(t, table.Rows(), 1)
	assert.Equal(t, "<img src=x onerror=alert(1)>", table.Rows()[0][4])
}

func Test_OnSubmit_ShouldStayUsableAfterFailure(t *testing.T) {
	poster := &posterMock{}
	poster.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(budgetapi.Response{}, errors.New("timeout")).Once()
	ok := budgetapi.Response{}
	require.NoError(t, json.Unmarshal(
		[]byte(`{"transaction":{"id":2,"date":"2024-01-01","amount":"5","category_id":"1","notes":""}}`), &ok))
	poster.On("CreateTransaction", mock.Anything, mock.Anything).Return(ok, nil).Once()

	table := &RowBuffer{}
	h := New(poster, filledForm(), table, &recordingNotifier{})

	assert.Equal(t, OutcomeFailed, h.HandleSubmit(context.Background(), &submitEvent{}).Outcome)
	assert.Equal(t, OutcomeAdded, h.HandleSubmit(context.Background(), &submitEvent{}).Outcome)
	assert.Len(t, table.Rows(), 1)
}

func Test_OnAttach_ShouldRequireFormAndTableBody(t *testing.T) {
	poster := &posterMock{}

	_, err := Attach(page{table: &RowBuffer{}}, poster, &recordingNotifier{})
	assert.EqualError(t, err, `element "transaction-form" not found`)

	_, err = Attach(page{form: NewFieldForm(nil)}, poster, &recordingNotifier{})
	assert.EqualError(t, err, `element "transactions-body" not found`)

	h, err := Attach(page{form: NewFieldForm(nil), table: &RowBuffer{}}, poster, &recordingNotifier{})
	require.NoError(t, err)
	assert.NotNil(t, h)
}

func Test_OnParseFields_ShouldKeepLastValueForRepeatedName(t *testing.T) {
	fields, err := ParseFields([]string{"amount=1", "notes=a=b", "amount=2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"amount": "2", "notes": "a=b"}, fields)

	_, err = ParseFields([]string{"=oops"})
	assert.Error(t, err)
}

func Test_OnFieldFormReset_ShouldRestoreDefaults(t *testing.T) {
	form := NewFieldForm(map[string]string{"date": "2024-01-01"})
	form.Set("date", "2024-02-02")
	form.Set("amount", "3")

	form.Reset()

	assert.Equal(t, map[string]string{"date": "2024-01-01"}, form.Values())
}
