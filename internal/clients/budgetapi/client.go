package budgetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/logger"
)

const (
	transactionsPath = "/transactions"
	categoriesPath   = "/categories"
	contentTypeJSON  = "application/json"
)

// TransactionResult is the created transaction as echoed by the server.
type TransactionResult struct {
	ID         Value `json:"id"`
	Date       Value `json:"date"`
	Amount     Value `json:"amount"`
	CategoryID Value `json:"category_id"`
	Notes      Value `json:"notes"`
}

// Cells lists the values in table column order.
func (t TransactionResult) Cells() []string {
	return []string{
		t.ID.Text(),
		t.Date.Text(),
		t.Amount.Text(),
		t.CategoryID.Text(),
		t.Notes.Text(),
	}
}

type Response struct {
	Error       Value              `json:"error"`
	Message     string             `json:"message"`
	Transaction *TransactionResult `json:"transaction"`
}

// Failed reports a server-side rejection and its message.
func (r Response) Failed() (string, bool) {
	if !r.Error.Truthy() {
		return "", false
	}
	return r.Error.Text(), true
}

type TransactionRow struct {
	ID       Value `json:"id"`
	Date     Value `json:"date"`
	Amount   Value `json:"amount"`
	Category Value `json:"category"`
	Notes    Value `json:"notes"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the server at baseURL. A nil httpClient means
// http.DefaultClient; no timeout is imposed beyond the caller's context.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// CreateTransaction posts the form fields as a JSON object. Any status code is
// accepted as long as the body is JSON; the error field decides the outcome.
func (c *Client) CreateTransaction(ctx context.Context, fields map[string]string) (Response, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "postTransaction")
	defer span.Finish()

	body, err := json.Marshal(fields)
	if err != nil {
		return Response{}, errors.Wrap(err, "encode fields")
	}

	var res Response
	if err = c.do(ctx, http.MethodPost, transactionsPath, body, &res); err != nil {
		return Response{}, errors.Wrap(err, "create transaction")
	}
	return res, nil
}

func (c *Client) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	var res struct {
		Error        Value            `json:"error"`
		Transactions []TransactionRow `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, transactionsPath, nil, &res); err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	if res.Error.Truthy() {
		return nil, errors.New(res.Error.Text())
	}
	return res.Transactions, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var res struct {
		Error      Value      `json:"error"`
		Categories []Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, categoriesPath, nil, &res); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	if res.Error.Truthy() {
		return nil, errors.New(res.Error.Text())
	}
	return res.Categories, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("error closing response body", zap.Error(closeErr))
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "unmarshalling response (status %d)", resp.StatusCode)
	}
	return nil
}
