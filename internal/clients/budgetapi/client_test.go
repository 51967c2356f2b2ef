package budgetapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OnCreateTransaction_ShouldPostFieldsAsJSON(t *testing.T) {
	var (
		gotMethod, gotPath, gotContentType string
		gotBody                            map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotContentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"message":"ok","transaction":{"id":1,"date":"2024-01-01","amount":"10","category_id":"2","notes":"x"}}`)
	}))
	defer srv.Close()

	fields := map[string]string{"date": "2024-01-01", "amount": "10", "category_id": "2", "notes": "x"}
	res, err := New(srv.URL+"/", srv.Client()).CreateTransaction(context.Background(), fields)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/transactions", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, fields, gotBody)

	_, failed := res.Failed()
	assert.False(t, failed)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, []string{"1", "2024-01-01", "10", "2", "x"}, res.Transaction.Cells())
}

func Test_OnCreateTransaction_ShouldExposeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"invalid amount"}`)
	}))
	defer srv.Close()

	res, err := New(srv.URL, nil).CreateTransaction(context.Background(), map[string]string{})
	require.NoError(t, err)

	msg, failed := res.Failed()
	assert.True(t, failed)
	assert.Equal(t, "invalid amount", msg)
}

func Test_OnCreateTransaction_ShouldFailOnNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).CreateTransaction(context.Background(), map[string]string{"a": "b"})

	assert.Error(t, err)
}

func Test_OnValue_ShouldRenderScalarsVerbatim(t *testing.T) {
	var res TransactionResult
	require.NoError(t, json.Unmarshal(
		[]byte(`{"id":17,"date":"2024-01-01","amount":10.5,"category_id":null,"notes":"<b>x</b>"}`), &res))

	assert.Equal(t, []string{"17", "2024-01-01", "10.5", "null", "<b>x</b>"}, res.Cells())
}

func Test_OnValue_ShouldRenderNullAndMissingLikeThePage(t *testing.T) {
	var res TransactionResult
	require.NoError(t, json.Unmarshal(
		[]byte(`{"id":1,"date":"2024-01-01","amount":"10","category_id":null,"notes":null}`), &res))
	assert.Equal(t, []string{"1", "2024-01-01", "10", "null", "null"}, res.Cells())

	var partial TransactionResult
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"amount":false}`), &partial))
	assert.Equal(t, []string{"2", "undefined", "false", "undefined", "undefined"}, partial.Cells())
}

func Test_OnValue_ShouldFollowJSONTruthiness(t *testing.T) {
	cases := map[string]bool{
		`{"error":"boom"}`: true,
		`{"error":""}`:     false,
		`{"error":null}`:   false,
		`{"error":false}`:  false,
		`{"error":0}`:      false,
		`{"error":1}`:      true,
		`{}`:               false,
	}
	for body, want := range cases {
		var res Response
		require.NoError(t, json.Unmarshal([]byte(body), &res), body)
		_, failed := res.Failed()
		assert.Equal(t, want, failed, body)
	}
}

func Test_OnListCategories_ShouldDecodeList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories", r.URL.Path)
		_, _ = io.WriteString(w, `{"categories":[{"id":1,"name":"Food"},{"id":2,"name":"Rent"}]}`)
	}))
	defer srv.Close()

	categories, err := New(srv.URL, nil).ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Category{{ID: 1, Name: "Food"}, {ID: 2, Name: "Rent"}}, categories)
}
