package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// flexString accepts a JSON string or number. Forms post strings while API
// clients tend to send numbers for amount and category_id.
type flexString struct {
	Value string
	Set   bool
}

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = flexString{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString{Value: s, Set: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Errorf("expected string or number, got %s", data)
	}
	*f = flexString{Value: n.String(), Set: true}
	return nil
}

func (f flexString) ptr() *string {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

type categoryRequest struct {
	Name flexString `json:"name"`
}

type transactionRequest struct {
	Date       flexString `json:"date"`
	Amount     flexString `json:"amount"`
	CategoryID flexString `json:"category_id"`
	Notes      flexString `json:"notes"`
}

func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID reads the {id} parameter; the route pattern already limits it to digits.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
