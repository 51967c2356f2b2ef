package budgetapi

import (
	"bytes"
	"encoding/json"
)

// Value keeps a JSON scalar exactly as the server sent it.
type Value struct {
	raw json.RawMessage
}

func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Present reports whether the field was in the response at all.
func (v Value) Present() bool {
	return len(v.raw) > 0
}

const missingText = "undefined"

// Text renders the value for display the way the page script does: strings
// without quotes, everything else as written, null as "null" and a missing
// field as "undefined".
func (v Value) Text() string {
	if !v.Present() {
		return missingText
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err == nil {
		return s
	}
	return string(v.raw)
}

// Truthy follows the usual JSON truthiness: missing, null, false, 0 and ""
// are false.
func (v Value) Truthy() bool {
	if !v.Present() {
		return false
	}
	switch string(bytes.TrimSpace(v.raw)) {
	case "null", "false", `""`:
		return false
	}
	var n float64
	if err := json.Unmarshal(v.raw, &n); err == nil {
		return n != 0
	}
	return true
}
