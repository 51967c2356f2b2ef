package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/budget-tracker/internal/logger"
	"max.ks1230/budget-tracker/internal/model/customerr"
)

const (
	msgInvalidBody = "Invalid JSON body"
	msgInternal    = "Internal server error"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

// writeErr maps business errors to their status codes; anything else is
// logged and hidden behind a generic 500.
func writeErr(w http.ResponseWriter, err error) {
	var (
		validation *customerr.ValidationError
		notFound   *customerr.NotFoundError
		conflict   *customerr.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		writeMessage(w, http.StatusBadRequest, validation.Err)
	case errors.As(err, &notFound):
		writeMessage(w, http.StatusNotFound, notFound.Err)
	case errors.As(err, &conflict):
		writeMessage(w, http.StatusConflict, conflict.Err)
	default:
		logger.Error("request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}
