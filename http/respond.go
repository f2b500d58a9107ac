package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"cosmossdk.io/log"

	"finlear/service"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

// decodeJSON reads a JSON request body into v. An empty Content-Type is
// accepted; anything other than application/json is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			writeJSON(w, nil, http.StatusUnsupportedMediaType, errorBody{"Content-Type must be application/json"})
			return false
		}
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, nil, http.StatusBadRequest, errorBody{"invalid request body"})
		return false
	}
	return true
}

// writeJSON encodes into a buffer first so a failed encode can still report 500.
func writeJSON(w http.ResponseWriter, logger log.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		if logger != nil {
			logger.Error("failed to encode response", "error", err)
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil && logger != nil {
		logger.Error("failed to write response", "error", err)
	}
}

// statusFor maps service errors to an HTTP status and the message the client sees.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrZeroIncome):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limits exceeded, please try again later."
	case errors.Is(err, service.ErrPaymentRequired):
		return http.StatusPaymentRequired, "Payment required, please add funds to your AI workspace."
	case errors.Is(err, service.ErrGateway):
		return http.StatusInternalServerError, "AI gateway error"
	case errors.Is(err, service.ErrNotConfigured), errors.Is(err, service.ErrVideoAPI):
		return http.StatusInternalServerError, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func writeError(w http.ResponseWriter, logger log.Logger, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, logger, status, errorBody{msg})
}

func errorf(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, nil, status, errorBody{fmt.Sprintf(format, args...)})
}
