// Package httperr writes JSON responses and error bodies for the API.
package httperr

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	Reference string `json:"reference,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// BadRequest writes a 400 with msg.
func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// NotFound writes a 404 with msg.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Internal logs err under a fresh reference ID and writes a 500 that
// carries only the reference, so operators can find the log line without
// leaking driver errors to clients.
func Internal(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	ref := uuid.New().String()
	if log != nil {
		log.Error(operation,
			zap.String("reference", ref),
			zap.Error(err))
	}
	JSON(w, http.StatusInternalServerError, errorBody{
		Error:     "internal error",
		Reference: ref,
	})
}
