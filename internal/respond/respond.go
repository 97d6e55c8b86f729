// Package respond writes the JSON bodies shared by every tool handler.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Durability/internal/calc/calcerr"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("respond: encode body", "err", err)
	}
}

// Message writes a JSON error body with a fixed message.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// Error maps validation and configuration errors to 400 and everything else
// to 500. Internal details are logged, not returned.
func Error(w http.ResponseWriter, err error) {
	if calcerr.IsClientError(err) {
		Message(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("calculation failed", "err", err)
	Message(w, http.StatusInternalServerError, "Calculation error")
}
