package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperr "github.com/parthgupta9/splitr/internal/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	message := err.Error()
	if code == apperr.CodeInternal {
		// Internal details stay in the logs.
		slog.Error("internal error", "error", err)
		message = "internal error"
	}
	writeJSON(w, code.HTTPStatus(), errorBody{
		Error: errorDetail{Code: string(code), Message: message},
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, apperr.Invalid("malformed request body: %v", err))
		return false
	}
	return true
}
