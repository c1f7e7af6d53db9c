// Package respond writes JSON bodies and maps domain errors to status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
)

type errorResponse struct {
	Error        string `json:"error"`
	Field        string `json:"field,omitempty"`
	UnpaidFines  *int   `json:"unpaid_fines,omitempty"`
	OverdueLoans *int   `json:"overdue_loans,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status of its kind. Unclassified errors are
// logged and reported as a bare internal error.
func Error(w http.ResponseWriter, err error) {
	var (
		verr *apperr.ValidationError
		rerr *apperr.RestrictedError
	)

	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, apperr.ErrValidation):
		JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &rerr):
		JSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:        err.Error(),
			UnpaidFines:  &rerr.UnpaidFines,
			OverdueLoans: &rerr.OverdueLoans,
		})
	case errors.Is(err, apperr.ErrCustomerRestricted):
		JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		JSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Status writes a plain error message with the given status.
func Status(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("body", err.Error())
	}

	return nil
}
