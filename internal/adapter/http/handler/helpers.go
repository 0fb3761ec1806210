package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cajafund/cajafund/internal/adapter/http/dto"
	"github.com/cajafund/cajafund/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	if _, ok := domain.AsValidationError(err); ok {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrLoanNotFound),
		errors.Is(err, domain.ErrInstallmentNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateMember),
		errors.Is(err, domain.ErrMemberHasOpenLoans),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrLoanTerminated),
		errors.Is(err, domain.ErrLoanNotApproved):
		return http.StatusConflict
	case errors.Is(err, domain.ErrMemberInactive),
		errors.Is(err, domain.ErrInvalidTerm),
		errors.Is(err, domain.ErrMalformedAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses a date-only query parameter with a default value.
func parseDateQuery(r *http.Request, key string, defaultValue time.Time) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue, nil
	}

	return time.Parse(time.DateOnly, val)
}
