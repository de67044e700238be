package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// serviceError maps service-layer sentinel errors to HTTP responses.
// Anything unrecognized becomes a 500 without leaking detail.
func (s *HTTPServer) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		errorJSON(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, common.ErrorAlreadyExists):
		errorJSON(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, common.ErrorUnauthorized):
		errorJSON(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, common.ErrorNotFound):
		errorJSON(w, http.StatusNotFound, "Item not found")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		errorJSON(w, http.StatusInternalServerError, "Server error")
	}
}

// validationMessage extracts the human-readable part of a wrapped
// validation error, e.g. "validation error: title is required".
func validationMessage(err error) string {
	msg := err.Error()
	prefix := common.ErrorValidation.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return msg[len(prefix):]
	}
	return common.ErrorValidation.Error()
}
