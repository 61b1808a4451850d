package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/conference-checkout/internal/options"
	"github.com/Lixing-Zhang/conference-checkout/internal/repository"
	"github.com/Lixing-Zhang/conference-checkout/internal/service"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// WriteHTML writes an HTML fragment
func WriteHTML(w http.ResponseWriter, status int, body string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write([]byte(body)); err != nil {
		logger.Error("failed to write HTML response", "error", err)
	}
}

// ValidationResponse is returned with 422 when a checkout submission is rejected
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

// writeServiceError maps service and repository errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Errors: verr.Notices}, logger)
	case errors.Is(err, repository.ErrCartNotFound):
		WriteError(w, http.StatusNotFound, "Cart not found", logger)
	case errors.Is(err, repository.ErrCartConflict):
		WriteError(w, http.StatusConflict, "Cart was modified by another request, please retry", logger)
	case errors.Is(err, repository.ErrOrderNotFound):
		WriteError(w, http.StatusNotFound, "Order not found", logger)
	case errors.Is(err, service.ErrInvalidQuantity):
		WriteError(w, http.StatusBadRequest, "Quantity must be positive", logger)
	case errors.Is(err, service.ErrInvalidProduct):
		WriteError(w, http.StatusBadRequest, "Invalid product", logger)
	case errors.Is(err, service.ErrEmptyCart):
		WriteError(w, http.StatusBadRequest, "Cart must contain at least one item", logger)
	case errors.Is(err, options.ErrInvalidOptions):
		WriteError(w, http.StatusBadRequest, err.Error(), logger)
	default:
		logger.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
