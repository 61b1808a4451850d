package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger  *slog.Logger
	storage string
}

// NewHealthHandler creates a new health handler. storage names the active storage driver.
func NewHealthHandler(logger *slog.Logger, storage string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		storage: storage,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Storage   string    `json:"storage"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Storage:   h.storage,
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}, h.logger)
}
