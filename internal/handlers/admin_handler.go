package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/conference-checkout/internal/middleware"
	"github.com/Lixing-Zhang/conference-checkout/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxOptionsBytes = 64 << 10

// AdminHandler serves administrator views and settings
type AdminHandler struct {
	checkout *service.CheckoutService
	log      *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(checkout *service.CheckoutService, log *slog.Logger) *AdminHandler {
	return &AdminHandler{
		checkout: checkout,
		log:      log,
	}
}

// OrderDetails handles GET /api/admin/orders/{orderId}
func (h *AdminHandler) OrderDetails(w http.ResponseWriter, r *http.Request) {
	html, err := h.checkout.AdminOrderHTML(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}
	WriteHTML(w, http.StatusOK, html, h.log)
}

// GetOptions handles GET /api/admin/options
func (h *AdminHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.checkout.Options(r.Context())
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, opts, h.log)
}

// UpdateOptions handles PUT /api/admin/options with a partial JSON object
func (h *AdminHandler) UpdateOptions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxOptionsBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	opts, err := h.checkout.UpdateOptions(r.Context(), body)
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}

	subject, _ := r.Context().Value(middleware.AdminSubjectKey).(string)
	h.log.Info("options changed by administrator", "admin", subject)
	WriteJSON(w, http.StatusOK, opts, h.log)
}
