package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/conference-checkout/internal/service"
	"github.com/go-chi/chi/v5"
)

// CheckoutHandler serves the checkout form and accepts submissions
type CheckoutHandler struct {
	checkout *service.CheckoutService
	log      *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout *service.CheckoutService, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		log:      log,
	}
}

// Form handles GET /api/cart/{cartId}/checkout
func (h *CheckoutHandler) Form(w http.ResponseWriter, r *http.Request) {
	form, err := h.checkout.CheckoutForm(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, form, h.log)
}

// Validate handles POST /api/cart/{cartId}/checkout/validate
func (h *CheckoutHandler) Validate(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(w, r)
	if err != nil {
		h.log.Warn("invalid checkout submission", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	result, err := h.checkout.Validate(r.Context(), chi.URLParam(r, "cartId"), sub)
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, result, h.log)
}

// PlaceOrder handles POST /api/cart/{cartId}/checkout
//   - 200: order placed
//   - 422: submission rejected, body lists the notices
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(w, r)
	if err != nil {
		h.log.Warn("invalid checkout submission", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), chi.URLParam(r, "cartId"), sub)
	if err != nil {
		if service.IsValidation(err) {
			h.log.Info("checkout submission rejected", "cart_id", chi.URLParam(r, "cartId"))
		}
		writeServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.log)
}

// EmailFields handles GET /api/orders/{orderId}/email-fields
func (h *CheckoutHandler) EmailFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.checkout.EmailFields(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, fields, h.log)
}
