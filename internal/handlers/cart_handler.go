package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/Lixing-Zhang/conference-checkout/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// CartHandler handles cart HTTP requests
type CartHandler struct {
	checkout *service.CheckoutService
	validate *validator.Validate
	log      *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(checkout *service.CheckoutService, validate *validator.Validate, log *slog.Logger) *CartHandler {
	return &CartHandler{
		checkout: checkout,
		validate: validate,
		log:      log,
	}
}

// CreateCart handles POST /api/cart
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.checkout.CreateCart(r.Context())
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusCreated, summary, h.log)
}

// GetCart handles GET /api/cart/{cartId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.checkout.Cart(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, summary, h.log)
}

// AddItem handles POST /api/cart/{cartId}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Warn("add item request rejected", "error", err)
		WriteError(w, http.StatusBadRequest, "productId is required and quantity must be positive", h.log)
		return
	}

	summary, err := h.checkout.AddItem(r.Context(), chi.URLParam(r, "cartId"), req)
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, summary, h.log)
}

// SetPaymentMethod handles PUT /api/cart/{cartId}/payment-method
func (h *CartHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode payment method request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "paymentMethod is required", h.log)
		return
	}

	summary, err := h.checkout.SetPaymentMethod(r.Context(), chi.URLParam(r, "cartId"), req.PaymentMethod)
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, summary, h.log)
}
