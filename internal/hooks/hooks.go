// Package hooks defines the checkout lifecycle events extensions register against.
//
// Each event is a Hook holding named handlers. Handlers run in ascending priority;
// handlers sharing a priority run in registration order.
package hooks

import (
	"context"
	"io"
	"sync"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
)

// Request carries the per-request state handed to every handler.
// Options are loaded once per request; Form is nil outside submission.
type Request struct {
	Cart    *models.Cart
	Options models.Options
	Form    models.Submission
}

type (
	// FieldsFilter rewrites the checkout field schema.
	FieldsFilter func(ctx context.Context, req *Request, fields models.FieldSchema) models.FieldSchema
	// RenderAction writes a markup fragment.
	RenderAction func(ctx context.Context, req *Request, w io.Writer) error
	// ProcessAction validates a submission and returns error notices.
	ProcessAction func(ctx context.Context, req *Request) []string
	// OrderAction mutates an order being created.
	OrderAction func(ctx context.Context, req *Request, order *models.Order)
	// AdminOrderAction renders extra order details for administrators.
	AdminOrderAction func(ctx context.Context, order *models.Order, w io.Writer) error
	// EmailFieldsFilter adds fields to order emails.
	EmailFieldsFilter func(ctx context.Context, order *models.Order, fields []models.EmailField) []models.EmailField
	// CartAction adjusts cart totals, e.g. by adding fees.
	CartAction func(ctx context.Context, req *Request, cart *models.Cart)
)

// Handler is a registered callback
type Handler[F any] struct {
	Name     string
	Priority int
	Fn       F
}

// Hook is an ordered list of handlers for one event.
type Hook[F any] struct {
	mu       sync.RWMutex
	handlers []Handler[F]
}

// Add registers fn under name at priority.
func (h *Hook[F]) Add(name string, priority int, fn F) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := len(h.handlers)
	for i > 0 && h.handlers[i-1].Priority > priority {
		i--
	}
	h.handlers = append(h.handlers, Handler[F]{})
	copy(h.handlers[i+1:], h.handlers[i:])
	h.handlers[i] = Handler[F]{Name: name, Priority: priority, Fn: fn}
}

// Remove unregisters every handler with the given name and reports whether any existed.
func (h *Hook[F]) Remove(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.handlers[:0]
	for _, hd := range h.handlers {
		if hd.Name != name {
			kept = append(kept, hd)
		}
	}
	removed := len(kept) != len(h.handlers)
	h.handlers = kept
	return removed
}

// Handlers returns a snapshot in execution order.
func (h *Hook[F]) Handlers() []Handler[F] {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Handler[F](nil), h.handlers...)
}

// Events is the set of lifecycle events exposed by the checkout host.
type Events struct {
	CheckoutFields       Hook[FieldsFilter]
	BeforeBillingForm    Hook[RenderAction]
	CheckoutProcess      Hook[ProcessAction]
	CreateOrder          Hook[OrderAction]
	AdminOrderData       Hook[AdminOrderAction]
	EmailOrderMetaFields Hook[EmailFieldsFilter]
	CalculateFees        Hook[CartAction]
}

// NewEvents creates an empty event registry
func NewEvents() *Events {
	return &Events{}
}

// FilterCheckoutFields passes fields through every registered filter.
func (e *Events) FilterCheckoutFields(ctx context.Context, req *Request, fields models.FieldSchema) models.FieldSchema {
	for _, h := range e.CheckoutFields.Handlers() {
		fields = h.Fn(ctx, req, fields)
	}
	return fields
}

// RenderBeforeBillingForm writes every registered fragment to w.
func (e *Events) RenderBeforeBillingForm(ctx context.Context, req *Request, w io.Writer) error {
	for _, h := range e.BeforeBillingForm.Handlers() {
		if err := h.Fn(ctx, req, w); err != nil {
			return err
		}
	}
	return nil
}

// ProcessCheckout collects notices from every validator. No handler short-circuits another.
func (e *Events) ProcessCheckout(ctx context.Context, req *Request) []string {
	notices := []string{}
	for _, h := range e.CheckoutProcess.Handlers() {
		notices = append(notices, h.Fn(ctx, req)...)
	}
	return notices
}

// RunCreateOrder lets every handler mutate the order before it is stored.
func (e *Events) RunCreateOrder(ctx context.Context, req *Request, order *models.Order) {
	for _, h := range e.CreateOrder.Handlers() {
		h.Fn(ctx, req, order)
	}
}

// RenderAdminOrderData writes every registered admin fragment to w.
func (e *Events) RenderAdminOrderData(ctx context.Context, order *models.Order, w io.Writer) error {
	for _, h := range e.AdminOrderData.Handlers() {
		if err := h.Fn(ctx, order, w); err != nil {
			return err
		}
	}
	return nil
}

// FilterEmailOrderMetaFields collects the fields shown in order emails.
func (e *Events) FilterEmailOrderMetaFields(ctx context.Context, order *models.Order, fields []models.EmailField) []models.EmailField {
	for _, h := range e.EmailOrderMetaFields.Handlers() {
		fields = h.Fn(ctx, order, fields)
	}
	return fields
}

// RunCalculateFees lets every handler add fees to cart.
func (e *Events) RunCalculateFees(ctx context.Context, req *Request, cart *models.Cart) {
	for _, h := range e.CalculateFees.Handlers() {
		h.Fn(ctx, req, cart)
	}
}
