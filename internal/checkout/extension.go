// Package checkout turns the stock billing form into a per-ticket conference registration form.
package checkout

import (
	"context"
	"io"
	"log/slog"

	"github.com/Lixing-Zhang/conference-checkout/internal/display"
	"github.com/Lixing-Zhang/conference-checkout/internal/fees"
	"github.com/Lixing-Zhang/conference-checkout/internal/hooks"
	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/Lixing-Zhang/conference-checkout/internal/tickets"
)

// Handler names as registered on the event registry
const (
	HandlerHeadingContact = "conference_checkout.heading_contact"
	HandlerHeadingTickets = "conference_checkout.heading_tickets"
	HandlerFields         = "conference_checkout.fields"
	HandlerValidate       = "conference_checkout.validate"
	HandlerOrderMeta      = "conference_checkout.order_meta"
	HandlerAdminMeta      = "conference_checkout.admin_meta"
	HandlerEmailMeta      = "conference_checkout.email_meta"
	HandlerSurcharge      = "conference_checkout.per_ticket_surcharge"
)

// Extension wires the conference registration behaviour into the checkout events.
type Extension struct {
	inspector *tickets.Inspector
	validator *Validator
	log       *slog.Logger
}

// NewExtension creates the conference checkout extension
func NewExtension(inspector *tickets.Inspector, validator *Validator, log *slog.Logger) *Extension {
	return &Extension{
		inspector: inspector,
		validator: validator,
		log:       log,
	}
}

// Register adds the extension's handlers to events.
func (x *Extension) Register(events *hooks.Events) {
	events.BeforeBillingForm.Add(HandlerHeadingContact, 3, x.headingContact)
	events.BeforeBillingForm.Add(HandlerHeadingTickets, 48, x.headingTickets)
	events.CheckoutFields.Add(HandlerFields, 9999, x.checkoutFields)
	events.CheckoutProcess.Add(HandlerValidate, 10, x.validateCheckout)
	events.CreateOrder.Add(HandlerOrderMeta, 10, x.saveOrderMeta)
	events.AdminOrderData.Add(HandlerAdminMeta, 10, x.adminMetaBox)
	events.EmailOrderMetaFields.Add(HandlerEmailMeta, 10, x.emailMetaFields)
	events.CalculateFees.Add(HandlerSurcharge, 20, x.perTicketSurcharge)
}

func (x *Extension) headingContact(ctx context.Context, req *hooks.Request, w io.Writer) error {
	return display.WriteHeading(w, "contact", display.ContactHeading)
}

func (x *Extension) headingTickets(ctx context.Context, req *hooks.Request, w io.Writer) error {
	return display.WriteHeading(w, "tickets", display.TicketsHeading)
}

func (x *Extension) checkoutFields(ctx context.Context, req *hooks.Request, fields models.FieldSchema) models.FieldSchema {
	return BuildFields(fields, x.inspector.ListTicketBlocks(req.Cart), req.Options)
}

func (x *Extension) validateCheckout(ctx context.Context, req *hooks.Request) []string {
	return x.validator.Validate(req.Form, x.inspector.ListTicketBlocks(req.Cart))
}

func (x *Extension) saveOrderMeta(ctx context.Context, req *hooks.Request, order *models.Order) {
	blocks := x.inspector.ListTicketBlocks(req.Cart)
	WriteMeta(order, req.Form, blocks)
	x.log.Debug("registration metadata written", "order_id", order.ID, "tickets", len(blocks), "entries", len(order.Meta))
}

func (x *Extension) adminMetaBox(ctx context.Context, order *models.Order, w io.Writer) error {
	return display.WriteMetaBox(w, display.MetaBoxTitle, RegistrationMeta(order))
}

func (x *Extension) emailMetaFields(ctx context.Context, order *models.Order, fields []models.EmailField) []models.EmailField {
	return append(fields, display.EmailFields(RegistrationMeta(order))...)
}

func (x *Extension) perTicketSurcharge(ctx context.Context, req *hooks.Request, cart *models.Cart) {
	if n := fees.Apply(cart, req.Options, len(x.inspector.ListTicketBlocks(cart))); n > 0 {
		x.log.Debug("per-ticket surcharge applied", "cart_id", cart.ID, "lines", n)
	}
}

// RegistrationMeta returns the order's registration entries in write order.
func RegistrationMeta(order *models.Order) []models.MetaEntry {
	var out []models.MetaEntry
	for _, e := range order.Meta {
		if IsRegistrationMeta(e.Key) {
			out = append(out, e)
		}
	}
	return out
}
