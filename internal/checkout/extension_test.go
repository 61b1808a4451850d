package checkout

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/conference-checkout/internal/hooks"
	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/Lixing-Zhang/conference-checkout/internal/options"
	"github.com/Lixing-Zhang/conference-checkout/internal/tickets"
	"github.com/Lixing-Zhang/conference-checkout/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegisteredEvents() *hooks.Events {
	log := logger.New("error")
	events := hooks.NewEvents()
	NewExtension(tickets.NewInspector(log), NewValidator(nil), log).Register(events)
	return events
}

func TestExtension_Register(t *testing.T) {
	events := newRegisteredEvents()

	headings := events.BeforeBillingForm.Handlers()
	require.Len(t, headings, 2)
	assert.Equal(t, HandlerHeadingContact, headings[0].Name)
	assert.Equal(t, 3, headings[0].Priority)
	assert.Equal(t, HandlerHeadingTickets, headings[1].Name)
	assert.Equal(t, 48, headings[1].Priority)

	assert.Equal(t, 9999, events.CheckoutFields.Handlers()[0].Priority)
	assert.Equal(t, 20, events.CalculateFees.Handlers()[0].Priority)
	assert.Len(t, events.CheckoutProcess.Handlers(), 1)
	assert.Len(t, events.CreateOrder.Handlers(), 1)
	assert.Len(t, events.AdminOrderData.Handlers(), 1)
	assert.Len(t, events.EmailOrderMetaFields.Handlers(), 1)
}

func TestExtension_RoundTrip(t *testing.T) {
	events := newRegisteredEvents()
	ctx := context.Background()
	cart := cartWithQuantities(2)
	req := &hooks.Request{Cart: cart, Options: options.Defaults()}

	var header bytes.Buffer
	require.NoError(t, events.RenderBeforeBillingForm(ctx, req, &header))
	assert.True(t, strings.Index(header.String(), "Contact Information") < strings.Index(header.String(), "Ticket Information"))

	fields := events.FilterCheckoutFields(ctx, req, DefaultBillingFields())
	billing := fields[models.GroupBilling]

	// Fill the rendered form the way a shopper would.
	form := models.Submission{FieldPayerType: "behalf", FieldPayeeEmail: "payee@example.com"}
	for key := range billing {
		switch {
		case strings.HasSuffix(key, SuffixName):
			form[key] = "Delegate"
		case strings.HasSuffix(key, SuffixEmail):
			form[key] = "delegate@example.com"
		case strings.HasSuffix(key, SuffixPhone):
			form[key] = "555-0100"
		case strings.HasSuffix(key, SuffixPresenting):
			form[key] = "1"
		}
	}
	req.Form = form

	assert.Empty(t, events.ProcessCheckout(ctx, req))

	order := &models.Order{ID: "order-1"}
	events.RunCreateOrder(ctx, req, order)

	blocks := tickets.ListTicketBlocks(cart)
	for _, b := range blocks {
		v, ok := order.Meta.Get(b.Label + MetaDelegateName)
		assert.True(t, ok)
		assert.Equal(t, "Delegate", v)
		v, _ = order.Meta.Get(b.Label + MetaPresenting)
		assert.Equal(t, "Yes", v)
		_, ok = order.Meta.Get(b.Label + MetaWaitlisted)
		assert.False(t, ok)
	}

	var admin bytes.Buffer
	require.NoError(t, events.RenderAdminOrderData(ctx, order, &admin))
	assert.Contains(t, admin.String(), "Contact: Payer Type:</strong> behalf")

	emailFields := events.FilterEmailOrderMetaFields(ctx, order, nil)
	assert.Len(t, emailFields, len(order.Meta))
}

func TestExtension_SurchargeThroughEvents(t *testing.T) {
	events := newRegisteredEvents()
	cart := cartWithQuantities(2)
	cart.PaymentMethod = models.PaymentMethodCOD
	req := &hooks.Request{Cart: cart, Options: options.Defaults()}

	events.RunCalculateFees(context.Background(), req, cart)
	events.RunCalculateFees(context.Background(), req, cart)

	assert.Len(t, cart.Fees, 2)
	assert.True(t, cart.FeeTotal().Equal(decimal.NewFromInt(20)))
}
