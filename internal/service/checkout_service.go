package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/conference-checkout/internal/events"
	"github.com/Lixing-Zhang/conference-checkout/internal/hooks"
	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/Lixing-Zhang/conference-checkout/internal/repository"
	"github.com/Lixing-Zhang/conference-checkout/internal/tickets"
)

// OptionsStore provides the effective checkout options
type OptionsStore interface {
	Get(ctx context.Context) (models.Options, error)
	Update(ctx context.Context, patch []byte) (models.Options, error)
}

// OrderPublisher announces placed orders to downstream consumers
type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, event events.OrderEvent) error
}

// CheckoutService is the checkout host. It owns carts and orders and runs the
// lifecycle events that extensions hook into.
type CheckoutService struct {
	carts     repository.CartRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	options   OptionsStore
	registry  *hooks.Events
	publisher OrderPublisher
	log       *slog.Logger
}

// NewCheckoutService creates a new checkout service. A nil publisher disables order events.
func NewCheckoutService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	options OptionsStore,
	registry *hooks.Events,
	publisher OrderPublisher,
	log *slog.Logger,
) *CheckoutService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CheckoutService{
		carts:     carts,
		products:  products,
		orders:    orders,
		options:   options,
		registry:  registry,
		publisher: publisher,
		log:       log,
	}
}

// request loads the cart and options once and bundles them for the handlers.
func (s *CheckoutService) request(ctx context.Context, cartID string, form models.Submission) (*hooks.Request, error) {
	cart, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	opts, err := s.options.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &hooks.Request{Cart: cart, Options: opts, Form: form}, nil
}

// recalculate rebuilds the cart's fee lines from scratch.
func (s *CheckoutService) recalculate(ctx context.Context, req *hooks.Request) {
	req.Cart.ClearFees()
	s.registry.RunCalculateFees(ctx, req, req.Cart)
}

func summarize(cart *models.Cart) *models.CartSummary {
	return &models.CartSummary{
		Cart:     cart,
		Tickets:  tickets.ListTicketBlocks(cart),
		Subtotal: cart.Subtotal(),
		FeeTotal: cart.FeeTotal(),
		Total:    cart.Total(),
	}
}
