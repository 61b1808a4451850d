package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Lixing-Zhang/conference-checkout/internal/checkout"
	"github.com/Lixing-Zhang/conference-checkout/internal/events"
	"github.com/Lixing-Zhang/conference-checkout/internal/metrics"
	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/Lixing-Zhang/conference-checkout/internal/tickets"
	"github.com/google/uuid"
)

// CheckoutForm renders the header fragments and the ordered billing fields for a cart
func (s *CheckoutService) CheckoutForm(ctx context.Context, cartID string) (*models.CheckoutForm, error) {
	req, err := s.request(ctx, cartID, nil)
	if err != nil {
		return nil, err
	}

	var header bytes.Buffer
	if err := s.registry.RenderBeforeBillingForm(ctx, req, &header); err != nil {
		return nil, fmt.Errorf("failed to render checkout header: %w", err)
	}

	fields := s.registry.FilterCheckoutFields(ctx, req, checkout.DefaultBillingFields())

	return &models.CheckoutForm{
		Header: header.String(),
		Fields: fields[models.GroupBilling].Ordered(),
	}, nil
}

// Validate runs the checkout validators without placing an order
func (s *CheckoutService) Validate(ctx context.Context, cartID string, form models.Submission) (*models.ValidationResult, error) {
	req, err := s.request(ctx, cartID, form)
	if err != nil {
		return nil, err
	}

	notices := s.registry.ProcessCheckout(ctx, req)
	metrics.RecordValidationNotices(len(notices))

	return &models.ValidationResult{
		Valid:  len(notices) == 0,
		Errors: notices,
	}, nil
}

// PlaceOrder validates the submission and turns the cart into an order.
// Rejected submissions return a *ValidationError.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cartID string, form models.Submission) (*models.Order, error) {
	order, err := s.placeOrder(ctx, cartID, form)
	metrics.RecordOperation("place_order", err == nil)
	return order, err
}

func (s *CheckoutService) placeOrder(ctx context.Context, cartID string, form models.Submission) (*models.Order, error) {
	req, err := s.request(ctx, cartID, form)
	if err != nil {
		return nil, err
	}
	cart := req.Cart
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	notices := s.registry.ProcessCheckout(ctx, req)
	metrics.RecordValidationNotices(len(notices))
	if len(notices) > 0 {
		return nil, &ValidationError{Notices: notices}
	}

	s.recalculate(ctx, req)

	order := &models.Order{
		ID:            uuid.New().String(),
		CartID:        cart.ID,
		PaymentMethod: cart.PaymentMethod,
		Items:         append([]models.CartItem(nil), cart.Items...),
		Fees:          append([]models.FeeLine(nil), cart.Fees...),
		Subtotal:      cart.Subtotal(),
		FeeTotal:      cart.FeeTotal(),
		Total:         cart.Total(),
		Meta:          models.OrderMeta{},
		CreatedAt:     time.Now().UTC(),
	}

	s.registry.RunCreateOrder(ctx, req, order)
	ticketCount := tickets.Count(cart)

	// Emptying the cart claims it; a concurrent checkout of the same cart fails here.
	cart.Items = []models.CartItem{}
	cart.ClearFees()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to claim cart %s: %w", cart.ID, err)
	}

	if err := s.orders.Save(ctx, order); err != nil {
		cart.Items = order.Items
		cart.Fees = order.Fees
		if rerr := s.carts.Save(ctx, cart); rerr != nil {
			s.log.Error("failed to restore cart after order save failure", "cart_id", cart.ID, "error", rerr)
		}
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	metrics.RecordTicketsRegistered(ticketCount)
	s.log.Info("order placed",
		"order_id", order.ID,
		"cart_id", cart.ID,
		"tickets", ticketCount,
		"total", order.Total.StringFixed(2),
	)

	event := events.NewOrderCreatedEvent(order, ticketCount, s.registry.FilterEmailOrderMetaFields(ctx, order, nil))
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.log.Warn("failed to publish order event", "order_id", order.ID, "error", err)
	}

	return order, nil
}

// EmailFields returns the label/value pairs order emails show for an order
func (s *CheckoutService) EmailFields(ctx context.Context, orderID string) ([]models.EmailField, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.registry.FilterEmailOrderMetaFields(ctx, order, []models.EmailField{}), nil
}

// AdminOrderHTML renders the administrator's order detail fragments
func (s *CheckoutService) AdminOrderHTML(ctx context.Context, orderID string) (string, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := s.registry.RenderAdminOrderData(ctx, order, &buf); err != nil {
		return "", fmt.Errorf("failed to render order %s: %w", orderID, err)
	}
	return buf.String(), nil
}

// Options returns the effective checkout options
func (s *CheckoutService) Options(ctx context.Context) (models.Options, error) {
	return s.options.Get(ctx)
}

// UpdateOptions merges a JSON patch into the saved options
func (s *CheckoutService) UpdateOptions(ctx context.Context, patch []byte) (models.Options, error) {
	opts, err := s.options.Update(ctx, patch)
	if err != nil {
		return models.Options{}, err
	}
	s.log.Info("checkout options updated", "fee_enabled", opts.FeeEnabled, "fee_only_cod", opts.FeeOnlyCOD)
	return opts, nil
}
