package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/conference-checkout/internal/fees"
	"github.com/Lixing-Zhang/conference-checkout/internal/hooks"
	"github.com/Lixing-Zhang/conference-checkout/internal/metrics"
	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/google/uuid"
)

// CreateCart starts an empty cart
func (s *CheckoutService) CreateCart(ctx context.Context) (*models.CartSummary, error) {
	cart, err := s.carts.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	s.log.Info("cart created", "cart_id", cart.ID)
	return summarize(cart), nil
}

// Cart returns the cart with fees recalculated for the current options
func (s *CheckoutService) Cart(ctx context.Context, cartID string) (*models.CartSummary, error) {
	req, err := s.request(ctx, cartID, nil)
	if err != nil {
		return nil, err
	}
	return s.saveRecalculated(ctx, req)
}

// AddItem adds quantity units of a product. Adding a product already in the cart
// increases that line's quantity.
func (s *CheckoutService) AddItem(ctx context.Context, cartID string, in models.AddItemRequest) (*models.CartSummary, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProduct, in.ProductID)
	}

	req, err := s.request(ctx, cartID, nil)
	if err != nil {
		return nil, err
	}

	cart := req.Cart
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			cart.Items[i].Quantity += in.Quantity
			cart.Items[i].Product = product
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			Key:       newItemKey(),
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Product:   product,
		})
	}

	s.log.Info("item added to cart", "cart_id", cart.ID, "product_id", product.ID, "quantity", in.Quantity)
	return s.saveRecalculated(ctx, req)
}

// SetPaymentMethod selects the payment gateway and recalculates fees
func (s *CheckoutService) SetPaymentMethod(ctx context.Context, cartID, method string) (*models.CartSummary, error) {
	req, err := s.request(ctx, cartID, nil)
	if err != nil {
		return nil, err
	}
	req.Cart.PaymentMethod = strings.ToLower(strings.TrimSpace(method))
	return s.saveRecalculated(ctx, req)
}

func (s *CheckoutService) saveRecalculated(ctx context.Context, req *hooks.Request) (*models.CartSummary, error) {
	s.recalculate(ctx, req)
	metrics.RecordSurchargeLines(surchargeLines(req.Cart))

	if err := s.carts.Save(ctx, req.Cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return summarize(req.Cart), nil
}

// newItemKey returns an opaque 32 character line-item key
func newItemKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func surchargeLines(cart *models.Cart) int {
	n := 0
	for _, fee := range cart.Fees {
		if strings.HasPrefix(fee.ID, fees.FeeIDPrefix) {
			n++
		}
	}
	return n
}
