package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodCOD is the cash-on-delivery ("pay on the door") gateway identifier.
const PaymentMethodCOD = "cod"

// Cart is the shopper's active cart. Items keep insertion order.
// Version increases on every save and guards against concurrent writers.
type Cart struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	Fees          []FeeLine  `json:"fees"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// CartItem is a single line item. Key is the opaque line-item identifier.
type CartItem struct {
	Key       string   `json:"key"`
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// FeeLine is an extra charge added to the cart during totals calculation
type FeeLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Taxable  bool            `json:"taxable"`
	TaxClass string          `json:"taxClass,omitempty"`
}

// AddFee appends a fee line to the cart.
func (c *Cart) AddFee(fee FeeLine) {
	c.Fees = append(c.Fees, fee)
}

// ClearFees drops every fee line. Totals recalculation starts from here.
func (c *Cart) ClearFees() {
	c.Fees = nil
}

// Subtotal sums price * quantity over all line items with a known product.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		if item.Product == nil || item.Quantity < 1 {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// FeeTotal sums all fee lines.
func (c *Cart) FeeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, fee := range c.Fees {
		total = total.Add(fee.Amount)
	}
	return total
}

// Total is the subtotal plus fees.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.FeeTotal())
}

// CartSummary is the cart as returned to clients, with totals and ticket blocks
type CartSummary struct {
	Cart     *Cart           `json:"cart"`
	Tickets  []TicketBlock   `json:"tickets"`
	Subtotal decimal.Decimal `json:"subtotal"`
	FeeTotal decimal.Decimal `json:"feeTotal"`
	Total    decimal.Decimal `json:"total"`
}

// AddItemRequest adds a product to a cart
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// PaymentMethodRequest selects the payment gateway for a cart
type PaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}
