package models

import "github.com/shopspring/decimal"

// Product represents a conference ticket product that can be added to a cart
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}
