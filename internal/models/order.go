package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Submission holds raw submitted checkout form values keyed by field key.
type Submission map[string]string

// Lookup returns the value and whether the field was submitted at all.
func (s Submission) Lookup(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// MetaEntry is one order metadata key/value pair
type MetaEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OrderMeta is the order's metadata collection in write order.
type OrderMeta []MetaEntry

// Set replaces the value of an existing key or appends a new entry.
func (m *OrderMeta) Set(key, value string) {
	for i := range *m {
		if (*m)[i].Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, MetaEntry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m OrderMeta) Get(key string) (string, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Order represents a placed order
type Order struct {
	ID            string          `json:"id"`
	CartID        string          `json:"cartId"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Items         []CartItem      `json:"items"`
	Fees          []FeeLine       `json:"fees"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	FeeTotal      decimal.Decimal `json:"feeTotal"`
	Total         decimal.Decimal `json:"total"`
	Meta          OrderMeta       `json:"meta"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// EmailField is a label/value pair rendered into order emails
type EmailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CheckoutForm is the checkout form as served to the renderer
type CheckoutForm struct {
	Header string       `json:"header"`
	Fields []NamedField `json:"fields"`
}

// ValidationResult reports the outcome of a checkout validation pass
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
