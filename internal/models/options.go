package models

import "github.com/shopspring/decimal"

// Options controls the surcharge and the newsletter opt-in label.
type Options struct {
	FeeEnabled      bool            `json:"fee_enabled"`
	FeeTitle        string          `json:"fee_title"`
	FeeAmount       decimal.Decimal `json:"fee_amount"`
	FeeTaxable      bool            `json:"fee_taxable"`
	FeeTaxClass     string          `json:"fee_tax_class"`
	FeeOnlyCOD      bool            `json:"fee_only_cod"`
	NewsletterLabel string          `json:"newsletter_label"`
}
