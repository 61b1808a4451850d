// Package fees adds the per-ticket payment surcharge to a cart.
package fees

import (
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
)

// FeeIDPrefix marks fee lines owned by the surcharge.
const FeeIDPrefix = "per_ticket_surcharge"

// Applies reports whether the surcharge is due for the cart's payment selection.
func Applies(cart *models.Cart, opts models.Options) bool {
	if cart == nil || !opts.FeeEnabled || !opts.FeeAmount.IsPositive() {
		return false
	}
	return !opts.FeeOnlyCOD || cart.PaymentMethod == models.PaymentMethodCOD
}

// Apply adds one fee line of opts.FeeAmount per ticket and returns how many lines were added.
//
// Callers are expected to clear the cart's fees before recalculating totals. Lines previously
// added by Apply are dropped regardless, so repeated calls on an unchanged cart are stable.
func Apply(cart *models.Cart, opts models.Options, ticketCount int) int {
	if cart == nil {
		return 0
	}
	removeOwn(cart)

	if !Applies(cart, opts) || ticketCount < 1 {
		return 0
	}

	for i := 1; i <= ticketCount; i++ {
		cart.AddFee(models.FeeLine{
			ID:       fmt.Sprintf("%s_%d", FeeIDPrefix, i),
			Name:     opts.FeeTitle,
			Amount:   opts.FeeAmount,
			Taxable:  opts.FeeTaxable,
			TaxClass: taxClass(opts),
		})
	}
	return ticketCount
}

// taxClass is only meaningful for taxable fees; empty means the standard rates.
func taxClass(opts models.Options) string {
	if !opts.FeeTaxable {
		return ""
	}
	return opts.FeeTaxClass
}

func removeOwn(cart *models.Cart) {
	kept := cart.Fees[:0]
	for _, fee := range cart.Fees {
		if !strings.HasPrefix(fee.ID, FeeIDPrefix) {
			kept = append(kept, fee)
		}
	}
	cart.Fees = kept
}
