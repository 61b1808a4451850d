// Package tickets expands cart line items into per-attendee ticket blocks.
package tickets

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
)

const (
	keyPrefix       = "t_"
	itemKeyMaxLen   = 12
	fallbackProduct = "Product"
)

// Inspector derives ticket blocks from cart state.
type Inspector struct {
	log *slog.Logger
}

// NewInspector creates a new cart inspector
func NewInspector(log *slog.Logger) *Inspector {
	return &Inspector{log: log}
}

// ListTicketBlocks returns one block per unit of quantity, in cart order.
// Duplicate keys are logged; the fields of colliding blocks would merge.
func (i *Inspector) ListTicketBlocks(cart *models.Cart) []models.TicketBlock {
	blocks := ListTicketBlocks(cart)
	if dups := DuplicateKeys(blocks); len(dups) > 0 && i.log != nil {
		i.log.Warn("ticket block key collision", "cart_id", cart.ID, "keys", dups)
	}
	return blocks
}

// ListTicketBlocks expands a cart into ticket blocks. A nil cart yields no blocks.
func ListTicketBlocks(cart *models.Cart) []models.TicketBlock {
	blocks := []models.TicketBlock{}
	if cart == nil {
		return blocks
	}

	ticketN := 0
	for _, item := range cart.Items {
		qty := item.Quantity
		if qty < 1 {
			continue
		}

		name := fallbackProduct
		skuText := ""
		if item.Product != nil {
			name = item.Product.Name
			if item.Product.SKU != "" {
				skuText = fmt.Sprintf(" [%s]", item.Product.SKU)
			}
		}

		for unit := 1; unit <= qty; unit++ {
			ticketN++
			blocks = append(blocks, models.TicketBlock{
				Key:   BlockKey(item.Key, unit),
				Label: fmt.Sprintf("Ticket %d — %s%s (%d of %d)", ticketN, name, skuText, unit, qty),
			})
		}
	}
	return blocks
}

// Count returns the number of ticket blocks the cart expands to.
func Count(cart *models.Cart) int {
	return len(ListTicketBlocks(cart))
}

// BlockKey builds the field-key prefix for one unit of a line item.
func BlockKey(itemKey string, unit int) string {
	if len(itemKey) > itemKeyMaxLen {
		itemKey = itemKey[:itemKeyMaxLen]
	}
	return SanitizeKey(fmt.Sprintf("%s%s_%d", keyPrefix, itemKey, unit))
}

// SanitizeKey lowercases s and drops everything except a-z, 0-9 and underscore.
func SanitizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DuplicateKeys reports keys shared by more than one block.
func DuplicateKeys(blocks []models.TicketBlock) []string {
	seen := make(map[string]int, len(blocks))
	var dups []string
	for _, b := range blocks {
		seen[b.Key]++
		if seen[b.Key] == 2 {
			dups = append(dups, b.Key)
		}
	}
	return dups
}
