package models

// TicketBlock is one attendee registration unit derived from one unit of cart quantity.
// Blocks are recomputed from the cart on every request and never stored.
type TicketBlock struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}
