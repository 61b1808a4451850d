package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository stores placed orders together with their metadata
type OrderRepository interface {
	Save(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
}

// InMemoryOrderRepository keeps orders in a map
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewInMemoryOrderRepository creates an empty order repository
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Save stores or replaces an order
func (r *InMemoryOrderRepository) Save(ctx context.Context, order *models.Order) error {
	cp := *order
	cp.Meta = append(models.OrderMeta(nil), order.Meta...)
	cp.Items = append([]models.CartItem(nil), order.Items...)
	cp.Fees = append([]models.FeeLine(nil), order.Fees...)

	r.mu.Lock()
	r.orders[order.ID] = cp
	r.mu.Unlock()
	return nil
}

// GetByID returns an order by ID
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	order.Meta = append(models.OrderMeta(nil), order.Meta...)
	return &order, nil
}
