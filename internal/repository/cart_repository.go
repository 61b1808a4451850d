package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/google/uuid"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrCartConflict = errors.New("cart was modified by another request")
)

// CartRepository stores shopper carts. Save fails with ErrCartConflict when the
// stored cart's version differs from the one being saved.
type CartRepository interface {
	Create(ctx context.Context) (*models.Cart, error)
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

// InMemoryCartRepository keeps carts in a map. Callers get copies.
type InMemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

// NewInMemoryCartRepository creates an empty cart repository
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// Create starts a new empty cart
func (r *InMemoryCartRepository) Create(ctx context.Context) (*models.Cart, error) {
	cart := models.Cart{
		ID:        uuid.New().String(),
		Items:     []models.CartItem{},
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.carts[cart.ID] = cart
	r.mu.Unlock()

	return cloneCart(cart), nil
}

// GetByID returns a copy of the cart
func (r *InMemoryCartRepository) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, exists := r.carts[id]
	if !exists {
		return nil, ErrCartNotFound
	}
	return cloneCart(cart), nil
}

// Save replaces a stored cart if it is unchanged since cart was read, then bumps cart.Version.
func (r *InMemoryCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.carts[cart.ID]
	if !exists {
		return ErrCartNotFound
	}
	if stored.Version != cart.Version {
		return ErrCartConflict
	}

	next := cloneCart(*cart)
	next.Version++
	r.carts[cart.ID] = *next
	cart.Version = next.Version
	return nil
}

func cloneCart(c models.Cart) *models.Cart {
	out := c
	out.Items = make([]models.CartItem, len(c.Items))
	for i, item := range c.Items {
		if item.Product != nil {
			p := *item.Product
			item.Product = &p
		}
		out.Items[i] = item
	}
	out.Fees = append([]models.FeeLine(nil), c.Fees...)
	return &out
}
