package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// InMemoryProductRepository implements ProductRepository with in-memory storage
type InMemoryProductRepository struct {
	products map[string]models.Product
}

// NewInMemoryProductRepository creates a new in-memory product repository with seed data
func NewInMemoryProductRepository() *InMemoryProductRepository {
	products := map[string]models.Product{
		"1": {ID: "1", Name: "Full Conference Pass", SKU: "CONF-FULL", Price: decimal.RequireFromString("395.00"), Category: "Pass"},
		"2": {ID: "2", Name: "Day One Pass", SKU: "CONF-DAY1", Price: decimal.RequireFromString("220.00"), Category: "Pass"},
		"3": {ID: "3", Name: "Day Two Pass", SKU: "CONF-DAY2", Price: decimal.RequireFromString("220.00"), Category: "Pass"},
		"4": {ID: "4", Name: "Student Pass", SKU: "CONF-STU", Price: decimal.RequireFromString("95.00"), Category: "Pass"},
		"5": {ID: "5", Name: "Workshop: Research Methods", SKU: "WS-RM", Price: decimal.RequireFromString("60.00"), Category: "Workshop"},
		"6": {ID: "6", Name: "Conference Dinner", Price: decimal.RequireFromString("45.00"), Category: "Social"},
	}

	return &InMemoryProductRepository{
		products: products,
	}
}

// GetAll returns all products ordered by ID
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}
