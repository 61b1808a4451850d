package repository

import (
	"context"
	"sync"
)

// InMemoryOptionsRepository keeps raw option records keyed by name
type InMemoryOptionsRepository struct {
	mu      sync.RWMutex
	options map[string][]byte
}

// NewInMemoryOptionsRepository creates an empty options repository
func NewInMemoryOptionsRepository() *InMemoryOptionsRepository {
	return &InMemoryOptionsRepository{
		options: make(map[string][]byte),
	}
}

// GetOption returns the stored record or nil when none exists
func (r *InMemoryOptionsRepository) GetOption(ctx context.Context, name string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.options[name]
	if !exists {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

// SaveOption stores a record under name
func (r *InMemoryOptionsRepository) SaveOption(ctx context.Context, name string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.options[name] = append([]byte(nil), value...)
	return nil
}
