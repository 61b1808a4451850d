package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	selectOptionSQL = "SELECT option_value FROM options WHERE option_name = ?"
	upsertOptionSQL = "INSERT INTO options (option_name, option_value) VALUES (?, ?) ON DUPLICATE KEY UPDATE option_value = VALUES(option_value)"
)

// MySQLOptionsRepository stores option records in the options table
type MySQLOptionsRepository struct {
	db *sql.DB
}

// NewMySQLOptionsRepository creates a MySQL-backed options repository
func NewMySQLOptionsRepository(db *sql.DB) *MySQLOptionsRepository {
	return &MySQLOptionsRepository{db: db}
}

// GetOption returns the stored record or nil when none exists
func (r *MySQLOptionsRepository) GetOption(ctx context.Context, name string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, selectOptionSQL, name).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load option %s: %w", name, err)
	}
	return value, nil
}

// SaveOption upserts a record
func (r *MySQLOptionsRepository) SaveOption(ctx context.Context, name string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, upsertOptionSQL, name, value); err != nil {
		return fmt.Errorf("failed to save option %s: %w", name, err)
	}
	return nil
}
