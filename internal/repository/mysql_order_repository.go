package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
)

const (
	upsertOrderSQL     = "INSERT INTO orders (id, cart_id, payment_method, items, fees, subtotal, fee_total, total, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) ON DUPLICATE KEY UPDATE payment_method = VALUES(payment_method), items = VALUES(items), fees = VALUES(fees), subtotal = VALUES(subtotal), fee_total = VALUES(fee_total), total = VALUES(total)"
	deleteOrderMetaSQL = "DELETE FROM order_meta WHERE order_id = ?"
	insertOrderMetaSQL = "INSERT INTO order_meta (order_id, position, meta_key, meta_value) VALUES (?, ?, ?, ?)"
	selectOrderSQL     = "SELECT id, cart_id, payment_method, items, fees, subtotal, fee_total, total, created_at FROM orders WHERE id = ?"
	selectOrderMetaSQL = "SELECT meta_key, meta_value FROM order_meta WHERE order_id = ? ORDER BY position ASC"
)

// MySQLOrderRepository stores orders in MySQL, metadata one row per entry
type MySQLOrderRepository struct {
	db *sql.DB
}

// NewMySQLOrderRepository creates a MySQL-backed order repository
func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Save writes the order row and replaces its metadata in one transaction
func (r *MySQLOrderRepository) Save(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}
	fees, err := json.Marshal(order.Fees)
	if err != nil {
		return fmt.Errorf("failed to encode order fees: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertOrderSQL,
		order.ID, order.CartID, order.PaymentMethod, string(items), string(fees),
		order.Subtotal, order.FeeTotal, order.Total, order.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, deleteOrderMetaSQL, order.ID); err != nil {
		return fmt.Errorf("failed to clear order meta: %w", err)
	}

	for i, entry := range order.Meta {
		if _, err := tx.ExecContext(ctx, insertOrderMetaSQL, order.ID, i, entry.Key, entry.Value); err != nil {
			return fmt.Errorf("failed to save order meta %q: %w", entry.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// GetByID loads an order and its metadata
func (r *MySQLOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var (
		order      models.Order
		items, fee string
	)
	err := r.db.QueryRowContext(ctx, selectOrderSQL, id).Scan(
		&order.ID, &order.CartID, &order.PaymentMethod, &items, &fee,
		&order.Subtotal, &order.FeeTotal, &order.Total, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := json.Unmarshal([]byte(items), &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	if err := json.Unmarshal([]byte(fee), &order.Fees); err != nil {
		return nil, fmt.Errorf("failed to decode order fees: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, selectOrderMetaSQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order meta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.MetaEntry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return nil, fmt.Errorf("failed to scan order meta: %w", err)
		}
		order.Meta = append(order.Meta, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order meta: %w", err)
	}
	return &order, nil
}
