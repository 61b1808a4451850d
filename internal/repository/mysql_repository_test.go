package repository

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestMySQLOrderRepository_Save(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLOrderRepository(db)

	order := &models.Order{
		ID:        "order-1",
		CartID:    "cart-1",
		Total:     decimal.NewFromInt(20),
		CreatedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	order.Meta.Set("Contact: Payer Type", "self")
	order.Meta.Set("Contact: Newsletter Consent", "No")

	mock.ExpectBegin()
	mock.ExpectExec(upsertOrderSQL).
		WithArgs("order-1", "cart-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(deleteOrderMetaSQL).WithArgs("order-1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(insertOrderMetaSQL).WithArgs("order-1", 0, "Contact: Payer Type", "self").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertOrderMetaSQL).WithArgs("order-1", 1, "Contact: Newsletter Consent", "No").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOrderRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLOrderRepository(db)
	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(selectOrderSQL).WithArgs("order-1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "cart_id", "payment_method", "items", "fees", "subtotal", "fee_total", "total", "created_at"}).
			AddRow("order-1", "cart-1", "cod", `[]`, `[{"id":"fee_1","name":"Surcharge","amount":"10","taxable":false}]`, "395.00", "10.00", "405.00", created),
	)
	mock.ExpectQuery(selectOrderMetaSQL).WithArgs("order-1").WillReturnRows(
		sqlmock.NewRows([]string{"meta_key", "meta_value"}).
			AddRow("Contact: Payer Type", "self").
			AddRow("Ticket 1 — Pass: Presenting", "Yes"),
	)

	order, err := repo.GetByID(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, "cod", order.PaymentMethod)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("405")))
	require.Len(t, order.Fees, 1)
	assert.True(t, order.Fees[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, models.OrderMeta{
		{Key: "Contact: Payer Type", Value: "self"},
		{Key: "Ticket 1 — Pass: Presenting", Value: "Yes"},
	}, order.Meta)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOrderRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLOrderRepository(db)

	mock.ExpectQuery(selectOrderSQL).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMySQLOptionsRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLOptionsRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(selectOptionSQL).WithArgs("opts").WillReturnError(sql.ErrNoRows)
	value, err := repo.GetOption(ctx, "opts")
	require.NoError(t, err)
	assert.Nil(t, value)

	mock.ExpectExec(upsertOptionSQL).WithArgs("opts", []byte(`{"fee_enabled":0}`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.SaveOption(ctx, "opts", []byte(`{"fee_enabled":0}`)))

	mock.ExpectQuery(selectOptionSQL).WithArgs("opts").WillReturnRows(
		sqlmock.NewRows([]string{"option_value"}).AddRow([]byte(`{"fee_enabled":0}`)),
	)
	value, err = repo.GetOption(ctx, "opts")
	require.NoError(t, err)
	assert.JSONEq(t, `{"fee_enabled":0}`, string(value))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigration_OrderMetaKeyIsUnbounded(t *testing.T) {
	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	// Keys embed the product name and SKU, so they have no fixed upper length.
	column := regexp.MustCompile(`(?m)^\s*meta_key\s+(\w+)`).FindStringSubmatch(string(schema))
	require.Len(t, column, 2)
	assert.Equal(t, "TEXT", column[1])
}
