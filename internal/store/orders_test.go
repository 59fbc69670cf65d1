package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "user_id", "total_amount", "status", "created_at"}

var itemCols = []string{"id", "order_id", "product_id", "quantity", "price", "title", "image1"}

// Deleting a catalog product must not touch its historical order items: the
// delete succeeds, and the order still reads back with the snapshot price,
// a zero product id and an empty display title.
func TestDeletedProductKeepsOrderItemSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	products := NewProductStore(db)
	orders := NewOrderStore(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM products").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, products.Delete(ctx, 5))

	mock.ExpectQuery("FROM orders WHERE id =").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(42, 7, "240.00", "pendiente", time.Now()))
	mock.ExpectQuery("FROM order_items oi").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow(1, 42, nil, 2, "120.00", "", ""))

	got, err := orders.GetWithItems(ctx, 42)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	item := got.Items[0]
	assert.Zero(t, item.ProductID)
	assert.Empty(t, item.ProductTitle)
	assert.Empty(t, item.ProductImage)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("120.00")),
		"snapshot price must survive product deletion")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWithItemsJoinsLiveProducts(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewOrderStore(db)

	mock.ExpectQuery("FROM orders WHERE id =").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(9, 7, "54.50", "enviado", time.Now()))
	mock.ExpectQuery("FROM order_items oi").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow(1, 9, 3, 1, "54.50", "Puntilla de carbono", "/uploads/b.jpg"))

	got, err := s.GetWithItems(context.Background(), 9)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(3), got.Items[0].ProductID)
	assert.Equal(t, "Puntilla de carbono", got.Items[0].ProductTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}
