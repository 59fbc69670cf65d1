package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/matiasroldan/cuchilleria/internal/database"
	"github.com/matiasroldan/cuchilleria/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := &database.DB{DB: mockDB}
	return NewService(store.NewProductStore(db), store.NewOrderStore(db)), mock
}

var productCols = []string{"id", "title", "description", "price", "image1", "image2", "category", "material", "type", "created_at"}

func productRow(rows *sqlmock.Rows, id int64, price string) *sqlmock.Rows {
	return rows.AddRow(id, "Cuchillo de chef damasco", "Hoja de 20 cm", price,
		"/uploads/a.jpg", nil, "cocina", "acero damasco", "chef", time.Now())
}

func TestPlaceOrderComputesExactTotal(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM products WHERE id IN").
		WithArgs(int64(1)).
		WillReturnRows(productRow(sqlmock.NewRows(productCols), 1, "120.00"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(7), sqlmock.AnyArg(), "pendiente").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(42), int64(1), 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	placed, err := svc.PlaceOrder(context.Background(), 7, []LineRequest{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	assert.Equal(t, int64(42), placed.OrderID)
	assert.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("240.00")),
		"expected 240.00, got %s", placed.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderKeepsDuplicateLinesDistinct(t *testing.T) {
	svc, mock := newTestService(t)

	// Duplicate product ids collapse to a single lookup but stay separate
	// order item rows.
	mock.ExpectQuery("FROM products WHERE id IN").
		WithArgs(int64(1)).
		WillReturnRows(productRow(sqlmock.NewRows(productCols), 1, "120.00"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(7), sqlmock.AnyArg(), "pendiente").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(10), int64(1), 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(10), int64(1), 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	placed, err := svc.PlaceOrder(context.Background(), 7, []LineRequest{
		{ProductID: 1, Quantity: 1},
		{ProductID: 1, Quantity: 2},
	})
	require.NoError(t, err)

	assert.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("360.00")),
		"expected 360.00, got %s", placed.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderUnknownProductWritesNothing(t *testing.T) {
	svc, mock := newTestService(t)

	// Product 999 does not exist; the lookup comes back empty and no
	// transaction is ever opened.
	mock.ExpectQuery("FROM products WHERE id IN").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(productCols))

	placed, err := svc.PlaceOrder(context.Background(), 7, []LineRequest{{ProductID: 999, Quantity: 1}})
	require.Nil(t, placed)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorContains(t, err, "999")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderPartialProductSetAborts(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM products WHERE id IN").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(productRow(sqlmock.NewRows(productCols), 1, "120.00"))

	_, err := svc.PlaceOrder(context.Background(), 7, []LineRequest{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderRollsBackOnItemFailure(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM products WHERE id IN").
		WithArgs(int64(1)).
		WillReturnRows(productRow(sqlmock.NewRows(productCols), 1, "120.00"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(int64(7), sqlmock.AnyArg(), "pendiente").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(42), int64(1), 2, sqlmock.AnyArg()).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(context.Background(), 7, []LineRequest{{ProductID: 1, Quantity: 2}})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "order insert must be rolled back")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.PlaceOrder(context.Background(), 7, nil)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderInvalidQuantity(t *testing.T) {
	svc, mock := newTestService(t)

	for _, quantity := range []int{0, -3} {
		_, err := svc.PlaceOrder(context.Background(), 7, []LineRequest{{ProductID: 1, Quantity: quantity}})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing may touch the store")
}

func TestGetOrderOwnership(t *testing.T) {
	svc, mock := newTestService(t)

	orderCols := []string{"id", "user_id", "total_amount", "status", "created_at"}
	itemCols := []string{"id", "order_id", "product_id", "quantity", "price", "title", "image1"}

	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(5, 7, "240.00", "pendiente", time.Now()))
	mock.ExpectQuery("FROM order_items").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(1, 5, 1, 2, "120.00", "Cuchillo de chef damasco", "/uploads/a.jpg"))

	_, err := svc.GetOrder(context.Background(), 5, 8, false)
	assert.ErrorIs(t, err, ErrNotOwner, "user 8 must not read user 7's order")
}

func TestGetOrderJoinsItems(t *testing.T) {
	svc, mock := newTestService(t)

	orderCols := []string{"id", "user_id", "total_amount", "status", "created_at"}
	itemCols := []string{"id", "order_id", "product_id", "quantity", "price", "title", "image1"}

	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(5, 7, "240.00", "pendiente", time.Now()))
	mock.ExpectQuery("FROM order_items").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(1, 5, 1, 2, "120.00", "Cuchillo de chef damasco", "/uploads/a.jpg"))

	got, err := svc.GetOrder(context.Background(), 5, 7, false)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("120.00")))
	assert.Equal(t, "Cuchillo de chef damasco", got.Items[0].ProductTitle)
}

// The snapshot price lives on the order item row; a later catalog price is
// never consulted when reading the order back.
func TestOrderItemKeepsSnapshotPriceAfterCatalogChange(t *testing.T) {
	svc, mock := newTestService(t)

	orderCols := []string{"id", "user_id", "total_amount", "status", "created_at"}
	itemCols := []string{"id", "order_id", "product_id", "quantity", "price", "title", "image1"}

	// Catalog price moved from 120.00 to 150.00 after placement; the join
	// still reports the stored 120.00.
	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(5, 7, "240.00", "pendiente", time.Now()))
	mock.ExpectQuery("FROM order_items").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(1, 5, 1, 2, "120.00", "Cuchillo de chef damasco", "/uploads/a.jpg"))

	got, err := svc.GetOrder(context.Background(), 5, 7, false)
	require.NoError(t, err)

	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("120.00")))
	assert.False(t, got.Items[0].Price.Equal(decimal.RequireFromString("150.00")))
}
