package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/matiasroldan/cuchilleria/internal/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return &database.DB{DB: mockDB}, mock
}

var productCols = []string{"id", "title", "description", "price", "image1", "image2", "category", "material", "type", "created_at"}

func TestListBuildsFilterConditions(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProductStore(db)

	// No filter: plain select, no WHERE.
	mock.ExpectQuery(`SELECT (.+) FROM products$`).
		WillReturnRows(sqlmock.NewRows(productCols))
	_, err := s.List(context.Background(), ProductFilter{})
	require.NoError(t, err)

	// Single condition.
	mock.ExpectQuery(`FROM products WHERE category = \?$`).
		WithArgs("cocina").
		WillReturnRows(sqlmock.NewRows(productCols))
	_, err = s.List(context.Background(), ProductFilter{Category: "cocina"})
	require.NoError(t, err)

	// All three conditions combine with AND, in a fixed order.
	mock.ExpectQuery(`FROM products WHERE category = \? AND material = \? AND type = \?$`).
		WithArgs("cocina", "acero damasco", "chef").
		WillReturnRows(sqlmock.NewRows(productCols))
	_, err = s.List(context.Background(), ProductFilter{
		Category: "cocina",
		Material: "acero damasco",
		Type:     "chef",
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDsSingleLookup(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProductStore(db)

	rows := sqlmock.NewRows(productCols).
		AddRow(1, "Santoku clásico", "Santoku de 18 cm", "120.00", "/uploads/a.jpg", nil, "cocina", "acero inoxidable", "santoku", time.Now()).
		AddRow(3, "Puntilla de carbono", "Puntilla de 9 cm", "54.50", "/uploads/b.jpg", nil, "cocina", "acero al carbono", "puntilla", time.Now())

	mock.ExpectQuery(`FROM products WHERE id IN \(\?,\?\)`).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(rows)

	products, err := s.GetByIDs(context.Background(), []int64{1, 3})
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, products[3].Price.Equal(decimal.RequireFromString("54.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDsEmptyInput(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProductStore(db)

	products, err := s.GetByIDs(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query for an empty id set")
}

func TestGetByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProductStore(db)

	mock.ExpectQuery("FROM products WHERE id =").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(productCols))

	_, err := s.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissingProduct(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProductStore(db)

	mock.ExpectExec("DELETE FROM products").
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
