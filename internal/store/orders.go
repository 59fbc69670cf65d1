package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matiasroldan/cuchilleria/internal/database"
	"github.com/matiasroldan/cuchilleria/internal/models"
)

type OrderStore struct {
	db *database.DB
}

func NewOrderStore(db *database.DB) *OrderStore {
	return &OrderStore{db: db}
}

// CreateWithItems persists an order header and all of its items in a single
// transaction. Either everything is written or nothing is: any failure rolls
// the whole order back. Returns the new order id.
func (s *OrderStore) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, total_amount, status) VALUES (?, ?, ?)`,
		order.UserID, order.TotalAmount, order.Status)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to read order id: %w", err)
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`,
			orderID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit order: %w", err)
	}
	return orderID, nil
}

const orderColumns = "id, user_id, total_amount, status, created_at"

func (s *OrderStore) Get(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := s.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = ?", id).
		Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return &o, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.list(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = ? ORDER BY created_at DESC", userID)
}

func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC")
}

func (s *OrderStore) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetWithItems fetches an order and its items, joined to the current product
// title and image for display. The join is LEFT so items survive product
// deletion; their snapshot price is stored on the item itself and product_id
// goes NULL when the product is removed (reported as 0).
func (s *OrderStore) GetWithItems(ctx context.Context, id int64) (*models.OrderWithItems, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		        COALESCE(p.title, ''), COALESCE(p.image1, '')
		 FROM order_items oi
		 LEFT JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = ?
		 ORDER BY oi.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	defer rows.Close()

	result := &models.OrderWithItems{Order: *order, Items: []models.OrderItemDetail{}}
	for rows.Next() {
		var it models.OrderItemDetail
		var productID sql.NullInt64
		err := rows.Scan(&it.ID, &it.OrderID, &productID, &it.Quantity, &it.Price,
			&it.ProductTitle, &it.ProductImage)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		it.ProductID = productID.Int64
		result.Items = append(result.Items, it)
	}
	return result, rows.Err()
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
