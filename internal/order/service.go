// Package order implements order placement and lifecycle. Placement is the
// one flow with multi-record consistency requirements: the order header and
// its items are written in a single transaction, and every item carries a
// snapshot of the product price at placement time.
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/matiasroldan/cuchilleria/internal/models"
	"github.com/matiasroldan/cuchilleria/internal/store"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart rejects a checkout with no line requests.
	ErrEmptyCart = errors.New("el pedido no tiene artículos")

	// ErrInvalidQuantity rejects any line with quantity < 1, before
	// anything is persisted.
	ErrInvalidQuantity = errors.New("la cantidad debe ser mayor que cero")

	// ErrProductNotFound aborts the whole placement when any referenced
	// product does not exist. No partial order is created.
	ErrProductNotFound = errors.New("producto no encontrado")

	// ErrNotOwner rejects access to an order that belongs to another user.
	ErrNotOwner = errors.New("el pedido pertenece a otro usuario")
)

// LineRequest is a client-submitted (product, quantity) pair destined to
// become an order item. Any price the client sends is ignored; prices are
// always re-derived from the catalog.
type LineRequest struct {
	ProductID int64
	Quantity  int
}

// PlacedOrder is the result of a successful placement.
type PlacedOrder struct {
	OrderID     int64
	TotalAmount decimal.Decimal
}

type Service struct {
	products *store.ProductStore
	orders   *store.OrderStore
}

func NewService(products *store.ProductStore, orders *store.OrderStore) *Service {
	return &Service{products: products, orders: orders}
}

// PlaceOrder validates the line requests against the current catalog,
// snapshots prices, computes the total and persists the order header plus one
// item per line as one atomic unit. Duplicate product ids stay distinct lines;
// they are not merged.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, lines []LineRequest) (*PlacedOrder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: producto %d", ErrInvalidQuantity, line.ProductID)
		}
	}

	// One lookup for the distinct product set.
	seen := make(map[int64]bool, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, line.ProductID)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price, // snapshot, never re-read
		})
	}

	header := &models.Order{
		UserID:      userID,
		TotalAmount: total,
		Status:      models.StatusPendiente,
	}
	orderID, err := s.orders.CreateWithItems(ctx, header, items)
	if err != nil {
		return nil, err
	}

	return &PlacedOrder{OrderID: orderID, TotalAmount: total}, nil
}

// GetOrder returns one order with its items. Non-admin callers only see
// their own orders.
func (s *Service) GetOrder(ctx context.Context, orderID, requesterID int64, isAdmin bool) (*models.OrderWithItems, error) {
	order, err := s.orders.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, ErrNotOwner
	}
	return order, nil
}

// ListOrders returns the caller's orders; admins see every order.
func (s *Service) ListOrders(ctx context.Context, requesterID int64, isAdmin bool) ([]models.Order, error) {
	if isAdmin {
		return s.orders.ListAll(ctx)
	}
	return s.orders.ListByUser(ctx, requesterID)
}
