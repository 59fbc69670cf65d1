// Package cart holds the shopper's selection locally, independent of the
// server until checkout. Lines are keyed by product id; item count and
// subtotal are always derived from the lines, never stored separately.
package cart

import (
	"github.com/matiasroldan/cuchilleria/internal/models"
	"github.com/matiasroldan/cuchilleria/internal/order"
	"github.com/shopspring/decimal"
)

// Line is one product in the cart with the quantity selected so far. Title,
// price and image are kept for display only; the server re-derives prices at
// checkout.
type Line struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

type Cart struct {
	storage Storage
	lines   []Line
}

// New loads any previously persisted cart from storage.
func New(storage Storage) (*Cart, error) {
	if storage == nil {
		storage = NopStorage{}
	}
	lines, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Cart{storage: storage, lines: lines}, nil
}

// AddItem puts a product in the cart. Adding an already-present product
// increments its quantity by 1 instead of duplicating the line.
func (c *Cart) AddItem(p models.Product) error {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return c.save()
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image1,
		Quantity:  1,
	})
	return c.save()
}

// UpdateQuantity sets the quantity of a line. Zero or below removes the line
// entirely. Unknown product ids are ignored.
func (c *Cart) UpdateQuantity(productID int64, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return c.save()
		}
	}
	return nil
}

func (c *Cart) RemoveItem(productID int64) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return c.save()
		}
	}
	return nil
}

// Clear empties the cart. Called only on explicit user action or after the
// caller has confirmed checkout success.
func (c *Cart) Clear() error {
	c.lines = nil
	return c.save()
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal is the display total over the locally known prices. The
// authoritative total comes back from the server at checkout.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Checkout serializes the cart into the line requests the order service
// expects. The cart is not cleared here; clear it once the server confirms.
func (c *Cart) Checkout() []order.LineRequest {
	lines := make([]order.LineRequest, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, order.LineRequest{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return lines
}

func (c *Cart) save() error {
	return c.storage.Save(c.lines)
}
