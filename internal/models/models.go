package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User roles. Role changes have no endpoint; admins are created via the
// setup command.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Order statuses. The vocabulary is fixed; transitions are enforced by the
// order service.
const (
	StatusPendiente  = "pendiente"
	StatusProcesando = "procesando"
	StatusEnviado    = "enviado"
	StatusEntregado  = "entregado"
	StatusCancelado  = "cancelado"
)

type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Product struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Image1      string          `json:"image1" db:"image1"`
	Image2      string          `json:"image2,omitempty" db:"image2"`
	Category    string          `json:"category" db:"category"`
	Material    string          `json:"material,omitempty" db:"material"`
	Type        string          `json:"type,omitempty" db:"type"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type Order struct {
	ID          int64           `json:"id" db:"id"`
	UserID      int64           `json:"user_id" db:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// OrderItem carries the product price as it was when the order was placed.
// It is never recomputed from the live product record. ProductID is 0 when
// the product has since been deleted from the catalog.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// OrderItemDetail joins an order item with the product's current title and
// image for display. The product may have been deleted since the order was
// placed, in which case both are empty.
type OrderItemDetail struct {
	OrderItem
	ProductTitle string `json:"product_title"`
	ProductImage string `json:"product_image"`
}

type OrderWithItems struct {
	Order
	Items []OrderItemDetail `json:"items"`
}

// ValidStatus reports whether s belongs to the order status vocabulary.
func ValidStatus(s string) bool {
	switch s {
	case StatusPendiente, StatusProcesando, StatusEnviado, StatusEntregado, StatusCancelado:
		return true
	}
	return false
}
