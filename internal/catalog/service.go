// Package catalog exposes read and admin operations over the product set.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/matiasroldan/cuchilleria/internal/models"
	"github.com/matiasroldan/cuchilleria/internal/store"
	"github.com/shopspring/decimal"
)

// ErrInvalidProduct flags rejected product input; the wrapped message names
// the offending field.
var ErrInvalidProduct = errors.New("invalid product")

type Service struct {
	products *store.ProductStore
}

func NewService(products *store.ProductStore) *Service {
	return &Service{products: products}
}

// ProductInput carries the mutable fields of a product for create/update.
type ProductInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Image1      string
	Image2      string
	Category    string
	Material    string
	Type        string
}

func (in *ProductInput) validate() error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidProduct)
	case in.Description == "":
		return fmt.Errorf("%w: description is required", ErrInvalidProduct)
	case !in.Price.IsPositive():
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	case in.Image1 == "":
		return fmt.Errorf("%w: at least one image is required", ErrInvalidProduct)
	case in.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	}
	return nil
}

// ListProducts returns the catalog filtered by exact match on any of
// category, material and type.
func (s *Service) ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := in.toModel()
	id, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, id)
}

// UpdateProduct replaces every field of an existing product. There is no
// versioning; the previous values are gone.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := in.toModel()
	p.ID = id
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, id)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

func (in *ProductInput) toModel() *models.Product {
	return &models.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image1:      in.Image1,
		Image2:      in.Image2,
		Category:    in.Category,
		Material:    in.Material,
		Type:        in.Type,
	}
}
