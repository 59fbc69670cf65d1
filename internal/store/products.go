package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/matiasroldan/cuchilleria/internal/database"
	"github.com/matiasroldan/cuchilleria/internal/models"
)

const productColumns = "id, title, description, price, image1, image2, category, material, type, created_at"

// ProductFilter narrows List results. Empty fields are ignored; set fields
// are combined with AND.
type ProductFilter struct {
	Category string
	Material string
	Type     string
}

type ProductStore struct {
	db *database.DB
}

func NewProductStore(db *database.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products"

	var conds []string
	var args []any
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Material != "" {
		conds = append(conds, "material = ?")
		args = append(args, filter.Material)
	}
	if filter.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, filter.Type)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs fetches the given set of products in a single query and returns
// them keyed by id. Missing ids are simply absent from the result; callers
// decide whether that is an error.
func (s *ProductStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	if len(ids) == 0 {
		return map[int64]models.Product{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]models.Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO products (title, description, price, image1, image2, category, material, type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Price, p.Image1, p.Image2, p.Category, p.Material, p.Type)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read product id: %w", err)
	}
	return id, nil
}

func (s *ProductStore) Update(ctx context.Context, p *models.Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET title = ?, description = ?, price = ?, image1 = ?, image2 = ?,
		 category = ?, material = ?, type = ? WHERE id = ?`,
		p.Title, p.Description, p.Price, p.Image1, p.Image2, p.Category, p.Material, p.Type, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		if _, err := s.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a product from the catalog. Historical order items keep
// their snapshot price and are not touched.
func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var image2, material, ptype sql.NullString
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price,
		&p.Image1, &image2, &p.Category, &material, &ptype, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, err
		}
		return models.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Image2 = image2.String
	p.Material = material.String
	p.Type = ptype.String
	return p, nil
}
