package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

const productColumns = `id, name, category, price, image, description, quantity, created_at, updated_at`

type ProductRepository struct {
	db DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Image, &p.Description, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}

	return p, nil
}

// List returns products matching the filter. Name and category match
// case-insensitively as substrings.
func (r *ProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query, args := buildProductListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

func buildProductListQuery(filter model.ProductFilter) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 4)

	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE TRUE`)
	if filter.Name != "" {
		args = append(args, "%"+escapeLike(filter.Name)+"%")
		fmt.Fprintf(&sb, ` AND name ILIKE $%d`, len(args))
	}
	if filter.Category != "" {
		args = append(args, "%"+escapeLike(filter.Category)+"%")
		fmt.Fprintf(&sb, ` AND category ILIKE $%d`, len(args))
	}

	switch filter.PriceSort {
	case model.PriceSortHighToLow:
		sb.WriteString(` ORDER BY price DESC, id`)
	case model.PriceSortLowToHigh:
		sb.WriteString(` ORDER BY price ASC, id`)
	default:
		sb.WriteString(` ORDER BY created_at DESC, id`)
	}

	args = append(args, filter.Limit, filter.Offset())
	fmt.Fprintf(&sb, ` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *ProductRepository) Create(ctx context.Context, product model.Product) (model.Product, error) {
	query := `INSERT INTO products (id, name, category, price, image, description, quantity, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			  RETURNING ` + productColumns

	saved, err := scanProduct(r.db.QueryRow(ctx, query,
		product.ID, product.Name, product.Category, product.Price, product.Image,
		product.Description, product.Quantity, product.CreatedAt,
	))
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return saved, nil
}
