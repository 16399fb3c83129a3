package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

var _ model.CartStore = (*CartRepository)(nil)

const cartColumns = `id, user_id, product_id, quantity, status, soft_deleted_at, purge_after,
	username, email, product_name, product_price, product_image, product_description, product_category, product_stock,
	created_at, updated_at`

// resolvedCartQuery selects the active lines of a user's cart joined with the
// current product and user rows.
const resolvedCartQuery = `SELECT c.id, c.user_id, c.product_id, c.quantity, c.status, c.soft_deleted_at, c.purge_after,
	c.username, c.email, c.product_name, c.product_price, c.product_image, c.product_description, c.product_category, c.product_stock,
	c.created_at, c.updated_at,
	p.id, p.name, p.category, p.price, p.image, p.description, p.quantity,
	u.username, u.email
	FROM cart_items c
	LEFT JOIN products p ON p.id = c.product_id
	LEFT JOIN users u ON u.id = c.user_id
	WHERE c.user_id = $1 AND c.status = 1
	ORDER BY c.created_at, c.id`

type CartRepository struct {
	db DB
}

func NewCartRepository(db DB) *CartRepository {
	return &CartRepository{db: db}
}

func scanCartItem(row pgx.Row) (model.CartItem, error) {
	var c model.CartItem
	err := row.Scan(
		&c.ID, &c.UserID, &c.ProductID, &c.Quantity, &c.Status, &c.SoftDeletedAt, &c.PurgeAfter,
		&c.UserDetail.Username, &c.UserDetail.Email,
		&c.ProductDetail.Name, &c.ProductDetail.Price, &c.ProductDetail.Image, &c.ProductDetail.Description,
		&c.ProductDetail.Category, &c.ProductDetail.Quantity,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Add is a single upsert so concurrent adds for the same pair never lose an
// increment. A soft-deleted row is reactivated with quantity 1 and a fresh
// snapshot.
func (r *CartRepository) Add(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	query := `INSERT INTO cart_items (
			      id, user_id, product_id, quantity, status,
			      username, email, product_name, product_price, product_image, product_description, product_category, product_stock,
			      created_at, updated_at)
			  VALUES ($1, $2, $3, 1, 1, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
			  ON CONFLICT (user_id, product_id) DO UPDATE SET
			      quantity = CASE WHEN cart_items.status = -9 THEN 1 ELSE cart_items.quantity + 1 END,
			      username = CASE WHEN cart_items.status = -9 THEN EXCLUDED.username ELSE cart_items.username END,
			      email = CASE WHEN cart_items.status = -9 THEN EXCLUDED.email ELSE cart_items.email END,
			      product_name = CASE WHEN cart_items.status = -9 THEN EXCLUDED.product_name ELSE cart_items.product_name END,
			      product_price = CASE WHEN cart_items.status = -9 THEN EXCLUDED.product_price ELSE cart_items.product_price END,
			      product_image = CASE WHEN cart_items.status = -9 THEN EXCLUDED.product_image ELSE cart_items.product_image END,
			      product_description = CASE WHEN cart_items.status = -9 THEN EXCLUDED.product_description ELSE cart_items.product_description END,
			      product_category = CASE WHEN cart_items.status = -9 THEN EXCLUDED.product_category ELSE cart_items.product_category END,
			      product_stock = CASE WHEN cart_items.status = -9 THEN EXCLUDED.product_stock ELSE cart_items.product_stock END,
			      status = 1,
			      soft_deleted_at = NULL,
			      purge_after = NULL,
			      updated_at = EXCLUDED.updated_at
			  RETURNING ` + cartColumns

	saved, err := scanCartItem(r.db.QueryRow(ctx, query,
		item.ID, item.UserID, item.ProductID,
		item.UserDetail.Username, item.UserDetail.Email,
		item.ProductDetail.Name, item.ProductDetail.Price, item.ProductDetail.Image, item.ProductDetail.Description,
		item.ProductDetail.Category, item.ProductDetail.Quantity,
		item.UpdatedAt,
	))
	if err != nil {
		return model.CartItem{}, fmt.Errorf("failed to add cart item: %w", err)
	}

	return saved, nil
}

func (r *CartRepository) GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (model.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE user_id = $1 AND product_id = $2`

	item, err := scanCartItem(r.db.QueryRow(ctx, query, userID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CartItem{}, model.ErrNotFound
		}
		return model.CartItem{}, fmt.Errorf("failed to get cart item: %w", err)
	}

	return item, nil
}

func (r *CartRepository) SoftDelete(ctx context.Context, userID, productID uuid.UUID, deletedAt, purgeAfter time.Time) (model.CartItem, error) {
	query := `UPDATE cart_items
			  SET status = -9, soft_deleted_at = $3, purge_after = $4, updated_at = $3
			  WHERE user_id = $1 AND product_id = $2 AND status = 1
			  RETURNING ` + cartColumns

	item, err := scanCartItem(r.db.QueryRow(ctx, query, userID, productID, deletedAt, purgeAfter))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CartItem{}, model.ErrNotFound
		}
		return model.CartItem{}, fmt.Errorf("failed to soft delete cart item: %w", err)
	}

	return item, nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uuid.UUID, includeDeleted bool) ([]model.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items
			  WHERE user_id = $1 AND ($2 OR status >= 0)
			  ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, userID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]model.CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return items, nil
}

func (r *CartRepository) ListResolved(ctx context.Context, userID uuid.UUID) ([]model.ResolvedCartItem, error) {
	return queryResolvedCart(ctx, r.db, resolvedCartQuery, userID)
}

func queryResolvedCart(ctx context.Context, q querier, query string, userID uuid.UUID) ([]model.ResolvedCartItem, error) {
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	lines := make([]model.ResolvedCartItem, 0)
	for rows.Next() {
		line, err := scanResolvedCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	return lines, nil
}

func scanResolvedCartItem(row pgx.Row) (model.ResolvedCartItem, error) {
	var (
		c                                  model.CartItem
		productID                          *uuid.UUID
		name, category, image, description *string
		price                              decimal.NullDecimal
		stock                              *int
		username, email                    *string
	)

	err := row.Scan(
		&c.ID, &c.UserID, &c.ProductID, &c.Quantity, &c.Status, &c.SoftDeletedAt, &c.PurgeAfter,
		&c.UserDetail.Username, &c.UserDetail.Email,
		&c.ProductDetail.Name, &c.ProductDetail.Price, &c.ProductDetail.Image, &c.ProductDetail.Description,
		&c.ProductDetail.Category, &c.ProductDetail.Quantity,
		&c.CreatedAt, &c.UpdatedAt,
		&productID, &name, &category, &price, &image, &description, &stock,
		&username, &email,
	)
	if err != nil {
		return model.ResolvedCartItem{}, err
	}

	line := model.ResolvedCartItem{Item: c}
	if productID != nil {
		line.Product = &model.Product{
			ID:          *productID,
			Name:        deref(name),
			Category:    deref(category),
			Price:       price.Decimal,
			Image:       deref(image),
			Description: deref(description),
			Quantity:    deref(stock),
		}
	}
	if username != nil || email != nil {
		line.User = &model.UserDetail{Username: deref(username), Email: deref(email)}
	}

	return line, nil
}

// PurgeExpired permanently removes soft-deleted rows that are due. Status and
// due time are re-checked by the DELETE itself, so rows reactivated after
// selection survive.
func (r *CartRepository) PurgeExpired(ctx context.Context, now time.Time, limit int) (int64, error) {
	query := `DELETE FROM cart_items
			  WHERE id IN (
			      SELECT id FROM cart_items
			      WHERE status = -9 AND purge_after <= $1
			      ORDER BY purge_after
			      LIMIT $2
			      FOR UPDATE SKIP LOCKED
			  )
			  AND status = -9 AND purge_after <= $1`

	cmd, err := r.db.Exec(ctx, query, now, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cart items: %w", err)
	}

	return cmd.RowsAffected(), nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
