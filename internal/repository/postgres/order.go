package postgres

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

var _ model.OrderStore = (*OrderRepository)(nil)

const orderColumns = `id, kind, user_id, product_id, address, mobile_no, username, email, total_quantity, category_quantities, created_at`

type OrderRepository struct {
	db DB
}

func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertOrder(ctx, tx, order); err != nil {
		return model.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

const clearCheckedOutQuery = `DELETE FROM cart_items
	WHERE user_id = $1 AND (id = ANY($2) OR status = -9)`

func (r *OrderRepository) CreateFromCart(ctx context.Context, userID uuid.UUID, build model.OrderBuilder) (model.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lines, err := queryResolvedCart(ctx, tx, resolvedCartQuery+` FOR UPDATE OF c`, userID)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to lock cart: %w", err)
	}
	if len(lines) == 0 {
		return model.Order{}, model.ErrEmptyCart
	}

	order, err := build(lines)
	if err != nil {
		return model.Order{}, err
	}

	if err := insertOrder(ctx, tx, order); err != nil {
		return model.Order{}, err
	}

	// Rows added after the lock was taken stay in the cart.
	lockedIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		lockedIDs = append(lockedIDs, line.Item.ID)
	}
	if _, err := tx.Exec(ctx, clearCheckedOutQuery, userID, lockedIDs); err != nil {
		return model.Order{}, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return order, nil
}

// insertOrder writes the order, its lines and the order.placed outbox event.
func insertOrder(ctx context.Context, tx pgx.Tx, order model.Order) error {
	categories := order.CategoryQuantities
	if categories == nil {
		categories = map[string]int{}
	}

	_, err := tx.Exec(ctx, `INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		order.ID, order.Kind, order.UserID, order.ProductID, order.Address, order.MobileNo,
		order.User.Username, order.User.Email, order.TotalQuantity, categories, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i, item := range order.Items {
		_, err := tx.Exec(ctx, `INSERT INTO order_items
			(order_id, position, product_id, name, description, price, image, category, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			order.ID, i, item.ProductID, item.Name, item.Description, item.Price, item.Image, item.Category, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	payload, err := json.Marshal(model.OrderPlacedEvent{
		OrderID:            order.ID,
		UserID:             order.UserID,
		Kind:               order.Kind,
		TotalQuantity:      order.TotalQuantity,
		CategoryQuantities: categories,
		CreatedAt:          order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return enqueueEvent(ctx, tx, model.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: order.ID,
		EventType:   model.EventOrderPlaced,
		Payload:     payload,
		CreatedAt:   order.CreatedAt,
	})
}

func (r *OrderRepository) ExistsForProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE user_id = $1 AND product_id = $2)`, userID, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing order: %w", err)
	}
	return exists, nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.Kind, &o.UserID, &o.ProductID, &o.Address, &o.MobileNo,
		&o.User.Username, &o.User.Email, &o.TotalQuantity, &o.CategoryQuantities, &o.CreatedAt,
	)
	return o, err
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, model.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("failed to get order by id: %w", err)
	}

	items, err := r.loadItems(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return model.Order{}, err
	}
	order.Items = items[order.ID]

	return order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	rows, err := r.db.Query(ctx, `SELECT order_id, product_id, name, description, price, image, category, quantity
		FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID uuid.UUID
			item    model.OrderItem
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Description, &item.Price,
			&item.Image, &item.Category, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[orderID] = append(items[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return items, nil
}
