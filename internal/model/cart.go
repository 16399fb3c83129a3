package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CartItemStatus is the lifecycle state of a cart row.
type CartItemStatus int

const (
	CartItemActive      CartItemStatus = 1
	CartItemSoftDeleted CartItemStatus = -9
)

// CartRetention is how long a soft-deleted cart item is kept before purge.
const CartRetention = 48 * time.Hour

// CartStore defines persistence operations for cart items.
type CartStore interface {
	// Add inserts the item or, for an existing (user, product) row, increments
	// its quantity. A soft-deleted row is reactivated with quantity 1.
	Add(ctx context.Context, item CartItem) (CartItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (CartItem, error)
	// SoftDelete flips an active row to soft-deleted. Returns ErrNotFound when
	// no active row matched.
	SoftDelete(ctx context.Context, userID, productID uuid.UUID, deletedAt, purgeAfter time.Time) (CartItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID, includeDeleted bool) ([]CartItem, error)
	ListResolved(ctx context.Context, userID uuid.UUID) ([]ResolvedCartItem, error)
	// PurgeExpired deletes soft-deleted rows whose purge time is not after now.
	PurgeExpired(ctx context.Context, now time.Time, limit int) (int64, error)
}

// CartItem is a (user, product) pair with a denormalized display snapshot.
type CartItem struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	Status        CartItemStatus
	SoftDeletedAt *time.Time
	PurgeAfter    *time.Time
	UserDetail    UserDetail
	ProductDetail ProductDetail
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive reports whether the item is in the active state.
func (c CartItem) IsActive() bool {
	return c.Status == CartItemActive
}

// ResolvedCartItem is a cart item joined with the current user and product.
// Product or User is nil when the referenced row no longer exists.
type ResolvedCartItem struct {
	Item    CartItem
	Product *Product
	User    *UserDetail
}
