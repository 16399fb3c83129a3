package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderKind distinguishes single-item purchases from cart checkouts.
type OrderKind string

const (
	OrderKindBuyNow OrderKind = "buy_now"
	OrderKindCart   OrderKind = "cart"
)

// OrderBuilder turns the locked cart lines into an order inside the checkout
// transaction.
type OrderBuilder func(lines []ResolvedCartItem) (Order, error)

// OrderStore defines persistence operations for orders.
type OrderStore interface {
	// Create persists a buy-now order. Returns ErrConflict when an order for
	// the same (user, product) already exists.
	Create(ctx context.Context, order Order) (Order, error)
	// CreateFromCart loads the user's active cart lines, builds the order,
	// persists it and clears the cart in one transaction.
	CreateFromCart(ctx context.Context, userID uuid.UUID, build OrderBuilder) (Order, error)
	ExistsForProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
}

// Order is an immutable snapshot created at checkout.
type Order struct {
	ID                 uuid.UUID
	Kind               OrderKind
	UserID             uuid.UUID
	ProductID          *uuid.UUID
	Address            string
	MobileNo           string
	User               UserDetail
	Items              []OrderItem
	TotalQuantity      int
	CategoryQuantities map[string]int
	CreatedAt          time.Time
}

// OrderItem is a product snapshot inside an order.
type OrderItem struct {
	ProductID   uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
	Quantity    int
}

// BuyNowParams contains data for a single-item purchase.
type BuyNowParams struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Address   string
	MobileNo  string
}

// PlaceCartOrderParams contains data for a whole-cart checkout.
type PlaceCartOrderParams struct {
	UserID   uuid.UUID
	Address  string
	MobileNo string
}

// CheckoutResult is a placed cart order with the lines that were not
// attributed to a category.
type CheckoutResult struct {
	Order    Order
	Warnings []string
}
