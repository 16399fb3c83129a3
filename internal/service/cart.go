package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// Cart owns cart mutation and the soft-delete lifecycle of cart items.
type Cart struct {
	cart      model.CartStore
	users     model.UserStore
	products  model.ProductStore
	retention time.Duration
	now       func() time.Time
	logger    *logger.Logger
}

func NewCart(cart model.CartStore, users model.UserStore, products model.ProductStore, retention time.Duration, logger *logger.Logger) *Cart {
	if retention <= 0 {
		retention = model.CartRetention
	}
	return &Cart{
		cart:      cart,
		users:     users,
		products:  products,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

// AddItem puts one unit of the product into the user's cart and returns the
// active cart with current product and user data resolved.
func (s *Cart) AddItem(ctx context.Context, userID, productID uuid.UUID) ([]model.ResolvedCartItem, error) {
	s.logger.DebugContext(ctx, "Cart service: adding item",
		"user_id", userID,
		"product_id", productID)

	product, err := s.products.GetByID(ctx, productID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apierrors.NewErrProductNotFound(productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	now := s.now()
	item, err := s.cart.Add(ctx, model.CartItem{
		ID:            uuid.New(),
		UserID:        userID,
		ProductID:     productID,
		Quantity:      1,
		Status:        model.CartItemActive,
		UserDetail:    user.Detail(),
		ProductDetail: product.Detail(),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Cart service: failed to add item",
			"user_id", userID,
			"product_id", productID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.InfoContext(ctx, "Cart service: item added",
		"user_id", userID,
		"product_id", productID,
		"quantity", item.Quantity)

	items, err := s.cart.ListResolved(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return items, nil
}

// RemoveItem soft-deletes the cart item. It stays visible with
// includeDeleted until the sweeper purges it after the retention window.
// Removing an already removed item returns it unchanged.
func (s *Cart) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (model.CartItem, error) {
	now := s.now()
	item, err := s.cart.SoftDelete(ctx, userID, productID, now, now.Add(s.retention))
	if err == nil {
		s.logger.InfoContext(ctx, "Cart service: item soft-deleted",
			"user_id", userID,
			"product_id", productID,
			"purge_after", item.PurgeAfter)
		return item, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		s.logger.ErrorContext(ctx, "Cart service: failed to remove item",
			"user_id", userID,
			"product_id", productID,
			"error", err.Error())
		return model.CartItem{}, fmt.Errorf("failed to remove cart item: %w", err)
	}

	item, err = s.cart.GetByUserAndProduct(ctx, userID, productID)
	if errors.Is(err, model.ErrNotFound) {
		return model.CartItem{}, apierrors.NewErrCartItemNotFound(productID)
	}
	if err != nil {
		return model.CartItem{}, fmt.Errorf("failed to get cart item: %w", err)
	}
	return item, nil
}

// ListItems returns the user's cart rows. Soft-deleted rows are included
// only on request.
func (s *Cart) ListItems(ctx context.Context, userID uuid.UUID, includeDeleted bool) ([]model.CartItem, error) {
	items, err := s.cart.ListByUser(ctx, userID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}
