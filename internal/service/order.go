package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/metrics"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// Order places buy-now and cart orders and serves order history.
type Order struct {
	orders   model.OrderStore
	users    model.UserStore
	products model.ProductStore
	now      func() time.Time
	logger   *logger.Logger
}

func NewOrder(orders model.OrderStore, users model.UserStore, products model.ProductStore, logger *logger.Logger) *Order {
	return &Order{
		orders:   orders,
		users:    users,
		products: products,
		now:      time.Now,
		logger:   logger,
	}
}

// BuyNow orders a single unit of a product. A user can buy a given product
// this way only once.
func (s *Order) BuyNow(ctx context.Context, params model.BuyNowParams) (model.Order, error) {
	if err := validateDelivery(params.Address, params.MobileNo); err != nil {
		return model.Order{}, err
	}

	product, err := s.products.GetByID(ctx, params.ProductID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Order{}, apierrors.NewErrProductNotFound(params.ProductID)
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to get product: %w", err)
	}

	user, err := s.loadUser(ctx, params.UserID)
	if err != nil {
		return model.Order{}, err
	}

	exists, err := s.orders.ExistsForProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to check existing order: %w", err)
	}
	if exists {
		return model.Order{}, apierrors.NewErrDuplicateOrder(params.ProductID)
	}

	productID := product.ID
	order := model.Order{
		ID:        uuid.New(),
		Kind:      model.OrderKindBuyNow,
		UserID:    user.ID,
		ProductID: &productID,
		Address:   params.Address,
		MobileNo:  params.MobileNo,
		User:      user.Detail(),
		Items: []model.OrderItem{{
			ProductID:   product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Image:       product.Image,
			Category:    product.Category,
			Quantity:    1,
		}},
		TotalQuantity:      1,
		CategoryQuantities: map[string]int{},
		CreatedAt:          s.now(),
	}
	if category := strings.TrimSpace(product.Category); category != "" {
		order.CategoryQuantities[category] = 1
	}

	saved, err := s.orders.Create(ctx, order)
	if errors.Is(err, model.ErrConflict) {
		return model.Order{}, apierrors.NewErrDuplicateOrder(params.ProductID)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Order service: failed to create buy-now order",
			"user_id", params.UserID,
			"product_id", params.ProductID,
			"error", err.Error())
		return model.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	metrics.OrdersPlacedTotal.WithLabelValues(string(model.OrderKindBuyNow)).Inc()
	s.logger.InfoContext(ctx, "Order service: buy-now order placed",
		"order_id", saved.ID,
		"user_id", saved.UserID,
		"product_id", params.ProductID)
	return saved, nil
}

// PlaceCartOrder turns the user's active cart into one order and clears the
// cart in the same transaction.
func (s *Order) PlaceCartOrder(ctx context.Context, params model.PlaceCartOrderParams) (model.CheckoutResult, error) {
	if err := validateDelivery(params.Address, params.MobileNo); err != nil {
		return model.CheckoutResult{}, err
	}

	user, err := s.loadUser(ctx, params.UserID)
	if err != nil {
		return model.CheckoutResult{}, err
	}

	var warnings []string
	order, err := s.orders.CreateFromCart(ctx, params.UserID, func(lines []model.ResolvedCartItem) (model.Order, error) {
		agg := aggregateCart(lines)
		warnings = agg.Warnings
		return model.Order{
			ID:                 uuid.New(),
			Kind:               model.OrderKindCart,
			UserID:             user.ID,
			Address:            params.Address,
			MobileNo:           params.MobileNo,
			User:               user.Detail(),
			Items:              agg.Items,
			TotalQuantity:      agg.TotalQuantity,
			CategoryQuantities: agg.CategoryQuantities,
			CreatedAt:          s.now(),
		}, nil
	})
	if errors.Is(err, model.ErrEmptyCart) {
		return model.CheckoutResult{}, apierrors.NewErrEmptyCart()
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Order service: checkout failed",
			"user_id", params.UserID,
			"error", err.Error())
		return model.CheckoutResult{}, fmt.Errorf("failed to place cart order: %w", err)
	}

	for _, w := range warnings {
		s.logger.WarnContext(ctx, "Order service: checkout warning",
			"order_id", order.ID,
			"warning", w)
	}

	metrics.OrdersPlacedTotal.WithLabelValues(string(model.OrderKindCart)).Inc()
	s.logger.InfoContext(ctx, "Order service: cart order placed",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total_quantity", order.TotalQuantity)
	return model.CheckoutResult{Order: order, Warnings: warnings}, nil
}

func (s *Order) ListOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one of the user's orders. Orders of other users are
// reported as missing.
func (s *Order) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Order{}, apierrors.NewErrOrderNotFound(orderID)
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	if order.UserID != userID {
		return model.Order{}, apierrors.NewErrOrderNotFound(orderID)
	}
	return order, nil
}

func (s *Order) loadUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func validateDelivery(address, mobileNo string) error {
	if strings.TrimSpace(address) == "" {
		return apierrors.NewErrInvalidArgument("address is required")
	}
	if strings.TrimSpace(mobileNo) == "" {
		return apierrors.NewErrInvalidArgument("mobileNo is required")
	}
	return nil
}

type cartAggregate struct {
	Items              []model.OrderItem
	TotalQuantity      int
	CategoryQuantities map[string]int
	Warnings           []string
}

// aggregateCart snapshots each cart line and sums quantities overall and per
// category. Lines whose product is gone use the snapshot taken when the item
// was added. Lines without a category count toward the total only.
func aggregateCart(lines []model.ResolvedCartItem) cartAggregate {
	agg := cartAggregate{
		Items:              make([]model.OrderItem, 0, len(lines)),
		CategoryQuantities: make(map[string]int),
	}

	for _, line := range lines {
		item := model.OrderItem{
			ProductID:   line.Item.ProductID,
			Name:        line.Item.ProductDetail.Name,
			Description: line.Item.ProductDetail.Description,
			Price:       line.Item.ProductDetail.Price,
			Image:       line.Item.ProductDetail.Image,
			Category:    line.Item.ProductDetail.Category,
			Quantity:    line.Item.Quantity,
		}
		if p := line.Product; p != nil {
			item.Name = p.Name
			item.Description = p.Description
			item.Price = p.Price
			item.Image = p.Image
			item.Category = p.Category
		}
		agg.Items = append(agg.Items, item)
		agg.TotalQuantity += item.Quantity

		category := strings.TrimSpace(item.Category)
		if category == "" {
			agg.Warnings = append(agg.Warnings,
				fmt.Sprintf("product %s has no category and is not counted in category totals", item.ProductID))
			continue
		}
		agg.CategoryQuantities[category] += item.Quantity
	}

	return agg
}
