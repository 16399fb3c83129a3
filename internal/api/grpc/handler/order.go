package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/shopkeeper-server/internal/api/grpc/rpc"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// OrderService defines order placement and lookup.
type OrderService interface {
	BuyNow(ctx context.Context, params model.BuyNowParams) (model.Order, error)
	PlaceCartOrder(ctx context.Context, params model.PlaceCartOrderParams) (model.CheckoutResult, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (model.Order, error)
}

// Order handles gRPC endpoints for the caller's orders.
type Order struct {
	rpc.UnimplementedOrderServer
	orderService   OrderService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewOrder(orderService OrderService, contextManager model.ContextManager, logger *logger.Logger) *Order {
	return &Order{
		orderService:   orderService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// BuyNow places a single-product order.
func (h *Order) BuyNow(ctx context.Context, req *rpc.BuyNowRequest) (*rpc.Order, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, handleError(err)
	}
	productID, err := parseID("product id", req.ProductID)
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Debug("Order handler: processing buy now request",
		"user_id", userID,
		"product_id", productID)

	order, err := h.orderService.BuyNow(ctx, model.BuyNowParams{
		UserID:    userID,
		ProductID: productID,
		Address:   req.Address,
		MobileNo:  req.MobileNo,
	})
	if err != nil {
		h.logger.Error("Order handler: buy now failed",
			"user_id", userID,
			"product_id", productID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := toOrder(order)
	return &out, nil
}

// PlaceCartOrder checks out the caller's whole cart.
func (h *Order) PlaceCartOrder(ctx context.Context, req *rpc.PlaceCartOrderRequest) (*rpc.CheckoutResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Debug("Order handler: processing cart checkout request",
		"user_id", userID)

	result, err := h.orderService.PlaceCartOrder(ctx, model.PlaceCartOrderParams{
		UserID:   userID,
		Address:  req.Address,
		MobileNo: req.MobileNo,
	})
	if err != nil {
		h.logger.Error("Order handler: cart checkout failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.CheckoutResponse{
		Order:    toOrder(result.Order),
		Warnings: result.Warnings,
	}, nil
}

func (h *Order) ListOrders(ctx context.Context, _ *rpc.Empty) (*rpc.ListOrdersResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, handleError(err)
	}

	orders, err := h.orderService.ListOrders(ctx, userID)
	if err != nil {
		h.logger.Error("Order handler: list orders failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := make([]rpc.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}

	return &rpc.ListOrdersResponse{Orders: out}, nil
}

func (h *Order) GetOrder(ctx context.Context, req *rpc.GetOrderRequest) (*rpc.Order, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, handleError(err)
	}
	orderID, err := parseID("order id", req.OrderID)
	if err != nil {
		return nil, handleError(err)
	}

	order, err := h.orderService.GetOrder(ctx, userID, orderID)
	if err != nil {
		h.logger.Error("Order handler: get order failed",
			"user_id", userID,
			"order_id", orderID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := toOrder(order)
	return &out, nil
}
