package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/shopkeeper-server/internal/api/grpc/rpc"
	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// CartService defines cart operations scoped to a user.
type CartService interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) ([]model.ResolvedCartItem, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (model.CartItem, error)
	ListItems(ctx context.Context, userID uuid.UUID, includeDeleted bool) ([]model.CartItem, error)
}

// Cart handles gRPC endpoints for the caller's cart.
type Cart struct {
	rpc.UnimplementedCartServer
	cartService    CartService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewCart(cartService CartService, contextManager model.ContextManager, logger *logger.Logger) *Cart {
	return &Cart{
		cartService:    cartService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// AddItem adds one unit of a product and returns the resolved cart.
func (h *Cart) AddItem(ctx context.Context, req *rpc.AddItemRequest) (*rpc.CartResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, handleError(err)
	}
	productID, err := parseID("product id", req.ProductID)
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Debug("Cart handler: processing add item request",
		"user_id", userID,
		"product_id", productID)

	items, err := h.cartService.AddItem(ctx, userID, productID)
	if err != nil {
		h.logger.Error("Cart handler: add item failed",
			"user_id", userID,
			"product_id", productID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.CartResponse{Items: toResolvedCart(items)}, nil
}

// RemoveItem soft-deletes a cart item and returns it.
func (h *Cart) RemoveItem(ctx context.Context, req *rpc.RemoveItemRequest) (*rpc.CartItem, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, handleError(err)
	}
	productID, err := parseID("product id", req.ProductID)
	if err != nil {
		return nil, handleError(err)
	}

	item, err := h.cartService.RemoveItem(ctx, userID, productID)
	if err != nil {
		h.logger.Error("Cart handler: remove item failed",
			"user_id", userID,
			"product_id", productID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := toCartItem(item)
	return &out, nil
}

func (h *Cart) ListItems(ctx context.Context, req *rpc.ListItemsRequest) (*rpc.ListItemsResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, handleError(err)
	}

	items, err := h.cartService.ListItems(ctx, userID, req.IncludeDeleted)
	if err != nil {
		h.logger.Error("Cart handler: list items failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := make([]rpc.CartItem, 0, len(items))
	for _, it := range items {
		out = append(out, toCartItem(it))
	}

	return &rpc.ListItemsResponse{Items: out}, nil
}

func userIDFromContext(ctx context.Context, cm model.ContextManager) (uuid.UUID, error) {
	userID, ok := cm.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, apierrors.NewErrMissingAuthorizationToken()
	}
	return userID, nil
}
