package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/shopkeeper-server/internal/api/grpc/rpc"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// CatalogService defines product listing and management operations.
type CatalogService interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	CreateProduct(ctx context.Context, params model.CreateProductParams) (model.Product, error)
}

// Catalog handles gRPC endpoints for products.
type Catalog struct {
	rpc.UnimplementedCatalogServer
	catalogService CatalogService
	logger         *logger.Logger
}

func NewCatalog(catalogService CatalogService, logger *logger.Logger) *Catalog {
	return &Catalog{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListProducts returns a filtered, sorted page of products.
func (h *Catalog) ListProducts(ctx context.Context, req *rpc.ListProductsRequest) (*rpc.ListProductsResponse, error) {
	h.logger.Debug("Catalog handler: processing list products request",
		"page", req.Page,
		"limit", req.Limit,
		"name", req.ProductName,
		"category", req.Category,
		"price_sort", req.PriceSort)

	products, err := h.catalogService.ListProducts(ctx, model.ProductFilter{
		Name:      req.ProductName,
		Category:  req.Category,
		PriceSort: model.PriceSort(req.PriceSort),
		Page:      req.Page,
		Limit:     req.Limit,
	})
	if err != nil {
		h.logger.Error("Catalog handler: list products failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	out := make([]rpc.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toProduct(p))
	}

	return &rpc.ListProductsResponse{Products: out}, nil
}

func (h *Catalog) GetProduct(ctx context.Context, req *rpc.GetProductRequest) (*rpc.Product, error) {
	id, err := parseID("product id", req.ProductID)
	if err != nil {
		return nil, handleError(err)
	}

	product, err := h.catalogService.GetProduct(ctx, id)
	if err != nil {
		h.logger.Error("Catalog handler: get product failed",
			"product_id", id,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := toProduct(product)
	return &out, nil
}

// CreateProduct adds a product. Access is restricted by the admin key interceptor.
func (h *Catalog) CreateProduct(ctx context.Context, req *rpc.CreateProductRequest) (*rpc.Product, error) {
	h.logger.Debug("Catalog handler: processing create product request",
		"name", req.Name,
		"category", req.Category,
		"image_bytes", len(req.Image))

	product, err := h.catalogService.CreateProduct(ctx, model.CreateProductParams{
		Name:             req.Name,
		Category:         req.Category,
		Price:            req.Price,
		Description:      req.Description,
		Quantity:         req.Quantity,
		Image:            req.Image,
		ImageContentType: req.ImageContentType,
		ImageURL:         req.ImageURL,
	})
	if err != nil {
		h.logger.Error("Catalog handler: create product failed",
			"name", req.Name,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Catalog handler: product created",
		"product_id", product.ID)

	out := toProduct(product)
	return &out, nil
}
