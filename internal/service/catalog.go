package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// Catalog serves product listings and admin product creation.
type Catalog struct {
	products model.ProductStore
	storage  model.Storage
	now      func() time.Time
	logger   *logger.Logger
}

// NewCatalog creates the catalog service. storage may be nil, in which case
// products can only reference external image URLs.
func NewCatalog(products model.ProductStore, storage model.Storage, logger *logger.Logger) *Catalog {
	return &Catalog{
		products: products,
		storage:  storage,
		now:      time.Now,
		logger:   logger,
	}
}

// ListProducts returns one page of products matching the filter.
func (s *Catalog) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Catalog service: failed to list products", "error", err.Error())
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func normalizeFilter(f model.ProductFilter) (model.ProductFilter, error) {
	switch f.PriceSort {
	case model.PriceSortNone, model.PriceSortHighToLow, model.PriceSortLowToHigh:
	default:
		return f, apierrors.NewErrInvalidArgument("priceSort must be %q or %q", model.PriceSortHighToLow, model.PriceSortLowToHigh)
	}
	if f.Page < 0 || f.Limit < 0 {
		return f, apierrors.NewErrInvalidArgument("page and limit must not be negative")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = model.DefaultProductLimit
	}
	if f.Limit > model.MaxProductLimit {
		f.Limit = model.MaxProductLimit
	}
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
	return f, nil
}

func (s *Catalog) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Product{}, apierrors.NewErrProductNotFound(id)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// CreateProduct stores a new product. Uploaded image bytes go to object
// storage first and are removed again if the insert fails.
func (s *Catalog) CreateProduct(ctx context.Context, params model.CreateProductParams) (model.Product, error) {
	if err := validateProduct(params); err != nil {
		return model.Product{}, err
	}

	now := s.now()
	product := model.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(params.Name),
		Category:    strings.TrimSpace(params.Category),
		Price:       params.Price,
		Image:       params.ImageURL,
		Description: params.Description,
		Quantity:    params.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var imageKey string
	if len(params.Image) > 0 {
		if s.storage == nil {
			return model.Product{}, apierrors.NewErrInvalidArgument("image upload is not available, pass imageUrl instead")
		}

		contentType := params.ImageContentType
		if contentType == "" {
			contentType = http.DetectContentType(params.Image)
		}

		imageKey = fmt.Sprintf("products/%s/%s", product.ID, uuid.NewString())
		if err := s.storage.Upload(ctx, imageKey, bytes.NewReader(params.Image), int64(len(params.Image)), contentType); err != nil {
			s.logger.ErrorContext(ctx, "Catalog service: failed to upload product image",
				"product_id", product.ID,
				"error", err.Error())
			return model.Product{}, fmt.Errorf("failed to upload image: %w", err)
		}
		product.Image = s.storage.URL(imageKey)
	}

	saved, err := s.products.Create(ctx, product)
	if err != nil {
		s.logger.ErrorContext(ctx, "Catalog service: failed to create product",
			"product_id", product.ID,
			"error", err.Error())
		if imageKey != "" {
			if delErr := s.storage.Delete(ctx, imageKey); delErr != nil {
				s.logger.ErrorContext(ctx, "Catalog service: failed to remove orphaned image",
					"key", imageKey,
					"error", delErr.Error())
			}
		}
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.InfoContext(ctx, "Catalog service: product created",
		"product_id", saved.ID,
		"category", saved.Category)
	return saved, nil
}

func validateProduct(p model.CreateProductParams) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apierrors.NewErrInvalidArgument("name is required")
	case p.Price.IsNegative():
		return apierrors.NewErrInvalidArgument("price must not be negative")
	case p.Quantity < 0:
		return apierrors.NewErrInvalidArgument("quantity must not be negative")
	case len(p.Image) > 0 && p.ImageURL != "":
		return apierrors.NewErrInvalidArgument("pass either image or imageUrl, not both")
	}
	return nil
}
