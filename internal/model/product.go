package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStore defines persistence operations for catalog products.
type ProductStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	List(ctx context.Context, filter ProductFilter) ([]Product, error)
	Create(ctx context.Context, product Product) (Product, error)
}

// Product is a catalog entry.
type Product struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Price       decimal.Decimal
	Image       string
	Description string
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductDetail is the display subset of a product captured in cart snapshots.
type ProductDetail struct {
	Name        string
	Price       decimal.Decimal
	Image       string
	Description string
	Category    string
	Quantity    int
}

// Detail returns the display snapshot of the product.
func (p Product) Detail() ProductDetail {
	return ProductDetail{
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Quantity:    p.Quantity,
	}
}

// PriceSort selects listing order by price.
type PriceSort string

const (
	PriceSortNone      PriceSort = ""
	PriceSortHighToLow PriceSort = "h2l"
	PriceSortLowToHigh PriceSort = "l2h"
)

const (
	DefaultProductLimit = 10
	MaxProductLimit     = 100
)

// ProductFilter narrows and paginates product listings.
type ProductFilter struct {
	Name      string
	Category  string
	PriceSort PriceSort
	Page      int
	Limit     int
}

// Offset returns the number of rows to skip for the filter's page.
func (f ProductFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// CreateProductParams contains data for a new catalog product.
type CreateProductParams struct {
	Name             string
	Category         string
	Price            decimal.Decimal
	Description      string
	Quantity         int
	Image            []byte
	ImageContentType string
	ImageURL         string
}
