package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/dtroode/shopkeeper-server/internal/mocks"
	"github.com/dtroode/shopkeeper-server/internal/model"
	"github.com/dtroode/shopkeeper-server/internal/testutil"
)

func newTestCatalog(t *testing.T, withStorage bool) (*Catalog, *mocks.ProductStore, *mocks.Storage) {
	t.Helper()

	products := mocks.NewProductStore(t)
	var storage *mocks.Storage
	var s *Catalog
	if withStorage {
		storage = mocks.NewStorage(t)
		s = NewCatalog(products, storage, testutil.MakeNoopLogger())
	} else {
		s = NewCatalog(products, nil, testutil.MakeNoopLogger())
	}
	s.now = func() time.Time { return fixedNow }
	return s, products, storage
}

func TestCatalog_ListProducts_NormalizesFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   model.ProductFilter
		want model.ProductFilter
	}{
		{
			name: "defaults",
			in:   model.ProductFilter{},
			want: model.ProductFilter{Page: 1, Limit: model.DefaultProductLimit},
		},
		{
			name: "limit capped",
			in:   model.ProductFilter{Page: 3, Limit: 1000, PriceSort: model.PriceSortHighToLow},
			want: model.ProductFilter{Page: 3, Limit: model.MaxProductLimit, PriceSort: model.PriceSortHighToLow},
		},
		{
			name: "filters trimmed",
			in:   model.ProductFilter{Name: "  shoe ", Category: " men ", Page: 1, Limit: 5, PriceSort: model.PriceSortLowToHigh},
			want: model.ProductFilter{Name: "shoe", Category: "men", Page: 1, Limit: 5, PriceSort: model.PriceSortLowToHigh},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, products, _ := newTestCatalog(t, false)
			want := []model.Product{{ID: uuid.New(), Name: "Shoe"}}
			products.On("List", mock.Anything, tt.want).Return(want, nil).Once()

			got, err := s.ListProducts(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCatalog_ListProducts_InvalidFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   model.ProductFilter
	}{
		{name: "unknown sort", in: model.ProductFilter{PriceSort: "cheapest"}},
		{name: "negative page", in: model.ProductFilter{Page: -1}},
		{name: "negative limit", in: model.ProductFilter{Limit: -5}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _, _ := newTestCatalog(t, false)
			_, err := s.ListProducts(context.Background(), tt.in)
			requireAPICode(t, err, codes.InvalidArgument)
		})
	}
}

func TestCatalog_GetProduct(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	s, products, _ := newTestCatalog(t, false)

	products.On("GetByID", mock.Anything, id).Return(model.Product{ID: id, Name: "Lamp"}, nil).Once()
	p, err := s.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", p.Name)

	products.On("GetByID", mock.Anything, id).Return(model.Product{}, model.ErrNotFound).Once()
	_, err = s.GetProduct(context.Background(), id)
	requireAPICode(t, err, codes.NotFound)
}

func TestCatalog_CreateProduct_WithImage(t *testing.T) {
	t.Parallel()

	s, products, storage := newTestCatalog(t, true)
	price := decimal.RequireFromString("12.50")
	var uploadedKey string

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		uploadedKey = key
		return strings.HasPrefix(key, "products/")
	}), mock.Anything, int64(3), "image/png").Return(nil).Once()
	storage.On("URL", mock.Anything).Return(func(key string) string {
		return "http://cdn/" + key
	}).Once()
	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Lamp" && p.Price.Equal(price) && strings.HasPrefix(p.Image, "http://cdn/products/"+p.ID.String()+"/")
	})).Return(func(_ context.Context, p model.Product) (model.Product, error) { return p, nil }).Once()

	p, err := s.CreateProduct(context.Background(), model.CreateProductParams{
		Name:             " Lamp ",
		Category:         "home",
		Price:            price,
		Quantity:         4,
		Image:            []byte("png"),
		ImageContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/"+uploadedKey, p.Image)
	assert.Equal(t, fixedNow, p.CreatedAt)
}

func TestCatalog_CreateProduct_RemovesImageWhenInsertFails(t *testing.T) {
	t.Parallel()

	s, products, storage := newTestCatalog(t, true)
	var uploadedKey string

	storage.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.Anything, int64(3), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { uploadedKey = args.String(1) }).
		Return(nil).Once()
	storage.On("URL", mock.Anything).Return("http://cdn/x").Once()
	products.On("Create", mock.Anything, mock.Anything).Return(model.Product{}, assert.AnError).Once()
	storage.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool { return key == uploadedKey })).Return(nil).Once()

	_, err := s.CreateProduct(context.Background(), model.CreateProductParams{
		Name:  "Lamp",
		Price: decimal.NewFromInt(1),
		Image: []byte("gif"),
	})
	require.ErrorIs(t, err, assert.AnError)
}

func TestCatalog_CreateProduct_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params model.CreateProductParams
	}{
		{name: "missing name", params: model.CreateProductParams{Price: decimal.NewFromInt(1)}},
		{name: "negative price", params: model.CreateProductParams{Name: "x", Price: decimal.NewFromInt(-1)}},
		{name: "negative quantity", params: model.CreateProductParams{Name: "x", Quantity: -1}},
		{name: "image and url", params: model.CreateProductParams{Name: "x", Image: []byte("a"), ImageURL: "http://img"}},
		{name: "upload without storage", params: model.CreateProductParams{Name: "x", Image: []byte("a")}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _, _ := newTestCatalog(t, false)
			_, err := s.CreateProduct(context.Background(), tt.params)
			requireAPICode(t, err, codes.InvalidArgument)
		})
	}
}

func TestCatalog_CreateProduct_ExternalImageURL(t *testing.T) {
	t.Parallel()

	s, products, _ := newTestCatalog(t, false)
	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Image == "https://img.example.com/lamp.jpg"
	})).Return(func(_ context.Context, p model.Product) (model.Product, error) { return p, nil }).Once()

	p, err := s.CreateProduct(context.Background(), model.CreateProductParams{
		Name:     "Lamp",
		Price:    decimal.NewFromInt(3),
		ImageURL: "https://img.example.com/lamp.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/lamp.jpg", p.Image)
}
