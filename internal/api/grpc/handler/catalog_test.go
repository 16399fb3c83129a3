package handler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopkeeper-server/internal/api/grpc/rpc"
	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/mocks"
	"github.com/dtroode/shopkeeper-server/internal/model"
	"github.com/dtroode/shopkeeper-server/internal/testutil"
)

func TestCatalog_ListProducts(t *testing.T) {
	t.Parallel()

	t.Run("maps filter and products", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewCatalogService(t)
		h := NewCatalog(svc, testutil.MakeNoopLogger())
		products := []model.Product{
			{ID: uuid.New(), Name: "Lamp", Category: "home", Price: decimal.RequireFromString("30.00")},
			{ID: uuid.New(), Name: "Mug", Category: "home", Price: decimal.RequireFromString("8.99")},
		}
		svc.On("ListProducts", mock.Anything, model.ProductFilter{
			Category:  "home",
			PriceSort: model.PriceSortHighToLow,
			Page:      2,
			Limit:     2,
		}).Return(products, nil).Once()

		out, err := h.ListProducts(context.Background(), &rpc.ListProductsRequest{Page: 2, Limit: 2, Category: "home", PriceSort: "h2l"})
		require.NoError(t, err)
		require.Len(t, out.Products, 2)
		assert.Equal(t, "Lamp", out.Products[0].Name)
		assert.Equal(t, "8.99", out.Products[1].Price.StringFixed(2))
	})

	t.Run("invalid sort", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewCatalogService(t)
		h := NewCatalog(svc, testutil.MakeNoopLogger())
		svc.On("ListProducts", mock.Anything, mock.Anything).Return(nil, apierrors.NewErrInvalidArgument("invalid price sort %q", "up")).Once()

		_, err := h.ListProducts(context.Background(), &rpc.ListProductsRequest{PriceSort: "up"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("empty result is an empty list", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewCatalogService(t)
		h := NewCatalog(svc, testutil.MakeNoopLogger())
		svc.On("ListProducts", mock.Anything, mock.Anything).Return(nil, nil).Once()

		out, err := h.ListProducts(context.Background(), &rpc.ListProductsRequest{})
		require.NoError(t, err)
		assert.NotNil(t, out.Products)
		assert.Empty(t, out.Products)
	})
}

func TestCatalog_GetProduct(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name     string
		reqID    string
		svcErr   error
		callsSvc bool
		wantCode codes.Code
	}{
		{name: "found", reqID: id.String(), callsSvc: true, wantCode: codes.OK},
		{name: "not found", reqID: id.String(), svcErr: apierrors.NewErrProductNotFound(id), callsSvc: true, wantCode: codes.NotFound},
		{name: "bad id", reqID: "nope", wantCode: codes.InvalidArgument},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewCatalogService(t)
			h := NewCatalog(svc, testutil.MakeNoopLogger())
			if tt.callsSvc {
				svc.On("GetProduct", mock.Anything, id).Return(model.Product{ID: id, Name: "Mug"}, tt.svcErr).Once()
			}

			out, err := h.GetProduct(context.Background(), &rpc.GetProductRequest{ProductID: tt.reqID})
			if tt.wantCode != codes.OK {
				assert.Nil(t, out)
				assert.Equal(t, tt.wantCode, status.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id.String(), out.ID)
		})
	}
}

func TestCatalog_CreateProduct(t *testing.T) {
	t.Parallel()

	svc := mocks.NewCatalogService(t)
	h := NewCatalog(svc, testutil.MakeNoopLogger())

	created := model.Product{ID: uuid.New(), Name: "Mug", Image: "http://img/products/1/2"}
	svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p model.CreateProductParams) bool {
		return p.Name == "Mug" &&
			p.Category == "kitchen" &&
			p.Quantity == 3 &&
			string(p.Image) == "png-bytes" &&
			p.ImageContentType == "image/png"
	})).Return(created, nil).Once()

	out, err := h.CreateProduct(context.Background(), &rpc.CreateProductRequest{
		Name:             "Mug",
		Category:         "kitchen",
		Price:            decimal.NewFromInt(5),
		Quantity:         3,
		Image:            []byte("png-bytes"),
		ImageContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), out.ID)
	assert.Equal(t, created.Image, out.Image)
}
