package service

import (
	"context"
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

type cartDeps struct {
	cart     *mocks.CartStore
	users    *mocks.UserStore
	products *mocks.ProductStore
}

func newTestCart(t *testing.T) (*Cart, cartDeps) {
	t.Helper()

	d := cartDeps{
		cart:     mocks.NewCartStore(t),
		users:    mocks.NewUserStore(t),
		products: mocks.NewProductStore(t),
	}
	s := NewCart(d.cart, d.users, d.products, 48*time.Hour, testutil.MakeNoopLogger())
	s.now = func() time.Time { return fixedNow }
	return s, d
}

func TestCart_AddItem(t *testing.T) {
	t.Parallel()

	userID, productID := uuid.New(), uuid.New()
	product := model.Product{ID: productID, Name: "Mug", Category: "kitchen", Price: decimal.NewFromInt(8), Quantity: 3}
	user := model.User{ID: userID, Email: "a@example.com", Username: "alice"}

	t.Run("snapshots and returns resolved cart", func(t *testing.T) {
		t.Parallel()

		s, d := newTestCart(t)
		d.products.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
		d.users.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
		d.cart.On("Add", mock.Anything, mock.MatchedBy(func(item model.CartItem) bool {
			return item.UserID == userID &&
				item.ProductID == productID &&
				item.Quantity == 1 &&
				item.Status == model.CartItemActive &&
				item.UserDetail == user.Detail() &&
				item.ProductDetail.Name == "Mug" &&
				item.ProductDetail.Category == "kitchen"
		})).Return(model.CartItem{Quantity: 2}, nil).Once()

		resolved := []model.ResolvedCartItem{{Item: model.CartItem{ProductID: productID, Quantity: 2}, Product: &product}}
		d.cart.On("ListResolved", mock.Anything, userID).Return(resolved, nil).Once()

		got, err := s.AddItem(context.Background(), userID, productID)
		require.NoError(t, err)
		assert.Equal(t, resolved, got)
	})

	t.Run("missing product", func(t *testing.T) {
		t.Parallel()

		s, d := newTestCart(t)
		d.products.On("GetByID", mock.Anything, productID).Return(model.Product{}, model.ErrNotFound).Once()

		_, err := s.AddItem(context.Background(), userID, productID)
		requireAPICode(t, err, codes.NotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()

		s, d := newTestCart(t)
		d.products.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
		d.users.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound).Once()

		_, err := s.AddItem(context.Background(), userID, productID)
		requireAPICode(t, err, codes.NotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		s, d := newTestCart(t)
		d.products.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
		d.users.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
		d.cart.On("Add", mock.Anything, mock.Anything).Return(model.CartItem{}, assert.AnError).Once()

		_, err := s.AddItem(context.Background(), userID, productID)
		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	t.Parallel()

	userID, productID := uuid.New(), uuid.New()
	purgeAfter := fixedNow.Add(48 * time.Hour)
	deletedEarlier := fixedNow.Add(-time.Hour)

	tests := []struct {
		name       string
		softDelete func() (model.CartItem, error)
		lookup     func() (model.CartItem, error)
		wantStatus model.CartItemStatus
		wantCode   codes.Code
	}{
		{
			name: "soft-deletes with retention",
			softDelete: func() (model.CartItem, error) {
				return model.CartItem{Status: model.CartItemSoftDeleted, SoftDeletedAt: &fixedNow, PurgeAfter: &purgeAfter}, nil
			},
			wantStatus: model.CartItemSoftDeleted,
		},
		{
			name:       "already removed is returned unchanged",
			softDelete: func() (model.CartItem, error) { return model.CartItem{}, model.ErrNotFound },
			lookup: func() (model.CartItem, error) {
				return model.CartItem{Status: model.CartItemSoftDeleted, SoftDeletedAt: &deletedEarlier}, nil
			},
			wantStatus: model.CartItemSoftDeleted,
		},
		{
			name:       "never added",
			softDelete: func() (model.CartItem, error) { return model.CartItem{}, model.ErrNotFound },
			lookup:     func() (model.CartItem, error) { return model.CartItem{}, model.ErrNotFound },
			wantCode:   codes.NotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, d := newTestCart(t)
			item, err := tt.softDelete()
			d.cart.On("SoftDelete", mock.Anything, userID, productID, fixedNow, purgeAfter).Return(item, err).Once()
			if tt.lookup != nil {
				item, err := tt.lookup()
				d.cart.On("GetByUserAndProduct", mock.Anything, userID, productID).Return(item, err).Once()
			}

			got, err := s.RemoveItem(context.Background(), userID, productID)
			if tt.wantCode != codes.OK {
				requireAPICode(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestCart_ListItems(t *testing.T) {
	t.Parallel()

	for _, includeDeleted := range []bool{false, true} {
		includeDeleted := includeDeleted
		t.Run("", func(t *testing.T) {
			t.Parallel()

			userID := uuid.New()
			s, d := newTestCart(t)
			items := []model.CartItem{{UserID: userID, Quantity: 1}}
			d.cart.On("ListByUser", mock.Anything, userID, includeDeleted).Return(items, nil).Once()

			got, err := s.ListItems(context.Background(), userID, includeDeleted)
			require.NoError(t, err)
			assert.Equal(t, items, got)
		})
	}
}
