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

type orderDeps struct {
	orders   *mocks.OrderStore
	users    *mocks.UserStore
	products *mocks.ProductStore
}

func newTestOrder(t *testing.T) (*Order, orderDeps) {
	t.Helper()

	d := orderDeps{
		orders:   mocks.NewOrderStore(t),
		users:    mocks.NewUserStore(t),
		products: mocks.NewProductStore(t),
	}
	s := NewOrder(d.orders, d.users, d.products, testutil.MakeNoopLogger())
	s.now = func() time.Time { return fixedNow }
	return s, d
}

func returnOrder(_ context.Context, o model.Order) (model.Order, error) { return o, nil }

func TestOrder_BuyNow(t *testing.T) {
	t.Parallel()

	userID, productID := uuid.New(), uuid.New()
	user := model.User{ID: userID, Email: "a@example.com", Username: "alice"}
	product := model.Product{ID: productID, Name: "Lamp", Category: "home", Price: decimal.NewFromInt(30), Quantity: 7}
	params := model.BuyNowParams{UserID: userID, ProductID: productID, Address: "1 Main St", MobileNo: "555-0100"}

	t.Run("creates snapshot order", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrder(t)
		d.products.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
		d.users.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
		d.orders.On("ExistsForProduct", mock.Anything, userID, productID).Return(false, nil).Once()
		d.orders.On("Create", mock.Anything, mock.Anything).Return(returnOrder).Once()

		o, err := s.BuyNow(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, model.OrderKindBuyNow, o.Kind)
		require.NotNil(t, o.ProductID)
		assert.Equal(t, productID, *o.ProductID)
		assert.Equal(t, user.Detail(), o.User)
		assert.Equal(t, 1, o.TotalQuantity)
		assert.Equal(t, map[string]int{"home": 1}, o.CategoryQuantities)
		require.Len(t, o.Items, 1)
		assert.Equal(t, 1, o.Items[0].Quantity)
		assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(30)))
		assert.Equal(t, fixedNow, o.CreatedAt)
	})

	t.Run("second call conflicts", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrder(t)
		d.products.On("GetByID", mock.Anything, productID).Return(product, nil).Twice()
		d.users.On("GetByID", mock.Anything, userID).Return(user, nil).Twice()
		d.orders.On("ExistsForProduct", mock.Anything, userID, productID).Return(false, nil).Once()
		d.orders.On("Create", mock.Anything, mock.Anything).Return(returnOrder).Once()
		d.orders.On("ExistsForProduct", mock.Anything, userID, productID).Return(true, nil).Once()

		_, err := s.BuyNow(context.Background(), params)
		require.NoError(t, err)

		_, err = s.BuyNow(context.Background(), params)
		requireAPICode(t, err, codes.AlreadyExists)
		d.orders.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("concurrent insert loses the race", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrder(t)
		d.products.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
		d.users.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
		d.orders.On("ExistsForProduct", mock.Anything, userID, productID).Return(false, nil).Once()
		d.orders.On("Create", mock.Anything, mock.Anything).Return(model.Order{}, model.ErrConflict).Once()

		_, err := s.BuyNow(context.Background(), params)
		requireAPICode(t, err, codes.AlreadyExists)
	})

	t.Run("missing product", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrder(t)
		d.products.On("GetByID", mock.Anything, productID).Return(model.Product{}, model.ErrNotFound).Once()

		_, err := s.BuyNow(context.Background(), params)
		requireAPICode(t, err, codes.NotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrder(t)
		d.products.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
		d.users.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound).Once()

		_, err := s.BuyNow(context.Background(), params)
		requireAPICode(t, err, codes.NotFound)
	})

	t.Run("missing address", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestOrder(t)
		p := params
		p.Address = " "

		_, err := s.BuyNow(context.Background(), p)
		requireAPICode(t, err, codes.InvalidArgument)
	})
}

func TestOrder_PlaceCartOrder(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	user := model.User{ID: userID, Email: "a@example.com", Username: "alice"}
	params := model.PlaceCartOrderParams{UserID: userID, Address: "1 Main St", MobileNo: "555-0100"}

	a := &model.Product{ID: uuid.New(), Name: "A", Category: "categoryA", Price: decimal.NewFromInt(2)}
	b := &model.Product{ID: uuid.New(), Name: "B", Category: "categoryB", Price: decimal.NewFromInt(3)}
	lines := []model.ResolvedCartItem{
		{Item: model.CartItem{ProductID: a.ID, Quantity: 2}, Product: a},
		{Item: model.CartItem{ProductID: b.ID, Quantity: 3}, Product: b},
	}

	t.Run("aggregates by category", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrder(t)
		d.users.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
		d.orders.On("CreateFromCart", mock.Anything, userID, mock.Anything).
			Return(func(_ context.Context, _ uuid.UUID, build model.OrderBuilder) (model.Order, error) {
				return build(lines)
			}).Once()

		res, err := s.PlaceCartOrder(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, model.OrderKindCart, res.Order.Kind)
		assert.Nil(t, res.Order.ProductID)
		assert.Equal(t, 5, res.Order.TotalQuantity)
		assert.Equal(t, map[string]int{"categoryA": 2, "categoryB": 3}, res.Order.CategoryQuantities)
		assert.Len(t, res.Order.Items, 2)
		assert.Empty(t, res.Warnings)
	})

	t.Run("empty cart", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrder(t)
		d.users.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
		d.orders.On("CreateFromCart", mock.Anything, userID, mock.Anything).Return(model.Order{}, model.ErrEmptyCart).Once()

		_, err := s.PlaceCartOrder(context.Background(), params)
		requireAPICode(t, err, codes.FailedPrecondition)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrder(t)
		d.users.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound).Once()

		_, err := s.PlaceCartOrder(context.Background(), params)
		requireAPICode(t, err, codes.NotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		s, d := newTestOrder(t)
		d.users.On("GetByID", mock.Anything, userID).Return(user, nil).Once()
		d.orders.On("CreateFromCart", mock.Anything, userID, mock.Anything).Return(model.Order{}, assert.AnError).Once()

		_, err := s.PlaceCartOrder(context.Background(), params)
		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestAggregateCart(t *testing.T) {
	t.Parallel()

	gone := uuid.New()
	uncategorized := &model.Product{ID: uuid.New(), Name: "Loose", Category: "  "}
	current := &model.Product{ID: uuid.New(), Name: "Renamed", Category: "toys", Price: decimal.NewFromInt(9)}

	tests := []struct {
		name         string
		lines        []model.ResolvedCartItem
		wantTotal    int
		wantCats     map[string]int
		wantWarnings int
		check        func(t *testing.T, items []model.OrderItem)
	}{
		{
			name:     "empty",
			wantCats: map[string]int{},
		},
		{
			name: "same category summed",
			lines: []model.ResolvedCartItem{
				{Item: model.CartItem{Quantity: 2}, Product: &model.Product{Category: "toys"}},
				{Item: model.CartItem{Quantity: 4}, Product: &model.Product{Category: "toys"}},
			},
			wantTotal: 6,
			wantCats:  map[string]int{"toys": 6},
		},
		{
			name: "missing category counted in total and warned",
			lines: []model.ResolvedCartItem{
				{Item: model.CartItem{ProductID: uncategorized.ID, Quantity: 3}, Product: uncategorized},
				{Item: model.CartItem{Quantity: 1}, Product: &model.Product{Category: "books"}},
			},
			wantTotal:    4,
			wantCats:     map[string]int{"books": 1},
			wantWarnings: 1,
		},
		{
			name: "deleted product falls back to snapshot",
			lines: []model.ResolvedCartItem{{
				Item: model.CartItem{
					ProductID:     gone,
					Quantity:      2,
					ProductDetail: model.ProductDetail{Name: "Old", Category: "garden", Price: decimal.NewFromInt(4)},
				},
			}},
			wantTotal: 2,
			wantCats:  map[string]int{"garden": 2},
			check: func(t *testing.T, items []model.OrderItem) {
				require.Len(t, items, 1)
				assert.Equal(t, gone, items[0].ProductID)
				assert.Equal(t, "Old", items[0].Name)
			},
		},
		{
			name: "current product data wins over snapshot",
			lines: []model.ResolvedCartItem{{
				Item: model.CartItem{
					ProductID:     current.ID,
					Quantity:      1,
					ProductDetail: model.ProductDetail{Name: "Stale", Category: "old"},
				},
				Product: current,
			}},
			wantTotal: 1,
			wantCats:  map[string]int{"toys": 1},
			check: func(t *testing.T, items []model.OrderItem) {
				require.Len(t, items, 1)
				assert.Equal(t, "Renamed", items[0].Name)
				assert.Equal(t, 1, items[0].Quantity)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			agg := aggregateCart(tt.lines)
			assert.Equal(t, tt.wantTotal, agg.TotalQuantity)
			assert.Equal(t, tt.wantCats, agg.CategoryQuantities)
			assert.Len(t, agg.Warnings, tt.wantWarnings)
			assert.Len(t, agg.Items, len(tt.lines))
			if tt.check != nil {
				tt.check(t, agg.Items)
			}
		})
	}
}

func TestOrder_GetOrder(t *testing.T) {
	t.Parallel()

	owner, other, orderID := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name     string
		caller   uuid.UUID
		stored   model.Order
		getErr   error
		wantCode codes.Code
	}{
		{name: "owner", caller: owner, stored: model.Order{ID: orderID, UserID: owner}},
		{name: "another user", caller: other, stored: model.Order{ID: orderID, UserID: owner}, wantCode: codes.NotFound},
		{name: "missing", caller: owner, getErr: model.ErrNotFound, wantCode: codes.NotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, d := newTestOrder(t)
			d.orders.On("GetByID", mock.Anything, orderID).Return(tt.stored, tt.getErr).Once()

			o, err := s.GetOrder(context.Background(), tt.caller, orderID)
			if tt.wantCode != codes.OK {
				requireAPICode(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, orderID, o.ID)
		})
	}
}

func TestOrder_ListOrders(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	s, d := newTestOrder(t)
	orders := []model.Order{{ID: uuid.New(), UserID: userID}}
	d.orders.On("ListByUser", mock.Anything, userID).Return(orders, nil).Once()

	got, err := s.ListOrders(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, orders, got)
}
