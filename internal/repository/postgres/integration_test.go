//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/shopkeeper-server/internal/model"
	repo "github.com/dtroode/shopkeeper-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "shopkeeper_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/shopkeeper_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

type fixture struct {
	conn     *repo.Connection
	users    *repo.UserRepository
	products *repo.ProductRepository
	cart     *repo.CartRepository
	orders   *repo.OrderRepository
	outbox   *repo.OutboxRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	conn, err := repo.NewConnection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return fixture{
		conn:     conn,
		users:    repo.NewUserRepository(conn),
		products: repo.NewProductRepository(conn),
		cart:     repo.NewCartRepository(conn),
		orders:   repo.NewOrderRepository(conn),
		outbox:   repo.NewOutboxRepository(conn),
	}
}

func (f fixture) createUser(t *testing.T) model.User {
	t.Helper()

	now := time.Now()
	u, err := f.users.UpsertOTP(context.Background(), model.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		UpdatedAt: now,
	})
	require.NoError(t, err)

	u.Username = "alice"
	u.PasswordHash = "hash"
	u.Status = model.UserStatusActive
	u.UpdatedAt = now
	u, err = f.users.Update(context.Background(), u)
	require.NoError(t, err)
	return u
}

func (f fixture) createProduct(t *testing.T, category string) model.Product {
	t.Helper()

	p, err := f.products.Create(context.Background(), model.Product{
		ID:        uuid.New(),
		Name:      "Item " + category,
		Category:  category,
		Price:     decimal.RequireFromString("19.90"),
		Quantity:  10,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return p
}

func (f fixture) addToCart(t *testing.T, u model.User, p model.Product) model.CartItem {
	t.Helper()

	item, err := f.cart.Add(context.Background(), model.CartItem{
		ID:            uuid.New(),
		UserID:        u.ID,
		ProductID:     p.ID,
		UserDetail:    u.Detail(),
		ProductDetail: p.Detail(),
		UpdatedAt:     time.Now(),
	})
	require.NoError(t, err)
	return item
}

func TestUserRepository_Integration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.createUser(t)

	byEmail, err := f.users.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.True(t, byEmail.HasPassword())

	require.NoError(t, f.users.SetStatus(ctx, u.ID, model.UserStatusLoggedOut))
	byID, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, model.UserStatusLoggedOut, byID.Status)

	_, err = f.users.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestProductRepository_List_Integration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	category := "cat-" + uuid.NewString()[:8]
	cheap := f.createProduct(t, category)
	_, err := f.products.Create(ctx, model.Product{
		ID: uuid.New(), Name: "Deluxe", Category: category, Price: decimal.NewFromInt(100), CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	list, err := f.products.List(ctx, model.ProductFilter{Category: category, PriceSort: model.PriceSortLowToHigh, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, cheap.ID, list[0].ID)

	list, err = f.products.List(ctx, model.ProductFilter{Category: category, PriceSort: model.PriceSortHighToLow, Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, cheap.ID, list[0].ID)
}

func TestCartRepository_Lifecycle_Integration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t)
	p := f.createProduct(t, "kitchen")

	t.Run("adding twice increments a single row", func(t *testing.T) {
		f.addToCart(t, u, p)
		item := f.addToCart(t, u, p)
		require.Equal(t, 2, item.Quantity)

		items, err := f.cart.ListByUser(ctx, u.ID, true)
		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	t.Run("soft delete keeps the row until due", func(t *testing.T) {
		now := time.Now()
		item, err := f.cart.SoftDelete(ctx, u.ID, p.ID, now, now.Add(model.CartRetention))
		require.NoError(t, err)
		require.Equal(t, model.CartItemSoftDeleted, item.Status)
		require.NotNil(t, item.SoftDeletedAt)

		active, err := f.cart.ListByUser(ctx, u.ID, false)
		require.NoError(t, err)
		require.Empty(t, active)

		purged, err := f.cart.PurgeExpired(ctx, now.Add(time.Hour), 100)
		require.NoError(t, err)
		require.Zero(t, purged)

		_, err = f.cart.GetByUserAndProduct(ctx, u.ID, p.ID)
		require.NoError(t, err)
	})

	t.Run("reactivated item survives a sweep past its due time", func(t *testing.T) {
		item := f.addToCart(t, u, p)
		require.Equal(t, model.CartItemActive, item.Status)
		require.Equal(t, 1, item.Quantity)
		require.Nil(t, item.PurgeAfter)

		purged, err := f.cart.PurgeExpired(ctx, time.Now().Add(3*model.CartRetention), 100)
		require.NoError(t, err)
		require.Zero(t, purged)
	})

	t.Run("sweep after retention deletes a still soft-deleted item", func(t *testing.T) {
		now := time.Now()
		_, err := f.cart.SoftDelete(ctx, u.ID, p.ID, now, now.Add(model.CartRetention))
		require.NoError(t, err)

		purged, err := f.cart.PurgeExpired(ctx, now.Add(model.CartRetention+time.Second), 100)
		require.NoError(t, err)
		require.Equal(t, int64(1), purged)

		_, err = f.cart.GetByUserAndProduct(ctx, u.ID, p.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t)
	a := f.createProduct(t, "categoryA")
	b := f.createProduct(t, "categoryB")

	t.Run("empty cart", func(t *testing.T) {
		_, err := f.orders.CreateFromCart(ctx, u.ID, func([]model.ResolvedCartItem) (model.Order, error) {
			t.Fatal("builder must not run for an empty cart")
			return model.Order{}, nil
		})
		require.ErrorIs(t, err, model.ErrEmptyCart)

		orders, err := f.orders.ListByUser(ctx, u.ID)
		require.NoError(t, err)
		require.Empty(t, orders)
	})

	t.Run("checkout aggregates and clears the cart", func(t *testing.T) {
		f.addToCart(t, u, a)
		f.addToCart(t, u, a)
		for i := 0; i < 3; i++ {
			f.addToCart(t, u, b)
		}

		order, err := f.orders.CreateFromCart(ctx, u.ID, func(lines []model.ResolvedCartItem) (model.Order, error) {
			o := model.Order{
				ID: uuid.New(), Kind: model.OrderKindCart, UserID: u.ID, Address: "addr", MobileNo: "555",
				User: u.Detail(), CategoryQuantities: map[string]int{}, CreatedAt: time.Now(),
			}
			for _, l := range lines {
				o.TotalQuantity += l.Item.Quantity
				o.CategoryQuantities[l.Product.Category] += l.Item.Quantity
				o.Items = append(o.Items, model.OrderItem{
					ProductID: l.Product.ID, Name: l.Product.Name, Price: l.Product.Price,
					Category: l.Product.Category, Quantity: l.Item.Quantity,
				})
			}
			return o, nil
		})
		require.NoError(t, err)

		stored, err := f.orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, 5, stored.TotalQuantity)
		require.Equal(t, map[string]int{"categoryA": 2, "categoryB": 3}, stored.CategoryQuantities)
		require.Len(t, stored.Items, 2)

		items, err := f.cart.ListByUser(ctx, u.ID, true)
		require.NoError(t, err)
		require.Empty(t, items)

		pending, err := f.outbox.CountPending(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, pending, 1)
	})

	t.Run("buy now is unique per user and product", func(t *testing.T) {
		productID := a.ID
		newOrder := func() model.Order {
			return model.Order{
				ID: uuid.New(), Kind: model.OrderKindBuyNow, UserID: u.ID, ProductID: &productID,
				Address: "addr", MobileNo: "555", User: u.Detail(), TotalQuantity: 1,
				Items:              []model.OrderItem{{ProductID: a.ID, Name: a.Name, Price: a.Price, Category: a.Category, Quantity: 1}},
				CategoryQuantities: map[string]int{a.Category: 1}, CreatedAt: time.Now(),
			}
		}

		_, err := f.orders.Create(ctx, newOrder())
		require.NoError(t, err)

		exists, err := f.orders.ExistsForProduct(ctx, u.ID, a.ID)
		require.NoError(t, err)
		require.True(t, exists)

		_, err = f.orders.Create(ctx, newOrder())
		require.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("outbox batch marks events sent", func(t *testing.T) {
		batch, err := f.outbox.ClaimPending(ctx, 100)
		require.NoError(t, err)
		for _, e := range batch.Events() {
			require.NoError(t, batch.MarkSent(ctx, e.ID))
		}
		require.NoError(t, batch.Commit(ctx))

		pending, err := f.outbox.CountPending(ctx)
		require.NoError(t, err)
		require.Zero(t, pending)
	})
}
