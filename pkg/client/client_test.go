package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/database"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/models"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/server"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/services"
	"github.com/hoorparvaizz/SweetSpotDevSecOps/pkg/client"
)

// appDoer routes requests into a fiber app and counts them.
type appDoer struct {
	app  *fiber.App
	hits int64
}

func (d *appDoer) Do(req *http.Request) (*http.Response, error) {
	atomic.AddInt64(&d.hits, 1)
	return d.app.Test(req, -1)
}

type fixture struct {
	doer *appDoer
	auth *services.AuthService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	srv := server.New(server.Deps{DB: db, Logger: logger, JWTSecret: "client-secret"})
	return &fixture{doer: &appDoer{app: srv.App}, auth: srv.Auth}
}

// newClient returns a logged-in client for sub.
func (f *fixture) newClient(t *testing.T, sub string, role models.Role) *client.Client {
	t.Helper()
	token, err := f.auth.SignToken(services.Identity{Subject: sub, Email: sub + "@example.com", Role: role}, time.Hour)
	require.NoError(t, err)

	c := client.New("http://sweetspot.test", client.WithDoer(f.doer), client.WithToken(token))
	user, err := c.Login(context.Background())
	require.NoError(t, err)
	require.Equal(t, role, user.Role)
	return c
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func name(s string) *string { return &s }

func TestGetIsCached(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.newClient(t, "carol", models.RoleCustomer)

	before := atomic.LoadInt64(&f.doer.hits)
	_, err := c.Products(ctx, client.ProductQuery{})
	require.NoError(t, err)
	_, err = c.Products(ctx, client.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, before+1, atomic.LoadInt64(&f.doer.hits))

	_, err = c.Products(ctx, client.ProductQuery{Search: "cake"})
	require.NoError(t, err)
	assert.Equal(t, before+2, atomic.LoadInt64(&f.doer.hits), "different filters use different keys")
}

func TestCartReadsReflectMutations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	vendor := f.newClient(t, "victor", models.RoleVendor)
	customer := f.newClient(t, "carol", models.RoleCustomer)

	product, err := vendor.CreateProduct(ctx, models.ProductInput{Name: name("Macaron Box"), Price: price("18.00")})
	require.NoError(t, err)

	cart, err := customer.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)

	qty := 2
	item, err := customer.AddToCart(ctx, models.AddToCartRequest{ProductID: product.ID, Quantity: &qty})
	require.NoError(t, err)

	cart, err = customer.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)

	_, err = customer.UpdateCartItem(ctx, item.ID, 7)
	require.NoError(t, err)
	cart, err = customer.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 7, cart[0].Quantity)

	require.NoError(t, customer.RemoveCartItem(ctx, item.ID))
	cart, err = customer.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)

	_, err = customer.AddToCart(ctx, models.AddToCartRequest{ProductID: product.ID})
	require.NoError(t, err)
	cart, err = customer.Cart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart, 1)

	require.NoError(t, customer.ClearCart(ctx))
	cart, err = customer.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCreateOrderInvalidatesCartAndOrders(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	vendor := f.newClient(t, "victor", models.RoleVendor)
	customer := f.newClient(t, "carol", models.RoleCustomer)

	product, err := vendor.CreateProduct(ctx, models.ProductInput{Name: name("Tiramisu"), Price: price("8.25")})
	require.NoError(t, err)

	qty := 2
	_, err = customer.AddToCart(ctx, models.AddToCartRequest{ProductID: product.ID, Quantity: &qty})
	require.NoError(t, err)
	cart, err := customer.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	orders, err := customer.Orders(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, orders)

	order, err := customer.CreateOrder(ctx, models.CreateOrderRequest{
		OrderData: models.OrderData{
			VendorID: "victor",
			DeliveryAddress: models.Address{
				Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US",
			},
		},
		OrderItems: []models.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("16.50").Equal(order.Total))

	cart, err = customer.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
	orders, err = customer.Orders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	stats, err := vendor.VendorStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalOrders)

	_, err = vendor.UpdateOrderStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	delivered, err := vendor.Orders(ctx, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Len(t, delivered, 1)
}

func TestFavoritesAndSubscriptions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	vendor := f.newClient(t, "victor", models.RoleVendor)
	customer := f.newClient(t, "carol", models.RoleCustomer)

	product, err := vendor.CreateProduct(ctx, models.ProductInput{Name: name("Fudge"), Price: price("5")})
	require.NoError(t, err)

	ok, err := customer.IsFavorite(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = customer.AddFavorite(ctx, product.ID)
	require.NoError(t, err)
	ok, err = customer.IsFavorite(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	sub, err := customer.CreateSubscription(ctx, models.CreateSubscriptionRequest{VendorID: "victor", PlanType: models.PlanMonthly})
	require.NoError(t, err)
	active := true
	subs, err := customer.Subscriptions(ctx, &active)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	require.NoError(t, customer.CancelSubscription(ctx, sub.ID))
	subs, err = customer.Subscriptions(ctx, &active)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestAPIErrors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	customer := f.newClient(t, "carol", models.RoleCustomer)

	_, err := customer.CreateProduct(ctx, models.ProductInput{Name: name("Nope"), Price: price("1")})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)

	_, err = customer.Product(ctx, "missing")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	anonymous := client.New("http://sweetspot.test", client.WithDoer(f.doer))
	_, err = anonymous.Cart(ctx)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
