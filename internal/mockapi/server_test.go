package mockapi_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-sweet-storefront/internal/auth"
	"go-sweet-storefront/internal/cart"
	"go-sweet-storefront/internal/catalog"
	"go-sweet-storefront/internal/checkout"
	"go-sweet-storefront/internal/httpclient"
	"go-sweet-storefront/internal/mockapi"
	"go-sweet-storefront/internal/orderlog"
	"go-sweet-storefront/internal/payment"
	"go-sweet-storefront/internal/pkg/apperror"
	"go-sweet-storefront/internal/razorpay"
	"go-sweet-storefront/internal/session"
	"go-sweet-storefront/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const rzpSecret = "rzp-test-secret"

type client struct {
	session *session.Store
	auth    auth.Service
	catalog catalog.Service
	payment payment.Service
}

// newBackend starts the mock server with a seeded admin and inventory and
// returns a fully wired client, the way the storefront itself connects.
func newBackend(t *testing.T) *client {
	t.Helper()

	server := mockapi.New(mockapi.Config{
		JWTSecret:         "test-jwt-secret",
		RazorpayKeySecret: rzpSecret,
	})
	assert.NoError(t, server.SeedAdmin("admin@sweetshop.dev", "admin123"))
	server.Seed([]catalog.Sweet{
		{ID: "s1", Name: "Kaju Katli", Category: "Barfi", Price: decimal.RequireFromString("45.50"), Quantity: 20},
		{ID: "s2", Name: "Gulab Jamun", Category: "Syrup", Price: decimal.RequireFromString("12.00"), Quantity: 3},
	})

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	store := session.NewStore(session.Deps{Local: storage.NewMemory()})
	httpc := httpclient.New(httpclient.Deps{BaseURL: ts.URL, Session: store})

	return &client{
		session: store,
		auth:    auth.NewService(auth.Deps{Client: httpc, Session: store}),
		catalog: catalog.NewService(catalog.Deps{Client: httpc}),
		payment: payment.NewService(payment.Deps{Client: httpc}),
	}
}

func login(t *testing.T, c *client, email, password string) {
	t.Helper()
	_, err := c.auth.Login(context.Background(), auth.LoginRequest{Email: email, Password: password})
	assert.NoError(t, err)
}

func registerUser(t *testing.T, c *client) {
	t.Helper()
	_, err := c.auth.Register(context.Background(), auth.RegisterRequest{
		Email:     "asha@example.com",
		Firstname: "Asha",
		Lastname:  "Rao",
		Password:  "secret123",
	})
	assert.NoError(t, err)
}

func TestBackend_Auth(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog_requires_a_token", func(t *testing.T) {
		c := newBackend(t)
		_, err := c.catalog.List(ctx)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})

	t.Run("register_then_browse", func(t *testing.T) {
		c := newBackend(t)
		registerUser(t, c)
		assert.True(t, c.session.IsAuthenticated())
		assert.False(t, c.session.IsAdmin())

		sweets, err := c.catalog.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, sweets, 2)
	})

	t.Run("duplicate_registration_conflicts", func(t *testing.T) {
		c := newBackend(t)
		registerUser(t, c)

		_, err := c.auth.Register(ctx, auth.RegisterRequest{
			Email:     "asha@example.com",
			Firstname: "Asha",
			Lastname:  "Rao",
			Password:  "secret123",
		})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
	})

	t.Run("wrong_password_is_unauthorized", func(t *testing.T) {
		c := newBackend(t)
		_, err := c.auth.Login(ctx, auth.LoginRequest{
			Email:    "admin@sweetshop.dev",
			Password: "wrong",
		})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
		assert.False(t, c.session.IsAuthenticated())
	})

	t.Run("admin_login_carries_the_role", func(t *testing.T) {
		c := newBackend(t)
		login(t, c, "admin@sweetshop.dev", "admin123")
		assert.True(t, c.session.IsAdmin())

		expiry, ok := c.session.TokenExpiry()
		assert.True(t, ok)
		assert.True(t, expiry.After(time.Now()))
	})
}

func TestBackend_Search(t *testing.T) {
	c := newBackend(t)
	registerUser(t, c)
	ctx := context.Background()

	t.Run("matches_name_and_category", func(t *testing.T) {
		byName, err := c.catalog.Search(ctx, "kaju")
		assert.NoError(t, err)
		assert.Len(t, byName, 1)

		byCategory, err := c.catalog.Search(ctx, "syrup")
		assert.NoError(t, err)
		assert.Len(t, byCategory, 1)
		assert.Equal(t, "Gulab Jamun", byCategory[0].Name)
	})

	t.Run("no_match_is_an_empty_list", func(t *testing.T) {
		sweets, err := c.catalog.Search(ctx, "chocolate")
		assert.NoError(t, err)
		assert.NotNil(t, sweets)
		assert.Empty(t, sweets)
	})
}

func TestBackend_AdminBoundary(t *testing.T) {
	ctx := context.Background()

	t.Run("regular_user_cannot_manage_inventory", func(t *testing.T) {
		c := newBackend(t)
		registerUser(t, c)

		_, err := c.catalog.Create(ctx, catalog.CreateSweetRequest{
			Name:     "Jalebi",
			Category: "Syrup",
			Price:    decimal.RequireFromString("8.00"),
			Quantity: 10,
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)

		// an authorization failure must not end the session
		assert.True(t, c.session.IsAuthenticated())
	})

	t.Run("admin_full_inventory_cycle", func(t *testing.T) {
		c := newBackend(t)
		login(t, c, "admin@sweetshop.dev", "admin123")

		created, err := c.catalog.Create(ctx, catalog.CreateSweetRequest{
			Name:     "Jalebi",
			Category: "Syrup",
			Price:    decimal.RequireFromString("8.00"),
			Quantity: 10,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		updated, err := c.catalog.Update(ctx, created.ID, catalog.UpdateSweetRequest{
			Name:     "Jalebi",
			Category: "Syrup",
			Price:    decimal.RequireFromString("9.50"),
			Quantity: 12,
		})
		assert.NoError(t, err)
		assert.Equal(t, "9.50", updated.Price.StringFixed(2))

		assert.NoError(t, c.catalog.Restock(ctx, created.ID, 8))

		err = c.catalog.UploadImage(ctx, created.ID, "jalebi.png", strings.NewReader("png-bytes"))
		assert.NoError(t, err)

		sweets, err := c.catalog.List(ctx)
		assert.NoError(t, err)
		for _, s := range sweets {
			if s.ID == created.ID {
				assert.Equal(t, 20, s.Quantity)
				assert.Equal(t, "/images/"+created.ID+"/jalebi.png", s.ImageURL)
			}
		}

		assert.NoError(t, c.catalog.Delete(ctx, created.ID))
		_, err = c.catalog.Update(ctx, created.ID, catalog.UpdateSweetRequest{
			Name: "x", Category: "y", Price: decimal.RequireFromString("1"), Quantity: 1,
		})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})
}

func TestBackend_Purchase(t *testing.T) {
	c := newBackend(t)
	registerUser(t, c)
	ctx := context.Background()

	t.Run("decrements_stock", func(t *testing.T) {
		assert.NoError(t, c.catalog.Purchase(ctx, "s2", 2))

		sweets, err := c.catalog.Search(ctx, "gulab")
		assert.NoError(t, err)
		assert.Len(t, sweets, 1)
		assert.Equal(t, 1, sweets[0].Quantity)
	})

	t.Run("insufficient_stock_conflicts", func(t *testing.T) {
		err := c.catalog.Purchase(ctx, "s2", 5)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
	})
}

func TestBackend_PaymentVerification(t *testing.T) {
	c := newBackend(t)
	registerUser(t, c)
	ctx := context.Background()

	order, err := c.payment.CreateOrder(ctx, payment.CreateOrderRequest{
		Amount:   decimal.RequireFromString("245.50"),
		Currency: "INR",
	})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderID, "order_"))
	assert.Equal(t, int64(24550), order.Amount)

	t.Run("valid_signature_verifies", func(t *testing.T) {
		sig := razorpay.Sign(order.OrderID, "pay_123", rzpSecret)
		resp, err := c.payment.VerifyPayment(ctx, payment.VerifyPaymentRequest{
			RazorpayOrderID:   order.OrderID,
			RazorpayPaymentID: "pay_123",
			RazorpaySignature: sig,
		})
		assert.NoError(t, err)
		assert.True(t, resp.Verified)
	})

	t.Run("tampered_signature_is_rejected", func(t *testing.T) {
		_, err := c.payment.VerifyPayment(ctx, payment.VerifyPaymentRequest{
			RazorpayOrderID:   order.OrderID,
			RazorpayPaymentID: "pay_123",
			RazorpaySignature: "forged",
		})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("unknown_order_is_rejected", func(t *testing.T) {
		_, err := c.payment.VerifyPayment(ctx, payment.VerifyPaymentRequest{
			RazorpayOrderID:   "order_unknown",
			RazorpayPaymentID: "pay_123",
			RazorpaySignature: razorpay.Sign("order_unknown", "pay_123", rzpSecret),
		})
		assert.Error(t, err)
	})
}

// TestBackend_FullCheckout runs the whole purchase path end to end: cart,
// backend order, sandbox gateway, verification, stock decrement, order log.
func TestBackend_FullCheckout(t *testing.T) {
	c := newBackend(t)
	registerUser(t, c)
	ctx := context.Background()

	sweets, err := c.catalog.List(ctx)
	assert.NoError(t, err)

	shoppingCart := cart.New()
	for _, s := range sweets {
		if s.ID == "s1" {
			assert.NoError(t, shoppingCart.AddQuantity(s, 2)) // 91.00
		}
	}

	log := orderlog.NewMemory()
	done := make(chan struct{})
	flow := checkout.NewFlow(checkout.Deps{
		Cart:         shoppingCart,
		Payments:     c.payment,
		Gateway:      razorpay.NewSandbox(rzpSecret),
		Inventory:    c.catalog,
		Log:          log,
		ConfirmDelay: 5 * time.Millisecond,
		OnSuccess:    func() { close(done) },
	})

	assert.NoError(t, flow.SubmitDetails(checkout.Details{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 MG Road",
		City:    "Bengaluru",
		Pincode: "560001",
	}))

	order, err := flow.Pay(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "91.00", order.Amount.StringFixed(2))
	assert.Equal(t, orderlog.StatusCompleted, order.Status)

	// backend stock went down
	remaining, err := c.catalog.Search(ctx, "kaju")
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, 18, remaining[0].Quantity)

	// local history has exactly this order
	orders, err := log.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.PaymentID, orders[0].PaymentID)

	assert.True(t, shoppingCart.IsEmpty())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("checkout never signalled completion")
	}
}
