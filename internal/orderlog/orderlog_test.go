package orderlog_test

import (
	"context"
	"testing"
	"time"

	"go-sweet-storefront/internal/cart"
	"go-sweet-storefront/internal/catalog"
	"go-sweet-storefront/internal/orderlog"
	"go-sweet-storefront/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testOrder(orderID string) orderlog.Order {
	price, _ := decimal.NewFromString("45.50")
	return orderlog.Order{
		PaymentID: "pay_" + orderID,
		OrderID:   orderID,
		Amount:    decimal.RequireFromString("245.50"),
		CustomerDetails: orderlog.CustomerDetails{
			Name:    "Asha Rao",
			Email:   "asha@example.com",
			Phone:   "9876543210",
			Address: "12 MG Road",
			City:    "Bengaluru",
			Pincode: "560001",
		},
		Items: []cart.Line{{
			Sweet:    catalog.Sweet{ID: "s1", Name: "Kaju Katli", Category: "Barfi", Price: price, Quantity: 20},
			Quantity: 5,
		}},
		Status:    orderlog.StatusCompleted,
		Timestamp: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryLog(t *testing.T) {
	ctx := context.Background()
	log := orderlog.NewMemory()

	t.Run("empty_log_lists_nothing", func(t *testing.T) {
		orders, err := log.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("appends_in_order", func(t *testing.T) {
		assert.NoError(t, log.Append(ctx, testOrder("order_1")))
		assert.NoError(t, log.Append(ctx, testOrder("order_2")))

		orders, err := log.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, orders, 2)
		assert.Equal(t, "order_1", orders[0].OrderID)
		assert.Equal(t, "order_2", orders[1].OrderID)
	})
}

func TestLocalLog(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemory()
	log := orderlog.NewLocal(local)

	t.Run("round_trip", func(t *testing.T) {
		want := testOrder("order_1")
		assert.NoError(t, log.Append(ctx, want))

		orders, err := log.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, want.OrderID, orders[0].OrderID)
		assert.Equal(t, "245.50", orders[0].Amount.StringFixed(2))
		assert.Equal(t, want.CustomerDetails, orders[0].CustomerDetails)
		assert.Len(t, orders[0].Items, 1)
		assert.Equal(t, 5, orders[0].Items[0].Quantity)
	})

	t.Run("history_survives_a_new_log_instance", func(t *testing.T) {
		assert.NoError(t, log.Append(ctx, testOrder("order_2")))

		reopened := orderlog.NewLocal(local)
		orders, err := reopened.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("corrupt_history_reads_as_empty", func(t *testing.T) {
		assert.NoError(t, local.Set(storage.KeyOrderHistory, []byte("undefined")))
		orders, err := log.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, orders)
	})
}
