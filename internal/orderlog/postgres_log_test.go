package orderlog_test

import (
	"context"
	"encoding/json"
	"testing"

	"go-sweet-storefront/internal/orderlog"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPostgresLog_Schema(t *testing.T) {
	db, mockDB, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mockDB.ExpectExec("CREATE TABLE IF NOT EXISTS order_history").
		WillReturnResult(sqlmock.NewResult(0, 0))

	log := orderlog.NewPostgres(db)
	assert.NoError(t, log.Schema(context.Background()))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPostgresLog_Append(t *testing.T) {
	db, mockDB, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	order := testOrder("order_1")

	mockDB.ExpectExec("INSERT INTO order_history").
		WithArgs(order.PaymentID, order.OrderID, "245.5",
			sqlmock.AnyArg(), sqlmock.AnyArg(), order.Status, order.Timestamp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	log := orderlog.NewPostgres(db)
	assert.NoError(t, log.Append(context.Background(), order))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPostgresLog_List(t *testing.T) {
	db, mockDB, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	want := testOrder("order_1")
	customer, err := json.Marshal(want.CustomerDetails)
	assert.NoError(t, err)
	items, err := json.Marshal(want.Items)
	assert.NoError(t, err)

	t.Run("scans_rows_back_into_orders", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"payment_id", "order_id", "amount", "customer", "items", "status", "ts",
		}).AddRow(want.PaymentID, want.OrderID, "245.50", customer, items, want.Status, want.Timestamp)

		mockDB.ExpectQuery("SELECT payment_id, order_id, amount, customer, items, status, ts").
			WillReturnRows(rows)

		log := orderlog.NewPostgres(db)
		orders, err := log.List(context.Background())
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, want.OrderID, orders[0].OrderID)
		assert.Equal(t, "245.50", orders[0].Amount.StringFixed(2))
		assert.Equal(t, want.CustomerDetails, orders[0].CustomerDetails)
		assert.Len(t, orders[0].Items, 1)
		assert.Equal(t, "Kaju Katli", orders[0].Items[0].Sweet.Name)
	})

	t.Run("bad_amount_is_an_error", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"payment_id", "order_id", "amount", "customer", "items", "status", "ts",
		}).AddRow(want.PaymentID, want.OrderID, "not-a-number", customer, items, want.Status, want.Timestamp)

		mockDB.ExpectQuery("SELECT payment_id, order_id, amount").WillReturnRows(rows)

		log := orderlog.NewPostgres(db)
		_, err := log.List(context.Background())
		assert.Error(t, err)
	})

	assert.NoError(t, mockDB.ExpectationsWereMet())
}
