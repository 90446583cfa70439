package orderlog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	_ "github.com/lib/pq"
)

// PostgresLog stores each order as one row with the item/customer payload
// as JSON. Rows are only ever inserted.
type PostgresLog struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresLog {
	return &PostgresLog{db: db}
}

// Schema creates the backing table when it does not exist yet.
func (p *PostgresLog) Schema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS order_history (
			payment_id  TEXT NOT NULL,
			order_id    TEXT NOT NULL,
			amount      NUMERIC(12,2) NOT NULL,
			customer    JSONB NOT NULL,
			items       JSONB NOT NULL,
			status      TEXT NOT NULL,
			ts          TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (p *PostgresLog) Append(ctx context.Context, order Order) error {
	customer, err := json.Marshal(order.CustomerDetails)
	if err != nil {
		return err
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx,
		`INSERT INTO order_history (payment_id, order_id, amount, customer, items, status, ts)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.PaymentID, order.OrderID, order.Amount.String(),
		customer, items, order.Status, order.Timestamp,
	)
	return err
}

func (p *PostgresLog) List(ctx context.Context) ([]Order, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT payment_id, order_id, amount, customer, items, status, ts
		 FROM order_history ORDER BY ts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var (
			order    Order
			amount   string
			customer []byte
			items    []byte
		)
		if err := rows.Scan(&order.PaymentID, &order.OrderID, &amount,
			&customer, &items, &order.Status, &order.Timestamp); err != nil {
			return nil, err
		}
		order.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(customer, &order.CustomerDetails); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
