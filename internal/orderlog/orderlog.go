package orderlog

import (
	"context"
	"sync"
	"time"

	"go-sweet-storefront/internal/cart"

	"github.com/shopspring/decimal"
)

const StatusCompleted = "completed"

type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Notes   string `json:"notes,omitempty"`
}

// Order is one completed checkout. Append-only: once written it is never
// mutated.
type Order struct {
	PaymentID       string          `json:"paymentId"`
	OrderID         string          `json:"orderId"`
	Amount          decimal.Decimal `json:"amount"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	Items           []cart.Line     `json:"items"`
	Status          string          `json:"status"`
	Timestamp       time.Time       `json:"timestamp"`
}

// Log is the order-history record. Implementations exist for local file
// state, redis, and postgres so non-browser targets can use real storage.
type Log interface {
	Append(ctx context.Context, order Order) error
	List(ctx context.Context) ([]Order, error)
}

// ==================== MEMORY ====================

type memoryLog struct {
	mu     sync.Mutex
	orders []Order
}

func NewMemory() Log {
	return &memoryLog{}
}

func (m *memoryLog) Append(_ context.Context, order Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	return nil
}

func (m *memoryLog) List(_ context.Context) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Order(nil), m.orders...), nil
}
