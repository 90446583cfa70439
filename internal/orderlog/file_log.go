package orderlog

import (
	"context"

	"go-sweet-storefront/internal/storage"
)

// fileLog keeps the order history in local storage under the fixed
// "orderHistory" key, the same record the browser build kept.
type fileLog struct {
	local storage.Store
}

func NewLocal(local storage.Store) Log {
	return &fileLog{local: local}
}

func (f *fileLog) Append(_ context.Context, order Order) error {
	var orders []Order
	if err := storage.GetJSON(f.local, storage.KeyOrderHistory, &orders); err != nil && err != storage.ErrNotFound {
		return err
	}
	orders = append(orders, order)
	return storage.SetJSON(f.local, storage.KeyOrderHistory, orders)
}

func (f *fileLog) List(_ context.Context) ([]Order, error) {
	var orders []Order
	err := storage.GetJSON(f.local, storage.KeyOrderHistory, &orders)
	if err == storage.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return orders, nil
}
