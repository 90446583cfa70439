package cart

import (
	"errors"
	"sync"

	"go-sweet-storefront/internal/catalog"
	"go-sweet-storefront/internal/storage"

	"github.com/shopspring/decimal"
)

// Line is one product entry in the cart with its requested quantity.
// Invariant: 1 <= Quantity <= Sweet.Quantity (the backend-reported stock).
// Violating mutations are rejected, never clamped silently.
type Line struct {
	Sweet    catalog.Sweet `json:"sweet"`
	Quantity int           `json:"cartQuantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Sweet.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered list of lines, unique by product id. Mutations are
// synchronous and atomic with respect to each other; there is no
// concurrent mutation path in the UI, the mutex only keeps the type safe
// if one ever appears.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	local storage.Store // nil for the session-only dashboard cart
}

// New returns an empty session cart. It is not persisted across restarts.
func New() *Cart {
	return &Cart{}
}

// NewPersistent returns a cart backed by local storage under the fixed
// "cart" key, the path used by the anonymous detail-page flow.
func NewPersistent(local storage.Store) *Cart {
	c := &Cart{local: local}
	var lines []Line
	if err := storage.GetJSON(local, storage.KeyCart, &lines); err == nil {
		c.lines = lines
	}
	return c
}

func (c *Cart) persist() {
	if c.local == nil {
		return
	}
	_ = storage.SetJSON(c.local, storage.KeyCart, c.lines)
}

// AddItem puts one unit of the sweet in the cart. A sweet already present
// has its quantity incremented; either path is rejected when it would
// exceed the available stock.
func (c *Cart) AddItem(sweet catalog.Sweet) error {
	return c.AddQuantity(sweet, 1)
}

// AddQuantity is the detail-page variant: add qty units at once, under
// the same stock cap.
func (c *Cart) AddQuantity(sweet catalog.Sweet, qty int) error {
	if qty <= 0 {
		return ErrQuantityTooLow
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if sweet.Quantity == 0 {
		return ErrOutOfStock
	}

	for i, line := range c.lines {
		if line.Sweet.ID == sweet.ID {
			if line.Quantity+qty > sweet.Quantity {
				return ErrExceedsStock
			}
			c.lines[i].Quantity += qty
			c.persist()
			return nil
		}
	}

	if qty > sweet.Quantity {
		return ErrExceedsStock
	}
	c.lines = append(c.lines, Line{Sweet: sweet, Quantity: qty})
	c.persist()
	return nil
}

// UpdateQuantity adjusts a line by delta. The mutation is rejected as a
// whole if the result would leave [1, stock].
func (c *Cart) UpdateQuantity(sweetID string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, line := range c.lines {
		if line.Sweet.ID != sweetID {
			continue
		}
		next := line.Quantity + delta
		if next <= 0 {
			return ErrQuantityTooLow
		}
		if next > line.Sweet.Quantity {
			return ErrExceedsStock
		}
		c.lines[i].Quantity = next
		c.persist()
		return nil
	}
	return ErrItemNotFound
}

// RemoveItem deletes the line unconditionally.
func (c *Cart) RemoveItem(sweetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, line := range c.lines {
		if line.Sweet.ID == sweetID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// Clear empties the cart. Used after a successful checkout and on logout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	if c.local != nil {
		_ = c.local.Delete(storage.KeyCart)
	}
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

// TotalPrice sums price * quantity across lines, exact to two places.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total.Round(2)
}

// TotalItems sums the requested quantities across lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Quantity reports the cart quantity for one sweet, zero if absent.
func (c *Cart) Quantity(sweetID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range c.lines {
		if line.Sweet.ID == sweetID {
			return line.Quantity
		}
	}
	return 0
}

// IsStockError reports whether err is one of the stock-constraint
// rejections, which the UI surfaces inline rather than as failures.
func IsStockError(err error) bool {
	return errors.Is(err, ErrOutOfStock) || errors.Is(err, ErrExceedsStock)
}
