package catalog

import "github.com/shopspring/decimal"

// Sweet is a product as reported by the backend. The backend owns it;
// the client never mutates a Sweet locally.
type Sweet struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (s Sweet) InStock() bool {
	return s.Quantity > 0
}

type CreateSweetRequest struct {
	Name        string          `json:"name" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Description string          `json:"description,omitempty"`
}

type UpdateSweetRequest struct {
	Name        string          `json:"name" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Description string          `json:"description,omitempty"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// Stats summarises the inventory for the admin view.
type Stats struct {
	TotalSweets    int
	TotalStock     int
	OutOfStock     []string
	LowStock       []string
	Categories     int
	InventoryValue decimal.Decimal
}
