package cart

import (
	"net/http"

	"go-sweet-storefront/internal/pkg/apperror"
)

var (
	ErrOutOfStock = apperror.New(
		apperror.CodeConflict,
		"This item is out of stock",
		http.StatusConflict,
	)

	ErrExceedsStock = apperror.New(
		apperror.CodeConflict,
		"Cannot add more than available stock",
		http.StatusConflict,
	)

	ErrQuantityTooLow = apperror.New(
		apperror.CodeInvalidInput,
		"Cart quantity cannot drop below one",
		http.StatusBadRequest,
	)

	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Item not found in cart",
		http.StatusNotFound,
	)

	ErrCartEmpty = apperror.New(
		apperror.CodeInvalidInput,
		"Your cart is empty",
		http.StatusBadRequest,
	)
)
