package catalog

import (
	"net/http"

	"go-sweet-storefront/internal/pkg/apperror"
)

var (
	ErrInvalidSweetID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid sweet ID",
		http.StatusBadRequest,
	)

	ErrInvalidQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity must be positive",
		http.StatusBadRequest,
	)
)
