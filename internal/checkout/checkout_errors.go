package checkout

import (
	"net/http"

	"go-sweet-storefront/internal/pkg/apperror"
)

var (
	ErrPaymentInFlight = apperror.New(
		apperror.CodeConflict,
		"A payment attempt is already in progress",
		http.StatusConflict,
	)

	ErrDetailsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Delivery details must be submitted before payment",
		http.StatusBadRequest,
	)

	ErrAlreadyCompleted = apperror.New(
		apperror.CodeConflict,
		"This checkout has already completed",
		http.StatusConflict,
	)

	ErrOrderProcessing = apperror.New(
		apperror.CodeInternalError,
		"Failed to process order after payment",
		http.StatusInternalServerError,
	)
)
