package razorpay

import (
	"net/http"

	"go-sweet-storefront/internal/pkg/apperror"
)

var (
	ErrPaymentCancelled = apperror.New(
		apperror.CodeGateway,
		"Payment cancelled by user",
		http.StatusBadGateway,
	)

	ErrPaymentTimeout = apperror.New(
		apperror.CodeGateway,
		"No captured payment appeared for the order",
		http.StatusBadGateway,
	)
)
