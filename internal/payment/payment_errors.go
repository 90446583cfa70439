package payment

import (
	"net/http"

	"go-sweet-storefront/internal/pkg/apperror"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payment amount",
		http.StatusBadRequest,
	)

	ErrVerificationFailed = apperror.New(
		apperror.CodeGateway,
		"Payment verification failed",
		http.StatusBadGateway,
	)
)
