package auth

import (
	"net/http"

	"go-sweet-storefront/internal/pkg/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrEmptyToken = apperror.New(
		apperror.CodeInternalError,
		"Backend returned an empty token",
		http.StatusInternalServerError,
	)
)
