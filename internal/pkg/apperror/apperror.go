package apperror

import "net/http"

const (
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeNetwork       = "NETWORK"
	CodeGateway       = "GATEWAY"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError is the tagged error produced at the HTTP-client boundary.
// Callers branch on Code, never on raw status strings.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code, message string, status int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// FromStatus maps a backend response status to a tagged error.
// 401 is an authentication failure, 403 an authorization failure;
// the two must never be conflated (only the former invalidates a session).
func FromStatus(status int, message string) *AppError {
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		return New(CodeUnauthorized, message, status)
	case status == http.StatusForbidden:
		return New(CodeForbidden, message, status)
	case status == http.StatusNotFound:
		return New(CodeNotFound, message, status)
	case status == http.StatusConflict:
		return New(CodeConflict, message, status)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return New(CodeInvalidInput, message, status)
	case status >= 500:
		return New(CodeInternalError, message, status)
	default:
		return New(CodeNetwork, message, status)
	}
}
