package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned by direct order lookups for unknown ids.
	ErrNotFound = errors.New("order not found")

	// ErrDuplicateOrder is returned by the store when an insert hits an
	// existing order id. Callers treat it as intentional idempotency, not
	// as a failure.
	ErrDuplicateOrder = errors.New("order already exists")

	// ErrInvalidSignature is returned in strict webhook mode when the
	// provided signature does not match the expected one.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrMissingConfig is returned when an operation needs a secret or URL
	// that was never configured. Signing fails fast on it rather than
	// producing a signature over an empty key.
	ErrMissingConfig = errors.New("missing required configuration")
)

func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrNotFound):
		return "not_found"

	case errors.Is(err, ErrDuplicateOrder):
		return "duplicate_order"

	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"

	case errors.Is(err, ErrMissingConfig):
		return "missing_config"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrInvalidSignature):
		return http.StatusBadRequest

	case errors.Is(err, ErrDuplicateOrder):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
