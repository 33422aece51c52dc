package apperrors

import (
	"errors"
	"net/http"
)

// Tagged error kinds returned by the core. Handlers and callers classify
// failures with errors.Is, never by message text.
var (
	ErrValidation       = errors.New("validation failed")
	ErrDuplicateReceipt = errors.New("duplicate receipt number")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrUpload           = errors.New("upload failed")
	ErrCompression      = errors.New("compression failed")
)

// HTTPStatus maps an error to the status code its kind deserves.
// Unrecognized errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateReceipt):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
