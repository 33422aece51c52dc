package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrValidation, http.StatusBadRequest},
		{ErrDuplicateReceipt, http.StatusConflict},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrUpload, http.StatusBadGateway},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestHTTPStatus_wrappedErrors(t *testing.T) {
	err := fmt.Errorf("%w: JT1234567890", ErrDuplicateReceipt)
	if got := HTTPStatus(err); got != http.StatusConflict {
		t.Errorf("HTTPStatus(wrapped) = %d, want %d", got, http.StatusConflict)
	}
}
