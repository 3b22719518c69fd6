package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected int
	}{
		{KindValidation, http.StatusUnprocessableEntity},
		{KindUnprocessable, http.StatusUnprocessableEntity},
		{KindBadRequest, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{KindBadGateway, http.StatusBadGateway},
		{KindInternal, http.StatusInternalServerError},
		{ErrorKind("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := &APIError{Kind: tt.kind, Message: "boom"}
			assert.Equal(t, tt.expected, err.HTTPStatus())
			assert.Equal(t, "boom", err.Error())
		})
	}
}

func TestConstructors(t *testing.T) {
	validation := NewValidationError("Validation failed", map[string]string{"file": "is required"})
	assert.Equal(t, KindValidation, validation.Kind)
	assert.Equal(t, "is required", validation.Details["file"])

	notFound := NewNotFoundError("route /nope")
	assert.Equal(t, "route /nope not found", notFound.Message)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus())

	internal := NewInternalError("Internal server error")
	assert.Equal(t, KindInternal, internal.Kind)
}
