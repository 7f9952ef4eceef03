package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"resto/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request from string", err: failure.BadRequestFromString("price must not be negative"), code: http.StatusBadRequest, message: "price must not be negative"},
		{name: "bad request from error", err: failure.BadRequest(errors.New("name is required")), code: http.StatusBadRequest, message: "name is required"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "not found", err: failure.NotFound("order not found"), code: http.StatusNotFound, message: "order not found"},
		{name: "conflict", err: failure.Conflict("category still has menu items"), code: http.StatusConflict, message: "category still has menu items"},
		{name: "forbidden", err: failure.Forbidden("admins only"), code: http.StatusForbidden, message: "admins only"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			assert.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilPassThrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(failure.BadRequestFromString("x")))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(fmt.Errorf("wrapped: %w", failure.NotFound("table not found"))))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, failure.IsClientError(failure.BadRequestFromString("invalid transition")))
	assert.True(t, failure.IsClientError(failure.Conflict("duplicate")))
	assert.False(t, failure.IsClientError(errors.New("connection refused")))
	assert.False(t, failure.IsClientError(failure.InternalError(errors.New("boom"))))
}
