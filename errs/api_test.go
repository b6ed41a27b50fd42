package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestApiErrWrapsSentinels(t *testing.T) {
	err := NewValidationError("email", "not a valid email address")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "email", err.Field)

	var apiErr *ApiErr
	assert.True(t, errors.As(error(err), &apiErr))
}

func TestNotFoundCarriesEntity(t *testing.T) {
	err := NewNotFoundError("post")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "post")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
}

func TestGetFullErrorChainsCauses(t *testing.T) {
	inner := NewDatabaseError("find", "post", gorm.ErrRecordNotFound)
	assert.Contains(t, inner.GetFullError(), gorm.ErrRecordNotFound.Error())
}

func TestNewDatabaseError(t *testing.T) {
	cases := []struct {
		name     string
		cause    error
		status   int
		sentinel error
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, ErrNotFound},
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_category_name"`), http.StatusConflict, ErrConflict},
		{"sqlite duplicate", errors.New("UNIQUE constraint failed: category.name"), http.StatusConflict, ErrConflict},
		{"connection refused", errors.New("failed to establish connection: refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"anything else", errors.New("disk I/O error"), http.StatusInternalServerError, ErrDatabaseQuery},
		{"nil cause", nil, http.StatusInternalServerError, ErrDatabaseQuery},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewDatabaseError("create", "category", tc.cause)
			assert.Equal(t, tc.status, err.StatusCode)
			assert.True(t, errors.Is(err, tc.sentinel))
		})
	}
}

func TestCheckers(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("f", "r")))
	assert.True(t, IsConflict(NewConflictError("dup")))
	assert.True(t, IsNotFound(NewNotFoundError("post")))
	assert.True(t, IsNotAllowed(NewNotAllowedError("nope")))
	assert.True(t, IsProtectedEntity(NewProtectedEntityError("default category")))
	assert.True(t, IsUnauthorized(Unauthorized))

	assert.False(t, IsNotFound(NewConflictError("dup")))
	assert.False(t, IsValidation(errors.New("plain")))
}
