package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		is     error
	}{
		{"not found", gorm.ErrRecordNotFound, http.StatusNotFound, ErrNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, http.StatusConflict, ErrAlreadyExists},
		{"sqlite unique", errors.New("UNIQUE constraint failed: users.username"), http.StatusConflict, ErrAlreadyExists},
		{"postgres unique", errors.New(`duplicate key value violates unique constraint "idx_like_project_user"`), http.StatusConflict, ErrAlreadyExists},
		{"foreign key", gorm.ErrForeignKeyViolated, http.StatusBadRequest, nil},
		{"connection", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"other", errors.New("boom"), http.StatusInternalServerError, ErrDatabaseQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("load", "project", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			assert.Equal(t, tt.cause, err.Cause)
		})
	}
}

func TestNewDatabaseErrorKeepsApiErr(t *testing.T) {
	inner := NewForbiddenError("not yours")
	assert.Same(t, inner, NewDatabaseError("delete", "project", fmt.Errorf("wrapped: %w", inner)))
}

func TestGetFullErrorFollowsCauses(t *testing.T) {
	err := NewTransactionFailedError("upload", NewDatabaseError("create", "project", errors.New("disk full")))
	assert.Equal(t,
		"transaction failed: Transaction failed during upload -> database query failed: Failed to create project -> disk full",
		err.GetFullError())
}

func TestAuthErrorsAreUnauthorized(t *testing.T) {
	for _, err := range []*ApiErr{NewMissingTokenError(), NewInvalidTokenError(nil), NewSessionExpiredError(), NewInvalidCredentialsError("student")} {
		assert.Equal(t, http.StatusUnauthorized, err.StatusCode)
		assert.True(t, IsUnauthorized(err))
	}
	assert.ErrorIs(t, NewSessionExpiredError(), ErrSessionExpired)

	role := NewInsufficientRoleError("admin")
	assert.Equal(t, http.StatusForbidden, role.StatusCode)
	assert.True(t, IsForbidden(role))
	assert.ErrorIs(t, role, ErrInsufficientRole)
}

func TestValidationError(t *testing.T) {
	v := &ValidationError{}
	assert.NoError(t, v.OrNil())

	v.AddMissing("title")
	v.AddInvalid("visibility", "must be Public or Private")
	err := v.OrNil()

	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{"title", "visibility"}, v.Fields())
	assert.Equal(t, http.StatusBadRequest, v.StatusCode())
	assert.Equal(t, "validation error: missing required fields: title; invalid visibility: must be Public or Private", err.Error())
}

func TestConflictAndNotFound(t *testing.T) {
	assert.True(t, IsConflict(NewConflictError("Username already exists!")))
	assert.True(t, IsNotFound(NewNotFound("profile")))
	assert.Equal(t, "profile not found", NewNotFound("profile").Error())
}
