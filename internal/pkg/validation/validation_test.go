package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=student industry"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(signup{Email: "nope", Password: "123", Role: "admin"})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{
		{Field: "email", Message: "must be a valid email"},
		{Field: "password", Message: "must be at least 6"},
		{Field: "role", Message: "must be one of: student industry"},
	}, verr.Fields)
	assert.Equal(t, "validation failed: email must be a valid email", err.Error())
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(signup{Email: "a@b.co", Password: "secret1"}))
}
