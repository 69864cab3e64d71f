package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passwordForm struct {
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,min=8,max=128"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(passwordForm{OldPassword: "hunter2hunter2", NewPassword: "correct-horse"})
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(passwordForm{NewPassword: "correct-horse"})
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "is required", valErr.Fields()["OldPassword"])
	assert.Contains(t, valErr.Error(), "OldPassword")
}

func TestValidate_MinLength(t *testing.T) {
	err := Validate(passwordForm{OldPassword: "x", NewPassword: "short"})
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "must be at least 8 characters", valErr.Fields()["NewPassword"])
}
