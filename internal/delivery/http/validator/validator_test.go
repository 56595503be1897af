package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Token    string   `json:"token" validate:"required"`
	Platform string   `json:"platform" validate:"required,oneof=android ios web"`
	Channels []string `json:"channels" validate:"omitempty,dive,oneof=push local email"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{Token: "tok", Platform: "ios"}))

	err := v.Validate(&sample{Platform: "symbian", Channels: []string{"push", "fax"}})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "required", fields["token"])
	assert.Equal(t, "oneof=android ios web", fields["platform"])
	assert.Equal(t, "oneof=push local email", fields["channels[1]"])
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
}
