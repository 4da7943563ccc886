package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,phone"`
	Kind  string `json:"kind" validate:"omitempty,is-property-type"`
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "not-an-email"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
}

func TestValidatePassesCleanInput(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email: "owner@example.com",
		Phone: "+91 98765 43210",
		Kind:  "flat",
	})
	assert.NoError(t, err)
}

func TestPhoneRule(t *testing.T) {
	v := New()

	cases := []struct {
		phone string
		valid bool
	}{
		{"+919876543210", true},
		{"020-2567-8901", true},
		{"98765 43210", true},
		{"1234567", true},
		{"12 3456-7890 123-456", true},
		{"12 3456-7890 123-4567", false},
		{"123456", false},
		{"letters", false},
		{"12", false},
	}

	for _, tc := range cases {
		err := v.Validate(&sampleRequest{Email: "a@b.co", Phone: tc.phone})
		if tc.valid {
			assert.NoError(t, err, "phone %q should pass", tc.phone)
		} else {
			assert.Error(t, err, "phone %q should fail", tc.phone)
		}
	}
}

func TestPropertyTypeRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sampleRequest{Email: "a@b.co", Kind: "house"}))
	assert.Error(t, v.Validate(&sampleRequest{Email: "a@b.co", Kind: "castle"}))
}
