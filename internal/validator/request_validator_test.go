package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerReq struct {
	Username        string `validate:"required,username"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Email           string `validate:"omitempty,email"`
	Phone           string `validate:"phone"`
}

func TestRequestValidator_OK(t *testing.T) {
	v := New()
	err := v.Validate(&registerReq{
		Username:        "alice_01",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Email:           "alice@example.com",
		Phone:           "+84901234567",
	})
	assert.NoError(t, err)
}

func TestRequestValidator_Errors(t *testing.T) {
	v := New()

	cases := []struct {
		name string
		req  registerReq
		msg  string
	}{
		{"missing username", registerReq{Password: "secret1", ConfirmPassword: "secret1"}, "username is required"},
		{"bad username", registerReq{Username: "a b", Password: "secret1", ConfirmPassword: "secret1"}, "invalid username"},
		{"short password", registerReq{Username: "alice", Password: "123", ConfirmPassword: "123"}, "password must be at least 6"},
		{"mismatch", registerReq{Username: "alice", Password: "secret1", ConfirmPassword: "secret2"}, "confirmpassword must match password"},
		{"bad email", registerReq{Username: "alice", Password: "secret1", ConfirmPassword: "secret1", Email: "nope"}, "invalid email format"},
		{"bad phone", registerReq{Username: "alice", Password: "secret1", ConfirmPassword: "secret1", Phone: "abc"}, "invalid phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}
