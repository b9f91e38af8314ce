package auth

import (
	"context"
	"testing"

	"fastfood/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUser_Success(t *testing.T) {
	ctx := context.Background()
	d := newSQLiteDeps(t)
	uc := NewRegisterUserUsecase(d.tx, NewBcryptPasswordHasher(bcrypt.MinCost))

	out, err := uc.Execute(ctx, RegisterUserInput{
		Username:        " an123 ",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Name:            "An",
		Phone:           "0901234567",
		Email:           "an@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "an123", out.Username)
	assert.Equal(t, []string{"Customer"}, out.Roles)

	acc, err := d.accounts.FindByUsername(ctx, "an123")
	require.NoError(t, err)
	assert.True(t, acc.IsActive)
	assert.NotEqual(t, "secret1", acc.PasswordHash)
	assert.True(t, NewBcryptPasswordVerifier().Verify("secret1", acc.PasswordHash))

	c, err := d.customers.FindByEmail(ctx, "an@example.com")
	require.NoError(t, err)
	assert.Equal(t, out.CustomerID, c.ID)
	assert.Equal(t, acc.ID, c.AccountID)
}

func TestRegisterUser_Conflicts(t *testing.T) {
	ctx := context.Background()
	d := newSQLiteDeps(t)
	uc := NewRegisterUserUsecase(d.tx, NewBcryptPasswordHasher(bcrypt.MinCost))

	base := RegisterUserInput{
		Username: "an123", Password: "secret1", ConfirmPassword: "secret1",
		Name: "An", Email: "an@example.com",
	}
	_, err := uc.Execute(ctx, base)
	require.NoError(t, err)

	dupUser := base
	dupUser.Email = "other@example.com"
	_, err = uc.Execute(ctx, dupUser)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	dupEmail := base
	dupEmail.Username = "binh456"
	_, err = uc.Execute(ctx, dupEmail)
	assert.ErrorIs(t, err, ErrEmailTaken)

	//失敗した登録は何も残さない
	var n int64
	require.NoError(t, d.db.Model(&model.Account{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, d.db.Model(&model.Customer{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRegisterUser_Validation(t *testing.T) {
	d := newSQLiteDeps(t)
	uc := NewRegisterUserUsecase(d.tx, NewBcryptPasswordHasher(bcrypt.MinCost))

	tests := []struct {
		name string
		in   RegisterUserInput
		want error
	}{
		{"missing username", RegisterUserInput{Password: "secret1", ConfirmPassword: "secret1", Name: "An"}, ErrMissingField},
		{"missing name", RegisterUserInput{Username: "an123", Password: "secret1", ConfirmPassword: "secret1"}, ErrMissingField},
		{"short password", RegisterUserInput{Username: "an123", Password: "abc", ConfirmPassword: "abc", Name: "An"}, ErrPasswordTooShort},
		{"mismatch", RegisterUserInput{Username: "an123", Password: "secret1", ConfirmPassword: "secret2", Name: "An"}, ErrPasswordMismatch},
		{"bad email", RegisterUserInput{Username: "an123", Password: "secret1", ConfirmPassword: "secret1", Name: "An", Email: "not-an-email"}, ErrInvalidEmailFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
