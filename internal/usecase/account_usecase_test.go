package usecase

import (
	"context"
	"testing"

	"fastfood/internal/domain/model"
	auth "fastfood/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func (e *testEnv) accountUC() *AccountUsecase {
	return NewAccountUsecase(e.tx, e.accounts, e.customers,
		auth.NewBcryptPasswordHasher(bcrypt.MinCost), auth.NewBcryptPasswordVerifier())
}

func strPtr(s string) *string { return &s }

func TestAccount_GetAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.seedCustomer(t, "an", "an@example.com")
	env.seedCustomer(t, "binh", "binh@example.com")
	uc := env.accountUC()

	got, err := uc.GetMyAccount(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "an", got.Username)
	assert.Equal(t, "an@example.com", got.Email)

	//nilのフィールドは変えない
	out, err := uc.UpdateMyAccount(ctx, p, model.CustomerPatch{Name: strPtr("  An Nguyen "), Phone: strPtr("0901234567")})
	require.NoError(t, err)
	assert.Equal(t, "An Nguyen", out.Name)
	assert.Equal(t, "0901234567", out.Phone)
	assert.Equal(t, "an@example.com", out.Email)

	_, err = uc.UpdateMyAccount(ctx, p, model.CustomerPatch{Email: strPtr("binh@example.com")})
	requireKind(t, err, ErrConflict)

	_, err = uc.UpdateMyAccount(ctx, p, model.CustomerPatch{Email: strPtr("not-an-email")})
	requireKind(t, err, ErrValidation)

	_, err = uc.UpdateMyAccount(ctx, p, model.CustomerPatch{Name: strPtr("   ")})
	requireKind(t, err, ErrValidation)

	_, err = uc.GetMyAccount(ctx, model.Principal{AccountID: 9999})
	requireKind(t, err, ErrUnauthenticated)
}

func TestAccount_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.seedCustomer(t, "an", "")
	uc := env.accountUC()

	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&model.Account{}).Where("id = ?", p.AccountID).Update("password_hash", string(hashed)).Error)

	err = uc.ChangePassword(ctx, p, ChangePasswordInput{OldPassword: "wrong", NewPassword: "newpass", ConfirmPassword: "newpass"})
	requireKind(t, err, ErrValidation)

	err = uc.ChangePassword(ctx, p, ChangePasswordInput{OldPassword: "oldpass", NewPassword: "newpass", ConfirmPassword: "other"})
	requireKind(t, err, ErrValidation)

	err = uc.ChangePassword(ctx, p, ChangePasswordInput{OldPassword: "oldpass", NewPassword: "abc", ConfirmPassword: "abc"})
	requireKind(t, err, ErrValidation)

	require.NoError(t, uc.ChangePassword(ctx, p, ChangePasswordInput{OldPassword: "oldpass", NewPassword: "newpass", ConfirmPassword: "newpass"}))

	acc, err := env.accounts.FindByID(ctx, p.AccountID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("newpass")))
}
