package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fastfood/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type staticCode string

func (c staticCode) NewCode() (string, error) { return string(c), nil }

func setupReset(t *testing.T) (*sqliteDeps, *PasswordResetUsecase, *MockMailer, *model.Account) {
	t.Helper()
	d := newSQLiteDeps(t)
	acc := d.seedAccount(t, "an", true)
	require.NoError(t, d.customers.Create(context.Background(), &model.Customer{
		AccountID: acc.ID, Name: "An", Email: "an@example.com",
	}))
	mailer := new(MockMailer)
	uc := NewPasswordResetUsecase(d.accounts, d.customers, NewBcryptPasswordHasher(bcrypt.MinCost), mailer, staticCode("123456"), d.clock)
	return d, uc, mailer, acc
}

func TestPasswordReset_FullFlow(t *testing.T) {
	ctx := context.Background()
	d, uc, mailer, acc := setupReset(t)

	mailer.On("Send", mock.Anything, "an@example.com", "Password reset code",
		mock.MatchedBy(func(body string) bool { return strings.Contains(body, "123456") })).
		Return(nil).Once()

	require.NoError(t, uc.ForgotPassword(ctx, " an@example.com "))

	stored, err := d.accounts.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "123456", stored.ResetCode)
	require.NotNil(t, stored.ResetCodeExpiry)
	assert.True(t, stored.ResetCodeExpiry.Equal(d.clock.now.Add(ResetCodeTTL)))

	require.NoError(t, uc.VerifyResetCode(ctx, "an@example.com", "123456"))
	assert.ErrorIs(t, uc.VerifyResetCode(ctx, "an@example.com", "654321"), ErrInvalidResetCode)

	require.NoError(t, uc.ResetPassword(ctx, ResetPasswordInput{
		Email: "an@example.com", Code: "123456", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	}))

	stored, err = d.accounts.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ResetCode)
	assert.Nil(t, stored.ResetCodeExpiry)
	assert.True(t, NewBcryptPasswordVerifier().Verify("newpass1", stored.PasswordHash))

	//コードは使い切り
	assert.ErrorIs(t, uc.VerifyResetCode(ctx, "an@example.com", "123456"), ErrInvalidResetCode)
	mailer.AssertExpectations(t)
}

func TestPasswordReset_Expired(t *testing.T) {
	ctx := context.Background()
	d, uc, mailer, _ := setupReset(t)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, uc.ForgotPassword(ctx, "an@example.com"))

	d.clock.now = d.clock.now.Add(ResetCodeTTL)
	assert.ErrorIs(t, uc.VerifyResetCode(ctx, "an@example.com", "123456"), ErrResetCodeExpired)

	err := uc.ResetPassword(ctx, ResetPasswordInput{
		Email: "an@example.com", Code: "123456", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	assert.ErrorIs(t, err, ErrResetCodeExpired)
}

func TestPasswordReset_Errors(t *testing.T) {
	ctx := context.Background()
	_, uc, mailer, _ := setupReset(t)

	assert.ErrorIs(t, uc.ForgotPassword(ctx, "nobody@example.com"), ErrEmailNotFound)
	assert.ErrorIs(t, uc.ForgotPassword(ctx, ""), ErrMissingField)

	//コード未発行
	assert.ErrorIs(t, uc.VerifyResetCode(ctx, "an@example.com", "123456"), ErrInvalidResetCode)

	assert.ErrorIs(t, uc.ResetPassword(ctx, ResetPasswordInput{
		Email: "an@example.com", Code: "123456", NewPassword: "abc", ConfirmPassword: "abc",
	}), ErrPasswordTooShort)
	assert.ErrorIs(t, uc.ResetPassword(ctx, ResetPasswordInput{
		Email: "an@example.com", Code: "123456", NewPassword: "newpass1", ConfirmPassword: "newpass2",
	}), ErrPasswordMismatch)

	sendErr := errors.New("smtp down")
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(sendErr)
	assert.ErrorIs(t, uc.ForgotPassword(ctx, "an@example.com"), sendErr)
}
