package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"fastfood/internal/domain/model"
	"fastfood/internal/repository"
)

// 再設定コードの有効期限
const ResetCodeTTL = 2 * time.Minute

// 6桁のコードを作る約束
type CodeGenerator interface {
	NewCode() (string, error)
}

type RandomCodeGenerator struct{}

func (RandomCodeGenerator) NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type ResetPasswordInput struct {
	Email           string
	Code            string
	NewPassword     string
	ConfirmPassword string
}

// パスワード再設定（コード送信・確認・再設定）
type PasswordResetUsecase struct {
	accounts  repository.AccountRepository
	customers repository.CustomerRepository
	hasher    PasswordHasher
	mailer    EmailSender
	codes     CodeGenerator
	clock     Clock
}

func NewPasswordResetUsecase(
	accounts repository.AccountRepository,
	customers repository.CustomerRepository,
	hasher PasswordHasher,
	mailer EmailSender,
	codes CodeGenerator,
	clock Clock,
) *PasswordResetUsecase {
	return &PasswordResetUsecase{
		accounts:  accounts,
		customers: customers,
		hasher:    hasher,
		mailer:    mailer,
		codes:     codes,
		clock:     clock,
	}
}

// コードを発行してメールで送る
func (u *PasswordResetUsecase) ForgotPassword(ctx context.Context, email string) error {
	account, err := u.accountByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := u.codes.NewCode()
	if err != nil {
		return err
	}
	expiry := u.clock.Now().Add(ResetCodeTTL)
	account.ResetCode = code
	account.ResetCodeExpiry = &expiry
	if err := u.accounts.Update(ctx, account); err != nil {
		return err
	}

	body := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.", code, int(ResetCodeTTL.Minutes()))
	return u.mailer.Send(ctx, strings.TrimSpace(email), "Password reset code", body)
}

// コードが正しく期限内か確認する（消費はしない）
func (u *PasswordResetUsecase) VerifyResetCode(ctx context.Context, email, code string) error {
	account, err := u.accountByEmail(ctx, email)
	if err != nil {
		return err
	}
	return u.checkCode(account, code)
}

// 確認できたらパスワードを変えてコードを消す
func (u *PasswordResetUsecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if len(in.NewPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if in.NewPassword != in.ConfirmPassword {
		return ErrPasswordMismatch
	}

	account, err := u.accountByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if err := u.checkCode(account, in.Code); err != nil {
		return err
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hashed
	account.ResetCode = ""
	account.ResetCodeExpiry = nil
	return u.accounts.Update(ctx, account)
}

func (u *PasswordResetUsecase) checkCode(account *model.Account, code string) error {
	code = strings.TrimSpace(code)
	if code == "" || account.ResetCode == "" || account.ResetCode != code {
		return ErrInvalidResetCode
	}
	if account.ResetCodeExpiry == nil || !account.ResetCodeExpiry.After(u.clock.Now()) {
		return ErrResetCodeExpired
	}
	return nil
}

func (u *PasswordResetUsecase) accountByEmail(ctx context.Context, email string) (*model.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrMissingField
	}

	c, err := u.customers.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEmailNotFound
	}
	if err != nil {
		return nil, err
	}

	account, err := u.accounts.FindByID(ctx, c.AccountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, ErrEmailNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}
