package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"fastfood/internal/domain/model"
	"fastfood/internal/repository"
)

// 会員登録の入力
type RegisterUserInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Name            string
	Phone           string
	Email           string
}

// 会員登録の出力
type RegisterUserOutput struct {
	AccountID  int64    `json:"account_id"`
	CustomerID int64    `json:"customer_id"`
	Username   string   `json:"username"`
	Roles      []string `json:"roles"`
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	tx     repository.TransactionManager
	hasher PasswordHasher
}

// DI
func NewRegisterUserUsecase(tx repository.TransactionManager, hasher PasswordHasher) *RegisterUserUsecase {
	return &RegisterUserUsecase{tx: tx, hasher: hasher}
}

// アカウントと顧客を1トランザクションで作る
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Username == "" || in.Name == "" {
		return out, ErrMissingField
	}
	if len(in.Password) < minPasswordLen {
		return out, ErrPasswordTooShort
	}
	if in.Password != in.ConfirmPassword {
		return out, ErrPasswordMismatch
	}
	if in.Email != "" && !isValidEmailFormat(in.Email) {
		return out, ErrInvalidEmailFormat
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		// username重複チェック
		_, err := r.Accounts().FindByUsername(ctx, in.Username)
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return err
		}

		// email重複チェック
		if in.Email != "" {
			_, err := r.Customers().FindByEmail(ctx, in.Email)
			if err == nil {
				return ErrEmailTaken
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}

		role, err := r.Accounts().EnsureRole(ctx, model.RoleCustomer)
		if err != nil {
			return err
		}

		account := &model.Account{
			Username:     in.Username,
			PasswordHash: hashed,
			IsActive:     true,
			Roles:        []model.Role{role},
		}
		if err := r.Accounts().Create(ctx, account); err != nil {
			// 同時登録で先を越された
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrUsernameTaken
			}
			return err
		}

		customer := &model.Customer{
			AccountID: account.ID,
			Name:      in.Name,
			Phone:     in.Phone,
			Email:     in.Email,
		}
		if err := r.Customers().Create(ctx, customer); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrEmailTaken
			}
			return err
		}

		out = RegisterUserOutput{
			AccountID:  account.ID,
			CustomerID: customer.ID,
			Username:   account.Username,
			Roles:      account.RoleNames(),
		}
		return nil
	})
	if err != nil {
		return RegisterUserOutput{}, err
	}
	return out, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}
