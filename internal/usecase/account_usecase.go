package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"
)

const minPasswordLen = 6

// 平文パスワードからハッシュへ
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type AccountUsecase struct {
	tx        repo.TransactionManager
	accounts  repo.AccountRepository
	customers repo.CustomerRepository
	hasher    PasswordHasher
	verifier  PasswordVerifier
}

func NewAccountUsecase(
	tx repo.TransactionManager,
	accounts repo.AccountRepository,
	customers repo.CustomerRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
) *AccountUsecase {
	return &AccountUsecase{
		tx:        tx,
		accounts:  accounts,
		customers: customers,
		hasher:    hasher,
		verifier:  verifier,
	}
}

type AccountOutput struct {
	AccountID  int64    `json:"account_id"`
	Username   string   `json:"username"`
	Roles      []string `json:"roles"`
	CustomerID int64    `json:"customer_id"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
}

type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

func (u *AccountUsecase) GetMyAccount(ctx context.Context, p model.Principal) (AccountOutput, error) {
	acc, err := u.accounts.FindByID(ctx, p.AccountID)
	if errors.Is(err, repo.ErrAccountNotFound) {
		return AccountOutput{}, newKindError(ErrUnauthenticated, "unauthenticated")
	}
	if err != nil {
		return AccountOutput{}, errDB()
	}

	c, err := customerOf(ctx, u.customers, p)
	if err != nil {
		return AccountOutput{}, err
	}
	return toAccountOutput(acc, c), nil
}

// nilのフィールドは変更しない
func (u *AccountUsecase) UpdateMyAccount(ctx context.Context, p model.Principal, patch model.CustomerPatch) (AccountOutput, error) {
	if patch.Name != nil {
		n := strings.TrimSpace(*patch.Name)
		if n == "" {
			return AccountOutput{}, newKindError(ErrValidation, "name must not be empty")
		}
		patch.Name = &n
	}
	if patch.Email != nil {
		e := strings.TrimSpace(*patch.Email)
		if e != "" {
			if _, err := mail.ParseAddress(e); err != nil {
				return AccountOutput{}, newKindError(ErrValidation, "invalid email format")
			}
		}
		patch.Email = &e
	}

	var out AccountOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		acc, err := r.Accounts().FindByID(ctx, p.AccountID)
		if errors.Is(err, repo.ErrAccountNotFound) {
			return newKindError(ErrUnauthenticated, "unauthenticated")
		}
		if err != nil {
			return errDB()
		}

		c, err := customerOf(ctx, r.Customers(), p)
		if err != nil {
			return err
		}

		//メールは他の顧客と重複させない
		if patch.Email != nil && *patch.Email != "" && *patch.Email != c.Email {
			other, err := r.Customers().FindByEmail(ctx, *patch.Email)
			if err == nil && other.ID != c.ID {
				return newKindError(ErrConflict, "email already exists")
			}
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return errDB()
			}
		}

		patch.Apply(&c)
		if err := r.Customers().Update(ctx, c); err != nil {
			return errDB()
		}

		out = toAccountOutput(acc, c)
		return nil
	})
	if err != nil {
		return AccountOutput{}, err
	}
	return out, nil
}

func (u *AccountUsecase) ChangePassword(ctx context.Context, p model.Principal, in ChangePasswordInput) error {
	if len(in.NewPassword) < minPasswordLen {
		return newKindError(ErrValidation, "password must be at least 6 characters")
	}
	if in.NewPassword != in.ConfirmPassword {
		return newKindError(ErrValidation, "passwords do not match")
	}

	acc, err := u.accounts.FindByID(ctx, p.AccountID)
	if errors.Is(err, repo.ErrAccountNotFound) {
		return newKindError(ErrUnauthenticated, "unauthenticated")
	}
	if err != nil {
		return errDB()
	}

	if !u.verifier.Verify(in.OldPassword, acc.PasswordHash) {
		return newKindError(ErrValidation, "old password is incorrect")
	}

	hashed, err := u.hasher.Hash(in.NewPassword)
	if err != nil {
		return newKindError(ErrInternal, "internal error")
	}
	acc.PasswordHash = hashed
	if err := u.accounts.Update(ctx, acc); err != nil {
		return errDB()
	}
	return nil
}

func toAccountOutput(acc *model.Account, c model.Customer) AccountOutput {
	return AccountOutput{
		AccountID:  acc.ID,
		Username:   acc.Username,
		Roles:      acc.RoleNames(),
		CustomerID: c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
	}
}
