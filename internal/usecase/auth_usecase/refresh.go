package auth

import (
	"context"
	"errors"
	"time"

	"fastfood/internal/repository"
)

type RefreshInput struct {
	RefreshToken string
	UserID       int64
}

type RefreshOutput struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// アクセストークンの再発行。リフレッシュトークンは回転させない
type RefreshUsecase struct {
	accounts repository.AccountRepository
	tokens   *TokenService
}

func NewRefreshUsecase(accounts repository.AccountRepository, tokens *TokenService) *RefreshUsecase {
	return &RefreshUsecase{accounts: accounts, tokens: tokens}
}

func (u *RefreshUsecase) Execute(ctx context.Context, in RefreshInput) (RefreshOutput, error) {
	var out RefreshOutput

	if in.RefreshToken == "" || in.UserID <= 0 {
		return out, ErrMissingField
	}

	ok, err := u.tokens.ValidateRefreshToken(ctx, in.RefreshToken, in.UserID)
	if err != nil {
		return out, err
	}
	if !ok {
		return out, ErrInvalidRefreshToken
	}

	account, err := u.accounts.FindByID(ctx, in.UserID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return out, ErrInvalidRefreshToken
	}
	if err != nil {
		return out, err
	}
	if !account.IsActive {
		return out, ErrAccountInactive
	}

	token, exp, err := u.tokens.IssueAccessToken(account)
	if err != nil {
		return out, err
	}

	out.AccessToken = token
	out.ExpiresAt = exp
	return out, nil
}

// リフレッシュトークンを失効させる
type LogoutUsecase struct {
	tokens *TokenService
}

func NewLogoutUsecase(tokens *TokenService) *LogoutUsecase {
	return &LogoutUsecase{tokens: tokens}
}

func (u *LogoutUsecase) Execute(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrMissingField
	}
	return u.tokens.RevokeRefreshToken(ctx, refreshToken)
}
