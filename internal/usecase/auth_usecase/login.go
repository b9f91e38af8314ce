package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"fastfood/internal/domain/model"
	"fastfood/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
}

// handlerがJSONにして返す
type LoginOutput struct {
	AccessToken  string    `json:"access_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	Roles        []string  `json:"roles"`
}

type LoginUsecase struct {
	accounts repository.AccountRepository
	verifier PasswordVerifier
	tokens   *TokenService
	clock    Clock
}

func NewLoginUsecase(
	accounts repository.AccountRepository,
	verifier PasswordVerifier,
	tokens *TokenService,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		accounts: accounts,
		verifier: verifier,
		tokens:   tokens,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return out, ErrMissingField
	}

	account, err := u.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, account.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//停止アカウントはログイン不可
	if !account.IsActive {
		return out, ErrAccountInactive
	}

	accessToken, expiresAt, err := u.tokens.IssueAccessToken(account)
	if err != nil {
		return out, err
	}

	//リフレッシュトークンは顧客だけ
	if account.HasRole(model.RoleCustomer) {
		_, plain, err := u.tokens.IssueRefreshToken(ctx, account.ID, model.RoleCustomer)
		if err != nil {
			return out, err
		}
		out.RefreshToken = plain
	}

	//最終ログイン時刻更新
	now := u.clock.Now()
	account.LastLoginAt = &now
	if err := u.accounts.Update(ctx, account); err != nil {
		return out, err
	}

	out.AccessToken = accessToken
	out.ExpiresAt = expiresAt
	out.UserID = account.ID
	out.Username = account.Username
	out.Roles = account.RoleNames()
	return out, nil
}
