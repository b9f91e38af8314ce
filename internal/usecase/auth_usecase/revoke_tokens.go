package auth

import (
	"context"
	"errors"
	"strconv"

	"fastfood/internal/domain/model"
	"fastfood/internal/repository"
)

// 管理者が対象アカウントのリフレッシュトークンを全部失効させる
type RevokeTokensUsecase struct {
	accounts repository.AccountRepository
	tokens   *TokenService
	logs     repository.AuditLogRepository
	clock    Clock
}

func NewRevokeTokensUsecase(
	accounts repository.AccountRepository,
	tokens *TokenService,
	logs repository.AuditLogRepository,
	clock Clock,
) *RevokeTokensUsecase {
	return &RevokeTokensUsecase{
		accounts: accounts,
		tokens:   tokens,
		logs:     logs,
		clock:    clock,
	}
}

type RevokeTokensOutput struct {
	AccountID int64 `json:"account_id"`
	Revoked   int64 `json:"revoked"`
}

func (uc *RevokeTokensUsecase) Execute(ctx context.Context, actorID int64, accountID int64) (*RevokeTokensOutput, error) {
	if _, err := uc.accounts.FindByID(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	n, err := uc.tokens.RevokeAll(ctx, accountID)
	if err != nil {
		return nil, err
	}

	actor := actorID
	if err := uc.logs.Create(ctx, model.AuditLog{
		ActorAccountID: &actor,
		Action:         model.AuditActionRevokeTokens,
		ResourceType:   model.AuditResourceAccount,
		ResourceID:     accountID,
		Source:         "admin",
		BeforeJSON:     "{}",
		AfterJSON:      `{"revoked":` + strconv.FormatInt(n, 10) + `}`,
		CreatedAt:      uc.clock.Now(),
	}); err != nil {
		return nil, err
	}

	return &RevokeTokensOutput{AccountID: accountID, Revoked: n}, nil
}
