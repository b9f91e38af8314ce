package repository

import (
	"context"
	"errors"
	"time"

	"fastfood/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// リフレッシュトークンの保存・取得・失効
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error
	//指定ユーザーの有効なトークンを全部失効させ、件数を返す
	RevokeAllByUserID(ctx context.Context, userID int64, revokedAt time.Time) (int64, error)
}
