package repository

import (
	"context"
	"errors"

	"fastfood/internal/domain/model"
)

// アカウントが見つかりませんを統一
var ErrAccountNotFound = errors.New("account not found")

// 保存・取得を約束（Rolesは常にpreloadして返す）
type AccountRepository interface {
	//新規アカウント作成（Rolesも関連付ける）
	Create(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, accountID int64) (*model.Account, error)
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
	//パスワード・リセットコード・最終ログインなど
	Update(ctx context.Context, account *model.Account) error
	//ロールが無ければ作る
	EnsureRole(ctx context.Context, name model.RoleName) (model.Role, error)
}
