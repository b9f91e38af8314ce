package repository

import (
	"context"
	"time"

	"fastfood/internal/domain/model"
)

// 監査ログの絞り込み条件。nilは条件なし
type AuditLogFilter struct {
	ActorAccountID *int64
	Source         *string // admin / vnpay
	Action         *model.AuditAction
	ResourceType   *model.AuditResourceType
	ResourceID     *int64
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
	Limit          int
	Offset         int
}

// 監査ログの保存・一覧取得の約束。
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
