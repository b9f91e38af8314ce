package usecase

import (
	"context"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"
)

// 管理者向けの監査ログ閲覧
type AdminAuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAdminAuditLogUsecase(logs repo.AuditLogRepository) *AdminAuditLogUsecase {
	return &AdminAuditLogUsecase{logs: logs}
}

type AuditLogListOutput struct {
	Items  []model.AuditLog `json:"items"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// 新しい順。limitは1〜200
func (u *AdminAuditLogUsecase) List(ctx context.Context, f repo.AuditLogFilter) (AuditLogListOutput, error) {
	if f.Limit < 1 || f.Limit > 200 {
		return AuditLogListOutput{}, newKindError(ErrValidation, "invalid limit")
	}
	if f.Offset < 0 {
		return AuditLogListOutput{}, newKindError(ErrValidation, "invalid offset")
	}
	if f.Action != nil {
		switch *f.Action {
		case model.AuditActionPaymentStatus, model.AuditActionRevokeTokens:
		default:
			return AuditLogListOutput{}, newKindError(ErrValidation, "invalid action")
		}
	}
	if f.ResourceType != nil {
		switch *f.ResourceType {
		case model.AuditResourcePayment, model.AuditResourceAccount:
		default:
			return AuditLogListOutput{}, newKindError(ErrValidation, "invalid resource_type")
		}
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedFrom.After(*f.CreatedTo) {
		return AuditLogListOutput{}, newKindError(ErrValidation, "from must be before to")
	}

	logs, err := u.logs.List(ctx, f)
	if err != nil {
		return AuditLogListOutput{}, errDB()
	}
	return AuditLogListOutput{Items: logs, Limit: f.Limit, Offset: f.Offset}, nil
}
