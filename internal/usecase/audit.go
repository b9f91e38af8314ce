package usecase

import (
	"context"
	"time"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"
)

// 支払いステータスの変化を監査ログに残す。actorがnilならゲートウェイ起点
func recordPaymentStatus(ctx context.Context, logs repo.AuditLogRepository, actor *int64, source string, paymentID int64, before, after model.PaymentStatus, now time.Time) error {
	beforeJSON := `{"payment_status":"` + string(before) + `"}`
	afterJSON := `{"payment_status":"` + string(after) + `"}`
	if err := logs.Create(ctx, model.AuditLog{
		ActorAccountID: actor,
		Action:         model.AuditActionPaymentStatus,
		ResourceType:   model.AuditResourcePayment,
		ResourceID:     paymentID,
		Source:         source,
		BeforeJSON:     beforeJSON,
		AfterJSON:      afterJSON,
		CreatedAt:      now,
	}); err != nil {
		return errDB()
	}
	return nil
}
