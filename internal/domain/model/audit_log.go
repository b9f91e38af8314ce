package model

import "time"

type AuditAction string

const (
	//支払いステータスが変わった
	AuditActionPaymentStatus AuditAction = "PAYMENT_STATUS"
	//管理者がトークンを失効させた
	AuditActionRevokeTokens AuditAction = "REVOKE_TOKENS"
)

type AuditResourceType string

const (
	AuditResourcePayment AuditResourceType = "payment"
	AuditResourceAccount AuditResourceType = "account"
)

// 誰が何をどう変えたか。ゲートウェイ起点のときActorAccountIDはnil
type AuditLog struct {
	ID             int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorAccountID *int64            `gorm:"index" json:"actor_account_id"`
	Action         AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType   AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID     int64             `gorm:"not null;index" json:"resource_id"`
	Source         string            `gorm:"type:varchar(50)" json:"source"`
	BeforeJSON     string            `gorm:"type:text" json:"before_json"`
	AfterJSON      string            `gorm:"type:text" json:"after_json"`
	CreatedAt      time.Time         `gorm:"not null;index" json:"created_at"`
}
