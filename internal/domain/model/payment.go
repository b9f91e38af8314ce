package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodVNPay PaymentMethod = "VNPay"
	PaymentMethodCash  PaymentMethod = "Cash on Delivery"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusPaid      PaymentStatus = "Paid"
)

// 1注文につき1支払い
type Payment struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64           `gorm:"not null;uniqueIndex" json:"order_id"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(50);not null" json:"payment_method"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	TransactionID string          `gorm:"type:varchar(100)" json:"transaction_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Pending以外は終端
func (p Payment) IsResolved() bool {
	return p.PaymentStatus != PaymentStatusPending
}

// 入力された支払い方法を正規化する。空はVNPay
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case "", PaymentMethodVNPay:
		return PaymentMethodVNPay, true
	case PaymentMethodCash:
		return PaymentMethodCash, true
	default:
		return "", false
	}
}
