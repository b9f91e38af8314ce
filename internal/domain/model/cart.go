package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 1顧客につきカートは1つ（customer_idはunique）
type Cart struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64           `gorm:"not null;uniqueIndex" json:"customer_id"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_price"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 空カートを作る
func NewCart(customerID int64, now time.Time) Cart {
	return Cart{
		CustomerID: customerID,
		TotalPrice: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// カート合計は明細合計と常に一致させる
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}
