package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。同じ商品は1行にまとめる
type CartItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID     int64           `gorm:"not null;uniqueIndex:idx_cart_items_cart_food" json:"cart_id"`
	FoodID     int64           `gorm:"not null;uniqueIndex:idx_cart_items_cart_food" json:"food_id"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_price"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 現在の単価で行合計を計算し直す
func (it *CartItem) Reprice(unitPrice decimal.Decimal) {
	it.TotalPrice = unitPrice.Mul(decimal.NewFromInt(it.Quantity))
}
