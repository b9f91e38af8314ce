package model

import "time"

// 配送先住所
type Address struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64  `gorm:"not null;index" json:"customer_id"`
	Street     string `gorm:"type:varchar(255);not null" json:"street"`
	Ward       string `gorm:"type:varchar(100);not null" json:"ward"`
	District   string `gorm:"type:varchar(100);not null" json:"district"`
	City       string `gorm:"type:varchar(100);not null" json:"city"`

	//この顧客のデフォルト住所か
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
