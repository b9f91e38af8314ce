package model

import "time"

// 生のトークンはクライアントだけが持つ。DBにはsha256を保存する
type RefreshToken struct {
	ID         string     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     int64      `json:"userId" gorm:"not null;index"`
	UserRole   string     `json:"userRole" gorm:"type:varchar(50);not null"`
	TokenHash  string     `json:"-" gorm:"not null;uniqueIndex"`
	ExpiryDate time.Time  `json:"expiryDate" gorm:"not null;index"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"not null"`
	RevokedAt  *time.Time `json:"revokedAt"`
	IsRevoked  bool       `json:"isRevoked" gorm:"not null;default:false"`
	IsUsed     bool       `json:"isUsed" gorm:"not null;default:false"`
}

// 失効していない、かつ期限内
func (t RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked && t.ExpiryDate.After(now)
}
