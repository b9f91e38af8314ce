package model

import "time"

type RoleName string

const (
	RoleCustomer RoleName = "Customer"
	RoleAdmin    RoleName = "Admin"
	RoleEmployee RoleName = "Employee"
)

type Role struct {
	ID   int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name RoleName `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

// ログインID。顧客情報はCustomerに分ける
type Account struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	Roles        []Role `gorm:"many2many:account_roles;"`

	//パスワード再設定コード（6桁）と期限
	ResetCode       string `gorm:"type:varchar(10)"`
	ResetCodeExpiry *time.Time

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ロール名だけを取り出す
func (a Account) RoleNames() []string {
	names := make([]string, 0, len(a.Roles))
	for _, r := range a.Roles {
		names = append(names, string(r.Name))
	}
	return names
}

func (a Account) HasRole(name RoleName) bool {
	for _, r := range a.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
