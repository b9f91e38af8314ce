package repository

import (
	"context"
	"errors"

	"fastfood/internal/domain/model"
	domainrepo "fastfood/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountGormRepository struct {
	db *gorm.DB
}

// GORM実装
func NewAccountRepository(db *gorm.DB) domainrepo.AccountRepository {
	return &accountGormRepository{db: db}
}

// アカウント作成。Rolesはaccount_rolesに入る
func (r *accountGormRepository) Create(ctx context.Context, account *model.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainrepo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *accountGormRepository) FindByID(ctx context.Context, accountID int64) (*model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).Preload("Roles").First(&a, accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountGormRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("username = ?", username).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// 関連(Roles)は触らずに本体だけ保存
func (r *accountGormRepository) Update(ctx context.Context, account *model.Account) error {
	res := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"password_hash":     account.PasswordHash,
			"is_active":         account.IsActive,
			"reset_code":        account.ResetCode,
			"reset_code_expiry": account.ResetCodeExpiry,
			"last_login_at":     account.LastLoginAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrAccountNotFound
	}
	return nil
}

func (r *accountGormRepository) EnsureRole(ctx context.Context, name model.RoleName) (model.Role, error) {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Role{Name: name}).Error; err != nil {
		return model.Role{}, err
	}

	var role model.Role
	if err := db.Where("name = ?", name).First(&role).Error; err != nil {
		return model.Role{}, err
	}
	return role, nil
}
