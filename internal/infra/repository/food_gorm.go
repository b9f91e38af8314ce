package repository

import (
	"context"
	"errors"
	"strings"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"

	"gorm.io/gorm"
)

type FoodGormRepository struct {
	db *gorm.DB
}

// DI
func NewFoodGormRepository(db *gorm.DB) *FoodGormRepository {
	return &FoodGormRepository{db: db}
}

// 販売中の商品のみを、検索/ソート/ページング付きで返す。
func (r *FoodGormRepository) ListAvailable(ctx context.Context, q repo.FoodListQuery) ([]model.Food, int64, error) {
	var foods []model.Food
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Food{}).Where("is_available = ?", true)

	// q nameを対象
	if s := strings.TrimSpace(q.Q); s != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if q.PopularOnly {
		tx = tx.Where("is_popular = ?", true)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Food{}, 0, err
	}

	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&foods).Error; err != nil {
		return []model.Food{}, 0, err
	}

	return foods, total, nil
}

// IDで商品を取得
func (r *FoodGormRepository) FindByID(ctx context.Context, id int64) (model.Food, error) {
	var f model.Food
	err := r.db.WithContext(ctx).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Food{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Food{}, err
	}
	return f, nil
}

// 明細の表示用にまとめて取得
func (r *FoodGormRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]model.Food, error) {
	out := make(map[int64]model.Food, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var foods []model.Food
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}
	for _, f := range foods {
		out[f.ID] = f
	}
	return out, nil
}
