package repository

import (
	"context"

	"fastfood/internal/domain/model"
)

// 一覧検索
type FoodListQuery struct {
	Page        int
	Limit       int
	Q           string
	PopularOnly bool
	Sort        string
}

// 商品は読み取りのみ
type FoodRepository interface {
	ListAvailable(ctx context.Context, q FoodListQuery) ([]model.Food, int64, error)
	FindByID(ctx context.Context, id int64) (model.Food, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]model.Food, error)
}
