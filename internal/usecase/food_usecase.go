package usecase

import (
	"context"
	"errors"
	"strings"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"
)

// 商品の参照のみ（作成・更新は別サービス）
type FoodUsecase struct {
	foods repo.FoodRepository
}

// DI
func NewFoodUsecase(foods repo.FoodRepository) *FoodUsecase {
	return &FoodUsecase{foods: foods}
}

// GET /foodsの入力DTO
type ListFoodsInput struct {
	Page        int
	Limit       int
	Q           string
	PopularOnly bool
	Sort        string
}

type FoodListOutput struct {
	Items []model.Food `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *FoodUsecase) ListFoods(ctx context.Context, in ListFoodsInput) (FoodListOutput, error) {
	if in.Page < 1 {
		return FoodListOutput{}, newKindError(ErrValidation, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return FoodListOutput{}, newKindError(ErrValidation, "invalid limit")
	}
	if len(in.Q) > 100 {
		return FoodListOutput{}, newKindError(ErrValidation, "q too long")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return FoodListOutput{}, newKindError(ErrValidation, "invalid sort")
	}

	items, total, err := u.foods.ListAvailable(ctx, repo.FoodListQuery{
		Page:        in.Page,
		Limit:       in.Limit,
		Q:           strings.TrimSpace(in.Q),
		PopularOnly: in.PopularOnly,
		Sort:        in.Sort,
	})
	if err != nil {
		return FoodListOutput{}, errDB()
	}

	return FoodListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// 販売停止中は存在しない扱い
func (u *FoodUsecase) GetFood(ctx context.Context, foodID int64) (model.Food, error) {
	if foodID <= 0 {
		return model.Food{}, newKindError(ErrValidation, "invalid food id")
	}

	f, err := u.foods.FindByID(ctx, foodID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Food{}, newKindError(ErrFoodNotFound, "food not found")
	}
	if err != nil {
		return model.Food{}, errDB()
	}
	if !f.IsAvailable {
		return model.Food{}, newKindError(ErrFoodNotFound, "food not found")
	}
	return f, nil
}
