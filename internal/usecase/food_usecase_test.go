package usecase

import (
	"context"
	"testing"

	"fastfood/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFood_ListFoods(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedFood(t, "Cheese Burger", 45000)
	env.seedFood(t, "Fries", 20000)
	hidden := env.seedFood(t, "Old Burger", 10000)
	require.NoError(t, env.db.Model(&model.Food{}).Where("id = ?", hidden.ID).Update("is_available", false).Error)
	uc := NewFoodUsecase(env.foods)

	out, err := uc.ListFoods(ctx, ListFoodsInput{Page: 1, Limit: 10, Sort: "price_asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Fries", out.Items[0].Name)

	out, err = uc.ListFoods(ctx, ListFoodsInput{Page: 1, Limit: 10, Q: "burger"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Cheese Burger", out.Items[0].Name)

	_, err = uc.ListFoods(ctx, ListFoodsInput{Page: 0, Limit: 10})
	requireKind(t, err, ErrValidation)
	_, err = uc.ListFoods(ctx, ListFoodsInput{Page: 1, Limit: 101})
	requireKind(t, err, ErrValidation)
	_, err = uc.ListFoods(ctx, ListFoodsInput{Page: 1, Limit: 10, Sort: "name"})
	requireKind(t, err, ErrValidation)
}

func TestFood_GetFood(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	f := env.seedFood(t, "Fries", 20000)
	uc := NewFoodUsecase(env.foods)

	got, err := uc.GetFood(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fries", got.Name)

	_, err = uc.GetFood(ctx, 9999)
	requireKind(t, err, ErrFoodNotFound)

	require.NoError(t, env.db.Model(&model.Food{}).Where("id = ?", f.ID).Update("is_available", false).Error)
	_, err = uc.GetFood(ctx, f.ID)
	requireKind(t, err, ErrFoodNotFound)
}
