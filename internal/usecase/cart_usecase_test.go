package usecase

import (
	"context"
	"testing"

	"fastfood/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// カート合計 = 明細合計（10.000×2 + 5.000×1 = 25.000）
func TestCart_AddItem_TotalMatchesLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, c := env.seedCustomer(t, "an", "an@example.com")
	burger := env.seedFood(t, "Burger", 10000)
	fries := env.seedFood(t, "Fries", 5000)
	uc := env.cartUC()

	_, err := uc.AddItem(ctx, p, burger.ID, 1)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, p, burger.ID, 1)
	require.NoError(t, err)
	out, err := uc.AddItem(ctx, p, fries.ID, 1)
	require.NoError(t, err)

	assert.True(t, dec("25000").Equal(out.TotalPrice), "total=%s", out.TotalPrice)
	require.Len(t, out.Items, 2)

	//同じ商品は1行にまとまる
	assert.Equal(t, int64(1), env.count(t, &model.Cart{}))
	assert.Equal(t, int64(2), env.count(t, &model.CartItem{}))

	cart, err := env.carts.FindByCustomerID(ctx, c.ID)
	require.NoError(t, err)
	items, err := env.carts.ListByCartID(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, model.CartTotal(items).Equal(cart.TotalPrice))
}

func TestCart_AddItem_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.seedCustomer(t, "an", "")
	food := env.seedFood(t, "Burger", 10000)
	uc := env.cartUC()

	_, err := uc.AddItem(ctx, p, food.ID, 0)
	requireKind(t, err, ErrValidation)

	_, err = uc.AddItem(ctx, p, 9999, 1)
	requireKind(t, err, ErrFoodNotFound)

	//販売停止中も見つからない扱い
	require.NoError(t, env.db.Model(&model.Food{}).Where("id = ?", food.ID).Update("is_available", false).Error)
	_, err = uc.AddItem(ctx, p, food.ID, 1)
	requireKind(t, err, ErrFoodNotFound)

	assert.Equal(t, int64(0), env.count(t, &model.CartItem{}))

	//顧客でないアカウント
	_, err = uc.AddItem(ctx, model.Principal{AccountID: 777}, food.ID, 1)
	requireKind(t, err, ErrNotFound)
}

func TestCart_DecreaseItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.seedCustomer(t, "an", "")
	burger := env.seedFood(t, "Burger", 10000)
	fries := env.seedFood(t, "Fries", 5000)
	uc := env.cartUC()

	_, err := uc.AddItem(ctx, p, burger.ID, 3)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, p, fries.ID, 1)
	require.NoError(t, err)

	out, err := uc.DecreaseItem(ctx, p, burger.ID, 1)
	require.NoError(t, err)
	assert.True(t, dec("25000").Equal(out.TotalPrice), "total=%s", out.TotalPrice)

	//0以下になったら行ごと消える
	out, err = uc.DecreaseItem(ctx, p, burger.ID, 5)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, fries.ID, out.Items[0].FoodID)
	assert.True(t, dec("5000").Equal(out.TotalPrice))

	_, err = uc.DecreaseItem(ctx, p, burger.ID, 1)
	requireKind(t, err, ErrCartItemNotFound)

	_, err = uc.DecreaseItem(ctx, p, fries.ID, 0)
	requireKind(t, err, ErrValidation)
}

func TestCart_DecreaseItem_NoCart(t *testing.T) {
	env := newTestEnv(t)
	p, _ := env.seedCustomer(t, "an", "")

	_, err := env.cartUC().DecreaseItem(context.Background(), p, 1, 1)
	requireKind(t, err, ErrCartItemNotFound)
}

func TestCart_RemoveAndClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.seedCustomer(t, "an", "")
	burger := env.seedFood(t, "Burger", 10000)
	fries := env.seedFood(t, "Fries", 5000)
	uc := env.cartUC()

	//カートが無くても成功
	out, err := uc.RemoveItem(ctx, p, burger.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	require.NoError(t, uc.Clear(ctx, p))

	_, err = uc.AddItem(ctx, p, burger.ID, 2)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, p, fries.ID, 1)
	require.NoError(t, err)

	out, err = uc.RemoveItem(ctx, p, burger.ID)
	require.NoError(t, err)
	assert.True(t, dec("5000").Equal(out.TotalPrice))

	require.NoError(t, uc.Clear(ctx, p))
	assert.Equal(t, int64(0), env.count(t, &model.Cart{}))
	assert.Equal(t, int64(0), env.count(t, &model.CartItem{}))

	got, err := uc.GetCart(ctx, p)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.IsZero())
	assert.Empty(t, got.Items)
}

func TestCart_GetCart_UsesCurrentNames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.seedCustomer(t, "an", "")
	burger := env.seedFood(t, "Burger", 10000)
	uc := env.cartUC()

	_, err := uc.AddItem(ctx, p, burger.ID, 2)
	require.NoError(t, err)

	got, err := uc.GetCart(ctx, p)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Burger", got.Items[0].Name)
	assert.Equal(t, int64(2), got.Items[0].Quantity)
	assert.True(t, dec("20000").Equal(got.Items[0].TotalPrice))
}
