package repository

import (
	"context"

	"fastfood/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByCartAndFood(ctx context.Context, cartID int64, foodID int64) (model.CartItem, error)
	// IDが0なら作成、それ以外は数量と行合計を更新
	Save(ctx context.Context, item *model.CartItem) error
	// 無くてもエラーにしない
	DeleteByCartAndFood(ctx context.Context, cartID int64, foodID int64) error
}
