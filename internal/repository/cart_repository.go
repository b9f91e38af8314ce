package repository

import (
	"context"

	"fastfood/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartRepository interface {
	FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error)
	//行ロック付き（カート操作と注文確定はこのロックで直列化）
	FindByCustomerIDForUpdate(ctx context.Context, customerID int64) (model.Cart, error)
	//既にあれば何もしない
	CreateIfAbsent(ctx context.Context, cart model.Cart) error
	UpdateTotal(ctx context.Context, cartID int64, total decimal.Decimal) error
	//明細ごとカートを削除
	Delete(ctx context.Context, cartID int64) error
}
