package repository

import (
	"context"

	"fastfood/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)
	//行ロック付き（同じ支払いへの同時コールバックを直列化）
	FindByOrderIDForUpdate(ctx context.Context, orderID int64) (model.Payment, error)
	//方法・状態・取引IDを保存
	Update(ctx context.Context, payment model.Payment) error
}
