package repository

import (
	"context"

	"fastfood/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	//作成後はIDなどが埋まったものを返す
	Create(ctx context.Context, address model.Address) (model.Address, error)

	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Address, error)

	FindByID(ctx context.Context, addressID int64) (model.Address, error)

	Update(ctx context.Context, address model.Address) error

	Delete(ctx context.Context, addressID int64) error

	//他のデフォルトを外してから指定住所をデフォルトにする
	SetDefault(ctx context.Context, customerID, addressID int64) error
}
