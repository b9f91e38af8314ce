package repository

import (
	"context"

	"fastfood/internal/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	FindByAccountID(ctx context.Context, accountID int64) (model.Customer, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
	Update(ctx context.Context, customer model.Customer) error
}
