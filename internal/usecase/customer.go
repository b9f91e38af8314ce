package usecase

import (
	"context"
	"errors"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"
)

// 呼び出し元のアカウントに紐づく顧客を引く
func customerOf(ctx context.Context, customers repo.CustomerRepository, p model.Principal) (model.Customer, error) {
	if p.AccountID <= 0 {
		return model.Customer{}, newKindError(ErrUnauthenticated, "unauthenticated")
	}

	c, err := customers.FindByAccountID(ctx, p.AccountID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, newKindError(ErrNotFound, "customer not found")
	}
	if err != nil {
		return model.Customer{}, errDB()
	}
	return c, nil
}
