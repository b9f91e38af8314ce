package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"
)

// 管理者・従業員向けの注文閲覧
type AdminOrderUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	payments   repo.PaymentRepository
}

func NewAdminOrderUsecase(orders repo.OrderRepository, orderItems repo.OrderItemRepository, payments repo.PaymentRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, orderItems: orderItems, payments: payments}
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	if f.Page < 1 {
		return OrderListOutput{}, newKindError(ErrValidation, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return OrderListOutput{}, newKindError(ErrValidation, "invalid limit")
	}
	if f.Status != "" {
		switch model.OrderStatus(f.Status) {
		case model.OrderStatusPending, model.OrderStatusPaid, model.OrderStatusFailed:
		default:
			return OrderListOutput{}, newKindError(ErrValidation, "invalid status")
		}
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return OrderListOutput{}, errDB()
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out, err := orderDetail(ctx, u.orderItems, u.payments, o)
		if err != nil {
			return OrderListOutput{}, err
		}
		outs = append(outs, out)
	}
	return OrderListOutput{Items: outs, Page: f.Page, Limit: f.Limit, Total: total}, nil
}

// 注文詳細（所有チェックなし）
func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, newKindError(ErrValidation, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, newKindError(ErrNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, errDB()
	}
	return orderDetail(ctx, u.orderItems, u.payments, o)
}

// 期間パラメータはhandlerでここを通してから渡す
func ParseDateTimeRFC3339(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
