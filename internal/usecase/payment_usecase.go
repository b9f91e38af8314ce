package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"fastfood/internal/domain/model"
	"fastfood/internal/infra/vnpay"
	"fastfood/internal/logger"
	repo "fastfood/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 決済ゲートウェイ（署名付きURLの生成とコールバック検証）
type PaymentGateway interface {
	BuildPaymentURL(amount decimal.Decimal, orderInfo, clientIP string) (string, error)
	VerifyCallback(params map[string]string) bool
}

// 決済完了イベントの発行先
type PaymentEventPublisher interface {
	PublishPaymentCompleted(ctx context.Context, ev model.PaymentCompletedEvent) error
}

type PaymentUsecase struct {
	tx        repo.TransactionManager
	customers repo.CustomerRepository
	orders    repo.OrderRepository
	payments  repo.PaymentRepository
	gateway   PaymentGateway
	events    PaymentEventPublisher
	now       func() time.Time
}

// eventsはnilなら発行しない
func NewPaymentUsecase(
	tx repo.TransactionManager,
	customers repo.CustomerRepository,
	orders repo.OrderRepository,
	payments repo.PaymentRepository,
	gateway PaymentGateway,
	events PaymentEventPublisher,
) *PaymentUsecase {
	return &PaymentUsecase{
		tx:        tx,
		customers: customers,
		orders:    orders,
		payments:  payments,
		gateway:   gateway,
		events:    events,
		now:       time.Now,
	}
}

type CallbackResult struct {
	OrderID int64               `json:"order_id"`
	Status  model.PaymentStatus `json:"status"`
}

type PaymentURLOutput struct {
	OrderID    int64  `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}

// 自分のVNPay待ちの注文の決済URLを作る
func (u *PaymentUsecase) CreatePaymentURL(ctx context.Context, p model.Principal, orderID int64, clientIP string) (PaymentURLOutput, error) {
	c, err := customerOf(ctx, u.customers, p)
	if err != nil {
		return PaymentURLOutput{}, err
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return PaymentURLOutput{}, newKindError(ErrNotFound, "order not found")
	}
	if err != nil {
		return PaymentURLOutput{}, errDB()
	}
	if order.CustomerID != c.ID {
		return PaymentURLOutput{}, newKindError(ErrNotFound, "order not found")
	}

	payment, err := u.payments.FindByOrderID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return PaymentURLOutput{}, newKindError(ErrPaymentNotFound, "payment not found")
	}
	if err != nil {
		return PaymentURLOutput{}, errDB()
	}
	if payment.PaymentMethod != model.PaymentMethodVNPay {
		return PaymentURLOutput{}, newKindError(ErrInvalidMethod, "payment method is not VNPay")
	}
	if payment.IsResolved() {
		return PaymentURLOutput{}, newKindError(ErrConflict, "payment already resolved")
	}

	url, err := u.gateway.BuildPaymentURL(order.TotalAmount, strconv.FormatInt(order.ID, 10), clientIP)
	if err != nil {
		logger.Error("build payment url failed", zap.Int64("order_id", order.ID), zap.Error(err))
		return PaymentURLOutput{}, newKindError(ErrInternal, "internal error")
	}
	return PaymentURLOutput{OrderID: order.ID, PaymentURL: url}, nil
}

// ゲートウェイからのコールバック。署名検証が通るまでDBには触らない
func (u *PaymentUsecase) HandleCallback(ctx context.Context, params map[string]string) (CallbackResult, error) {
	if !u.gateway.VerifyCallback(params) {
		return CallbackResult{}, newKindError(ErrSignatureInvalid, "invalid signature")
	}

	cb, err := vnpay.ParseCallback(params)
	if err != nil {
		return CallbackResult{}, newKindError(ErrValidation, err.Error())
	}

	orderID, err := strconv.ParseInt(strings.TrimSpace(cb.OrderInfo), 10, 64)
	if err != nil || orderID <= 0 {
		return CallbackResult{}, newKindError(ErrNotFound, "order not found")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return CallbackResult{}, newKindError(ErrNotFound, "order not found")
	}
	if err != nil {
		return CallbackResult{}, errDB()
	}
	if !cb.Amount.Equal(order.TotalAmount) {
		return CallbackResult{}, newKindError(ErrValidation, "amount mismatch")
	}

	status := model.PaymentStatusFailed
	if cb.Success {
		status = model.PaymentStatusCompleted
	}

	stored, err := u.ApplyGatewayOutcome(ctx, orderID, status, cb.TransactionNo)
	if err != nil {
		return CallbackResult{}, err
	}
	return CallbackResult{OrderID: orderID, Status: stored}, nil
}

// 検証済みの結果を反映する。同じ結果の再送と、確定済みへの別結果は何もしない
func (u *PaymentUsecase) ApplyGatewayOutcome(ctx context.Context, orderID int64, status model.PaymentStatus, transactionID string) (model.PaymentStatus, error) {
	if status != model.PaymentStatusCompleted && status != model.PaymentStatusFailed {
		return "", newKindError(ErrValidation, "invalid outcome")
	}

	var (
		stored model.PaymentStatus
		event  *model.PaymentCompletedEvent
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		payment, err := r.Payments().FindByOrderIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrPaymentNotFound, "payment not found")
		}
		if err != nil {
			return errDB()
		}

		if payment.IsResolved() {
			if payment.PaymentStatus != status {
				logger.Warn("ignored gateway outcome for resolved payment",
					zap.Int64("order_id", orderID),
					zap.String("stored", string(payment.PaymentStatus)),
					zap.String("received", string(status)),
				)
			}
			stored = payment.PaymentStatus
			return nil
		}

		before := payment.PaymentStatus
		payment.PaymentMethod = model.PaymentMethodVNPay
		payment.PaymentStatus = status
		payment.TransactionID = transactionID
		if err := r.Payments().Update(ctx, payment); err != nil {
			return errDB()
		}

		orderStatus := model.OrderStatusFailed
		if status == model.PaymentStatusCompleted {
			orderStatus = model.OrderStatusPaid
		}
		if err := r.Orders().UpdateStatus(ctx, orderID, orderStatus); err != nil {
			return errDB()
		}

		now := u.now()
		if err := recordPaymentStatus(ctx, r.AuditLogs(), nil, "vnpay", payment.ID, before, status, now); err != nil {
			return err
		}

		if status == model.PaymentStatusCompleted {
			order, err := r.Orders().FindByID(ctx, orderID)
			if err != nil {
				return errDB()
			}
			if err := clearCustomerCart(ctx, r, order.CustomerID); err != nil {
				return err
			}

			ev := model.PaymentCompletedEvent{
				OrderID:       orderID,
				PaymentID:     payment.ID,
				CustomerID:    order.CustomerID,
				Amount:        payment.Amount.StringFixed(2),
				TransactionID: transactionID,
				CompletedAt:   now.UTC().Format(time.RFC3339),
			}
			if c, err := r.Customers().FindByID(ctx, order.CustomerID); err == nil {
				ev.CustomerName = c.Name
				ev.CustomerEmail = c.Email
			}
			event = &ev
		}

		stored = status
		return nil
	})
	if err != nil {
		return "", err
	}

	if event != nil {
		u.publish(ctx, *event)
	}
	return stored, nil
}

// コミット後に発行する。失敗しても決済結果は変えない
func (u *PaymentUsecase) publish(ctx context.Context, ev model.PaymentCompletedEvent) {
	if u.events == nil {
		return
	}
	if err := u.events.PublishPaymentCompleted(ctx, ev); err != nil {
		logger.Warn("publish payment completed failed", zap.Int64("order_id", ev.OrderID), zap.Error(err))
	}
}
