package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fastfood/internal/domain/model"
	"fastfood/internal/logger"

	"go.uber.org/zap"
)

var ErrMalformedEvent = errors.New("malformed payment event")

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// payment.completedを受けて注文確認メールを送る
type PaymentCompletedHandler struct {
	mailer EmailSender
}

func NewPaymentCompletedHandler(mailer EmailSender) *PaymentCompletedHandler {
	return &PaymentCompletedHandler{mailer: mailer}
}

// mq.HandlerFuncとして渡す。エラーを返すとrequeueなしでnackされる
func (h *PaymentCompletedHandler) Handle(ctx context.Context, body []byte) error {
	var ev model.PaymentCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.OrderID <= 0 {
		return fmt.Errorf("%w: order_id missing", ErrMalformedEvent)
	}

	//メール未登録の顧客には送らない
	if strings.TrimSpace(ev.CustomerEmail) == "" {
		logger.Info("skip confirmation mail: no email", zap.Int64("order_id", ev.OrderID))
		return nil
	}

	subject := fmt.Sprintf("Order #%d confirmed", ev.OrderID)
	if err := h.mailer.Send(ctx, ev.CustomerEmail, subject, confirmationBody(ev)); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	logger.Info("confirmation mail sent", zap.Int64("order_id", ev.OrderID))
	return nil
}

func confirmationBody(ev model.PaymentCompletedEvent) string {
	var b strings.Builder
	name := ev.CustomerName
	if name == "" {
		name = "customer"
	}
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	fmt.Fprintf(&b, "We received your payment for order #%d.\n", ev.OrderID)
	fmt.Fprintf(&b, "Amount: %s\n", ev.Amount)
	if ev.TransactionID != "" {
		fmt.Fprintf(&b, "Transaction: %s\n", ev.TransactionID)
	}
	if ev.CompletedAt != "" {
		fmt.Fprintf(&b, "Paid at: %s\n", ev.CompletedAt)
	}
	b.WriteString("\nThank you for your order.\n")
	return b.String()
}
