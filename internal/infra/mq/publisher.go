package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fastfood/internal/domain/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

const PaymentCompletedQueue = "payment.completed"

// 接続から発行までの上限。ブローカーが落ちていてもコールバック応答を止めない
const DefaultPublishTimeout = 3 * time.Second

// 1回の発行ごとに接続する。失敗は呼び出し側でログに残して握りつぶしてよい
type Publisher struct {
	url     string
	timeout time.Duration
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, timeout: DefaultPublishTimeout}
}

// テストや設定で上限を変える
func (p *Publisher) WithTimeout(d time.Duration) *Publisher {
	if d > 0 {
		p.timeout = d
	}
	return p
}

func (p *Publisher) PublishPaymentCompleted(ctx context.Context, ev model.PaymentCompletedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.publish(ctx, PaymentCompletedQueue, body)
}

func (p *Publisher) publish(ctx context.Context, queue string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	//TCP接続とハンドシェイクも同じ上限で切る
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.timeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// durableで宣言（冪等）
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}
