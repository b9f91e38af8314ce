package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"fastfood/internal/config"
	"fastfood/internal/infra/mail"
	"fastfood/internal/infra/mq"
	"fastfood/internal/logger"
	"fastfood/internal/notify"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadNotifier()
	if err != nil {
		panic(err)
	}
	if _, err := logger.Init(cfg.GoEnv); err != nil {
		panic(err)
	}
	defer logger.Sync()

	h := notify.NewPaymentCompletedHandler(mail.NewSMTPSender(cfg.SMTP))
	consumer := mq.NewConsumer(cfg.RabbitMQURL, mq.PaymentCompletedQueue, h.Handle)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("notifier started", zap.String("queue", mq.PaymentCompletedQueue))
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("notifier stopped", zap.Error(err))
		os.Exit(1)
	}
}
