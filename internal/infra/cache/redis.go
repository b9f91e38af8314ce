package cache

import (
	"context"
	"time"

	"fastfood/internal/config"
	"fastfood/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redisに接続する。pingに失敗したらnilを返し、呼び出し側は機能を無効にする
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.String("addr", cfg.Addr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}
