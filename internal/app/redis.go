package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient подключается к redis. Возвращает nil, если адрес не задан
// или сервер недоступен: тогда ограничение частоты запросов отключается.
func NewRedisClient(addr, password string, logger *zap.Logger) *redis.Client {
	if addr == "" {
		logger.Warn("Redis address is empty, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis is unavailable, rate limiting disabled", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		return nil
	}

	logger.Info("✅ Connected to Redis", zap.String("addr", addr))
	return client
}
