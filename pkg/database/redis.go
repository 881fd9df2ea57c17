// Package database создает подключения к внешним хранилищам.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/trivia-chatbot/internal/config"
	"github.com/yourusername/trivia-chatbot/internal/logging"
)

// Время ожидания ответа на PING при подключении
const pingTimeout = 5 * time.Second

// Режимы подключения к Redis
const (
	RedisModeSingle   = "single"
	RedisModeSentinel = "sentinel"
	RedisModeCluster  = "cluster"
)

// redisOptions преобразует конфигурацию в опции универсального клиента.
// Возвращает нормализованный режим (пустой режим означает single).
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, string, error) {
	addrs := cfg.Addrs
	if len(addrs) == 0 && cfg.Addr != "" {
		addrs = []string{cfg.Addr}
	}
	if len(addrs) == 0 {
		return nil, "", fmt.Errorf("redis configuration error: addrs or addr must be provided")
	}

	opts := &redis.UniversalOptions{
		Addrs:    addrs,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.MaxRetries != 0 {
		opts.MaxRetries = cfg.MaxRetries
	}
	if cfg.MinRetryBackoff != 0 {
		opts.MinRetryBackoff = time.Duration(cfg.MinRetryBackoff) * time.Millisecond
	}
	if cfg.MaxRetryBackoff != 0 {
		opts.MaxRetryBackoff = time.Duration(cfg.MaxRetryBackoff) * time.Millisecond
	}

	mode := cfg.Mode
	if mode == "" {
		mode = RedisModeSingle
	}
	switch mode {
	case RedisModeSentinel:
		if cfg.MasterName == "" {
			return nil, "", fmt.Errorf("redis sentinel mode requires master_name")
		}
		// NewUniversalClient выбирает sentinel по MasterName
		opts.MasterName = cfg.MasterName
	case RedisModeCluster:
		if len(addrs) < 2 {
			logging.Warnf("[Redis] Cluster mode with a single address %s", addrs[0])
		}
	case RedisModeSingle:
		if len(addrs) > 1 {
			return nil, "", fmt.Errorf("redis single mode expects one address, got %d", len(addrs))
		}
	default:
		return nil, "", fmt.Errorf("unsupported redis mode: %s", mode)
	}

	return opts, mode, nil
}

// NewUniversalRedisClient создает клиент Redis (single, sentinel или cluster) и проверяет подключение
func NewUniversalRedisClient(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	opts, mode, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (mode: %s, addrs: %v): %w", mode, opts.Addrs, err)
	}

	logging.Infof("[Redis] Connected (mode: %s, addrs: %v)", mode, opts.Addrs)
	return client, nil
}
