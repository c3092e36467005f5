package db

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/sweetdreamlabs/sweetdream/internal/config"
)

// NewRedis returns a client for the catalog read cache, or nil when no
// REDIS_ADDR is configured. Callers must treat a nil client as "cache off".
func NewRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	log.Printf("redis cache enabled at %s", cfg.RedisAddr)
	return rdb
}
