package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"stylemart/internal/platform/config"
)

// Connect opens the redis client used as a read-through cache for the
// product catalog.
func Connect(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	log.Println("Successfully connected to Redis")
	return rdb
}
