package config

import (
	"context"
	"time"

	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

var RedisClient *redis.Client

// InitRedis connects to REDIS_URL. Redis is optional: without it cache
// invalidations stay local to the process.
func InitRedis() {
	log := logger.Get().WithComponent("redis")

	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		log.Info("REDIS_URL not configured, cache invalidation will not be shared across instances")
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("Failed to parse REDIS_URL, cache invalidation stays local", logger.Err(err))
		return
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Failed to connect to Redis, cache invalidation stays local", logger.Err(err))
		_ = client.Close()
		return
	}

	RedisClient = client
	log.Info("Connected to Redis")
}

// CloseRedis closes the redis client if one was opened.
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}
