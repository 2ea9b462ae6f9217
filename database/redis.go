package database

import (
	"context"
	"log"
	"movie_reservation/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when the server cannot be reached; callers degrade by
// skipping the seat cache and the live seat feed.
func ConnectRedis(cfg config.Settings) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return nil
	}
	log.Println("Connection Opened to Redis")
	return client
}
