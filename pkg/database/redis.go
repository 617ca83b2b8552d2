package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when url is empty or the server is unreachable;
// features backed by Redis are disabled in that case.
func ConnectRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		log.Println("REDIS_URL not set, sign-in throttling disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("invalid REDIS_URL, sign-in throttling disabled: %v", err)
		return nil
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("failed to connect to redis, sign-in throttling disabled: %v", err)
		_ = rdb.Close()
		return nil
	}

	log.Println("✅ Redis connected")
	return rdb
}
