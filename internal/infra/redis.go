package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisConnectTimeout bounds the startup ping. Redis is optional here (the
// email queue falls back to synchronous delivery without it), so when it IS
// configured an unreachable server should fail fast instead of hanging boot.
const redisConnectTimeout = 5 * time.Second

// NewRedis builds the client backing the email job queue and its DLQ. The
// only consumers are the dispatcher's LPush and a handful of BRPOP workers,
// so the pool stays small unless the URL says otherwise.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid REDIS_URL: %w", err)
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = 4
	}
	opts.DialTimeout = redisConnectTimeout

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}
	return rdb, nil
}
