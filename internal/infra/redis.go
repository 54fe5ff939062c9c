package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens the client behind the price cache and the job queues. The
// ping makes a bad REDIS_URL fail at startup rather than on the first
// queued receipt.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
