package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis dials the Redis instance backing the job queues and the price
// cache. A failed ping is fatal: the alert pipeline cannot run without it.
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
