package config

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

func OpenRedis(addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("REDIS_ADDR environment variable is not set")
	}

	var client *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr})
	}

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return client, nil
}
