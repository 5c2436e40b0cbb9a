package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Options struct
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects and pings; a failed ping is returned so the caller can fall back
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	logrus.Infof("Connecting to Redis at %s...", opts.Addr)

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logrus.Info("Successfully connected to Redis")
	return client, nil
}
