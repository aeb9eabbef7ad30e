package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Client struct {
	Redis *redis.Client
}

// NewClient conecta no Redis a partir de uma URL redis://
func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar a url do redis: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("erro ao conectar no redis: %w", err)
	}

	logrus.Info("Conexão com o Redis estabelecida")

	return &Client{
		Redis: client,
	}, nil
}

func (c *Client) Close() error {
	return c.Redis.Close()
}
