package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fathima-sithara/messenger-backend/config"
)

// Client mirrors user presence in Redis so reads never hit Mongo on the hot
// path. Mongo stays the durable copy.
type Client struct {
	Cli *redis.Client
}

func NewRedis(cfg *config.Config) (*Client, error) {
	r := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: cfg.RedisDB})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Client{Cli: r}, nil
}

func (c *Client) Close() error {
	return c.Cli.Close()
}

func (c *Client) SetPresence(ctx context.Context, userID string, online bool) error {
	key := "presence:" + userID
	val := "0"
	if online {
		val = "1"
	}
	return c.Cli.Set(ctx, key, val, 0).Err()
}

func (c *Client) GetPresence(ctx context.Context, userID string) (bool, error) {
	key := "presence:" + userID
	s, err := c.Cli.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s == "1", nil
}

func (c *Client) SetLastSeen(ctx context.Context, userID string, at time.Time) error {
	return c.Cli.Set(ctx, "last_seen:"+userID, at.Unix(), 0).Err()
}
