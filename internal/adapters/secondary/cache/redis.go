package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"deck-thumbnail-service/internal/config"
	"deck-thumbnail-service/internal/core/domain"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

const (
	fieldContentType = "content_type"
	fieldData        = "data"
)

type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRedisCache stores images as hashes under prefix+url, without TTL.
func NewRedisCache(client *redis.Client, prefix string) ports.ImageCache {
	return &redisCache{client: client, prefix: prefix}
}

func (c *redisCache) key(url string) string {
	return c.prefix + url
}

func (c *redisCache) Get(ctx context.Context, url string) (*domain.ImageBlob, bool, error) {
	vals, err := c.client.HMGet(ctx, c.key(url), fieldContentType, fieldData).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get image: %w", err)
	}

	contentType, _ := vals[0].(string)
	data, ok := vals[1].(string)
	if !ok {
		return nil, false, nil
	}
	return &domain.ImageBlob{Data: []byte(data), ContentType: contentType}, true, nil
}

func (c *redisCache) Set(ctx context.Context, url string, blob *domain.ImageBlob) error {
	err := c.client.HSet(ctx, c.key(url),
		fieldContentType, blob.ContentType,
		fieldData, blob.Data,
	).Err()
	if err != nil {
		return fmt.Errorf("redis set image: %w", err)
	}
	return nil
}
