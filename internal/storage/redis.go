package storage

//
// redis.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

const (
	redisKeyPrefix = "shopadmin:profile:"
	// RedisProfileTTL is time after which not modified profile is dropped.
	RedisProfileTTL = 30 * 24 * time.Hour
)

// RedisProvider keep each profile in one redis hash.
type RedisProvider struct {
	client *redis.Client
}

func NewRedisProvider(client *redis.Client) *RedisProvider {
	return &RedisProvider{client: client}
}

func (r *RedisProvider) Open(profileID string) Storage { //nolint:ireturn
	return &RedisStorage{client: r.client, key: redisKeyPrefix + profileID}
}

//------------------------------------------------------------------------------

type RedisStorage struct {
	client *redis.Client
	key    string
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.key, key).Result()

	switch {
	case err == nil:
		return value, true, nil
	case errors.Is(err, redis.Nil):
		return "", false, nil
	default:
		return "", false, aerr.ApplyFor(aerr.ErrStorage, err, "redis hget failed").WithMeta("key", key)
	}
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key, key, value)
		pipe.Expire(ctx, s.key, RedisProfileTTL)

		return nil
	})
	if err != nil {
		return aerr.ApplyFor(aerr.ErrStorage, err, "redis hset failed").WithMeta("key", key)
	}

	return nil
}

func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.key, key).Err(); err != nil {
		return aerr.ApplyFor(aerr.ErrStorage, err, "redis hdel failed").WithMeta("key", key)
	}

	return nil
}
