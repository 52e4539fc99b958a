// Package rdb provide redis client shared by redis backed storage and bus.
package rdb

//
// rdb.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

// Client wrap redis client to integrate it with injector lifecycle.
type Client struct {
	*redis.Client
}

func New(addr, password string, db int) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func NewClientI(i do.Injector) (*Client, error) {
	conf := do.MustInvoke[*config.SessionConf](i)

	if conf.RedisAddr == "" {
		return nil, aerr.ErrInvalidConf.WithUserMsg("missing redis address")
	}

	return New(conf.RedisAddr, conf.RedisPassword, conf.RedisDB), nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return aerr.ApplyFor(aerr.ErrStorage, err, "ping redis failed")
	}

	return nil
}

func (c *Client) Shutdown(ctx context.Context) error {
	log.Ctx(ctx).Debug().Msg("Redis: closing client...")

	if err := c.Close(); err != nil {
		return aerr.Wrapf(err, "close redis client failed")
	}

	return nil
}

var Package = do.Package(
	do.Lazy(NewClientI),
)
