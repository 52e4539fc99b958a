package bus

//
// redis.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

const redisChannelPrefix = "shopadmin:bus:"

// Redis deliver messages between processes with redis pub/sub.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Publish(ctx context.Context, channel string, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return aerr.Wrapf(err, "encode bus message failed").WithTag(aerr.InternalError)
	}

	log.Ctx(ctx).Debug().Object("msg", &msg).Msgf("RedisBus: publish channel=%q", channel)

	if err := r.client.Publish(ctx, redisChannelPrefix+channel, payload).Err(); err != nil {
		return aerr.ApplyFor(aerr.ErrStorage, err, "publish message failed").WithMeta("channel", channel)
	}

	return nil
}

func (r *Redis) Subscribe(ctx context.Context, channel string, handler Handler) (Subscription, error) { //nolint:ireturn
	pubsub := r.client.Subscribe(ctx, redisChannelPrefix+channel)

	// wait for confirmation so messages published after return are not lost
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()

		return nil, aerr.ApplyFor(aerr.ErrStorage, err, "subscribe failed").WithMeta("channel", channel)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		logger: log.Ctx(ctx),
	}

	go sub.receive(channel, handler)

	return sub, nil
}

//------------------------------------------------------------------------------

type redisSubscription struct {
	pubsub *redis.PubSub
	logger *zerolog.Logger
	once   sync.Once
}

func (s *redisSubscription) receive(channel string, handler Handler) {
	ctx := s.logger.WithContext(context.Background())

	for rmsg := range s.pubsub.Channel() {
		var msg Message
		if err := json.Unmarshal([]byte(rmsg.Payload), &msg); err != nil {
			s.logger.Warn().Err(err).Msgf("RedisBus: invalid message channel=%q", channel)

			continue
		}

		handler(ctx, msg)
	}
}

func (s *redisSubscription) Unsubscribe() {
	s.once.Do(func() {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("RedisBus: close subscription error")
		}
	})
}
