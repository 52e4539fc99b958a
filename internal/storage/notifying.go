package storage

//
// notifying.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"

	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/bus"
)

// NotifyingStorage publish every change on bus. Failure of publishing is
// logged and do not fail the write.
type NotifyingStorage struct {
	Storage

	bus     bus.Bus
	channel string
	origin  string
}

// Notifying wrap `st` so all writes are announced on `channel` as coming from `origin`.
func Notifying(st Storage, b bus.Bus, channel, origin string) *NotifyingStorage {
	return &NotifyingStorage{
		Storage: st,
		bus:     b,
		channel: channel,
		origin:  origin,
	}
}

// Origin return identifier of writer.
func (n *NotifyingStorage) Origin() string {
	return n.origin
}

func (n *NotifyingStorage) Set(ctx context.Context, key, value string) error {
	if err := n.Storage.Set(ctx, key, value); err != nil {
		return err
	}

	n.publish(ctx, bus.Message{Key: key, Value: value, Origin: n.origin})

	return nil
}

func (n *NotifyingStorage) Remove(ctx context.Context, key string) error {
	_, found, err := n.Storage.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := n.Storage.Remove(ctx, key); err != nil {
		return err
	}

	if found {
		n.publish(ctx, bus.Message{Key: key, Removed: true, Origin: n.origin})
	}

	return nil
}

func (n *NotifyingStorage) publish(ctx context.Context, msg bus.Message) {
	if err := n.bus.Publish(ctx, n.channel, msg); err != nil {
		log.Ctx(ctx).Warn().Err(err).Object("msg", &msg).
			Msgf("NotifyingStorage: publish change failed channel=%q", n.channel)
	}
}
