package bus

//
// local.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Local deliver messages to subscribers in the same process, synchronously
// on publisher goroutine.
type Local struct {
	mu     sync.Mutex
	subs   map[string]map[uint64]*localSubscription
	nextID uint64
}

func NewLocal() *Local {
	return &Local{
		subs: make(map[string]map[uint64]*localSubscription),
	}
}

func (l *Local) Publish(ctx context.Context, channel string, msg Message) error {
	l.mu.Lock()

	subs := make([]*localSubscription, 0, len(l.subs[channel]))
	for _, s := range l.subs[channel] {
		subs = append(subs, s)
	}

	l.mu.Unlock()

	log.Ctx(ctx).Debug().Object("msg", &msg).Msgf("LocalBus: publish channel=%q subscribers=%d", channel, len(subs))

	for _, s := range subs {
		s.deliver(msg)
	}

	return nil
}

func (l *Local) Subscribe(ctx context.Context, channel string, handler Handler) (Subscription, error) { //nolint:ireturn
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++

	sub := &localSubscription{
		bus:     l,
		channel: channel,
		id:      l.nextID,
		handler: handler,
		logger:  log.Ctx(ctx),
	}

	chsubs, ok := l.subs[channel]
	if !ok {
		chsubs = make(map[uint64]*localSubscription)
		l.subs[channel] = chsubs
	}

	chsubs[sub.id] = sub

	return sub, nil
}

// Subscribers return number of active subscriptions on channel.
func (l *Local) Subscribers(channel string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.subs[channel])
}

func (l *Local) remove(sub *localSubscription) {
	l.mu.Lock()
	defer l.mu.Unlock()

	chsubs, ok := l.subs[sub.channel]
	if !ok {
		return
	}

	delete(chsubs, sub.id)

	if len(chsubs) == 0 {
		delete(l.subs, sub.channel)
	}
}

//------------------------------------------------------------------------------

type localSubscription struct {
	bus     *Local
	channel string
	id      uint64
	handler Handler
	logger  *zerolog.Logger

	mu     sync.Mutex
	closed bool
}

func (s *localSubscription) deliver(msg Message) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return
	}

	s.handler(s.logger.WithContext(context.Background()), msg)
}

func (s *localSubscription) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return
	}

	s.closed = true
	s.mu.Unlock()

	s.bus.remove(s)
}
