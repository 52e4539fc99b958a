// Package sessionlog keep bounded audit trail of session lifecycle events.
package sessionlog

//
// sink.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/model"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
)

// MaxLogs is maximal number of entries kept.
const MaxLogs = 100

//nolint:gochecknoglobals
var sessionEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shopadmin_session_events_total",
		Help: "Number of session lifecycle events by action.",
	},
	[]string{"action"},
)

// DefaultUserAgent is used for entries created outside of http request.
func DefaultUserAgent() string {
	return "go-shopadmin/" + config.Version
}

//------------------------------------------------------------------------------

type SinkOption func(*Sink)

// WithClock set source of entries timestamps.
func WithClock(now func() time.Time) SinkOption {
	return func(s *Sink) {
		s.now = now
	}
}

// WithIDGenerator set generator of entries ids.
func WithIDGenerator(gen func() string) SinkOption {
	return func(s *Sink) {
		s.newID = gen
	}
}

// EntryOption modify created entry before it is stored.
type EntryOption func(*model.SessionLog)

func WithUserAgent(ua string) EntryOption {
	return func(l *model.SessionLog) {
		l.UserAgent = ua
	}
}

func WithIP(ip string) EntryOption {
	return func(l *model.SessionLog) {
		l.IP = ip
	}
}

//------------------------------------------------------------------------------

// Sink is log of session events of one profile. List is kept newest first
// in storage under storage.KeySessionLogs; sinks sharing one storage see each
// other entries. In-memory copy is used only when storage can't be read.
type Sink struct {
	mu    sync.Mutex
	st    storage.Storage
	logs  []model.SessionLog
	now   func() time.Time
	newID func() string
}

func NewSink(st storage.Storage, opts ...SinkOption) *Sink {
	sink := &Sink{
		st:    st,
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, o := range opts {
		o(sink)
	}

	return sink
}

// Log create new entry and persist it.
func (s *Sink) Log(ctx context.Context, action model.SessionAction, userID string, opts ...EntryOption,
) (model.SessionLog, error) {
	entry := model.SessionLog{
		ID:        s.newID(),
		UserID:    userID,
		Action:    action,
		Timestamp: s.now().UTC(),
		UserAgent: DefaultUserAgent(),
	}

	if client, ok := common.ContextClient(ctx); ok {
		if client.UserAgent != "" {
			entry.UserAgent = client.UserAgent
		}

		entry.IP = client.IP
	}

	for _, o := range opts {
		o(&entry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// other sinks may share storage; always prepend to persisted list
	current := s.load(ctx)

	logs := make([]model.SessionLog, 0, min(len(current)+1, MaxLogs))
	logs = append(logs, entry)
	logs = append(logs, current[:min(len(current), MaxLogs-1)]...)

	if err := s.persist(ctx, logs); err != nil {
		return entry, err
	}

	s.logs = logs

	sessionEvents.WithLabelValues(string(action)).Inc()
	log.Ctx(ctx).Debug().Object("entry", &entry).
		Msgf("SessionLog: %s for user %s", action, userID)

	return entry, nil
}

// GetLogs return copy of entries, newest first.
func (s *Sink) GetLogs(ctx context.Context) []model.SessionLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.load(ctx))
}

// GetLogsByUser return entries for given user, newest first.
func (s *Sink) GetLogsByUser(ctx context.Context, userID string) []model.SessionLog {
	logs := s.GetLogs(ctx)

	return slices.DeleteFunc(logs, func(l model.SessionLog) bool {
		return l.UserID != userID
	})
}

// ClearLogs remove all entries.
func (s *Sink) ClearLogs(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.st.Remove(ctx, storage.KeySessionLogs); err != nil {
		return aerr.Wrapf(err, "clear session logs failed")
	}

	s.logs = nil

	log.Ctx(ctx).Debug().Msg("SessionLog: logs cleared")

	return nil
}

// Close drop cached entries. Log persist every entry before it is cached so
// there is nothing to flush and storage is never written here.
func (s *Sink) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = nil

	log.Ctx(ctx).Debug().Msg("SessionLog: closed")

	return nil
}

// load read persisted list and refresh cache. When storage is unavailable
// last known list is returned.
func (s *Sink) load(ctx context.Context) []model.SessionLog {
	data, found, err := s.st.Get(ctx, storage.KeySessionLogs)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("SessionLog: load logs failed")

		return s.logs
	} else if !found {
		s.logs = nil

		return nil
	}

	logs, err := model.DecodeSessionLogs(data)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("SessionLog: invalid persisted logs")

		s.logs = nil

		return nil
	}

	if len(logs) > MaxLogs {
		logs = logs[:MaxLogs]
	}

	s.logs = logs

	return logs
}

func (s *Sink) persist(ctx context.Context, logs []model.SessionLog) error {
	data, err := model.EncodeSessionLogs(logs)
	if err != nil {
		return err
	}

	if err := s.st.Set(ctx, storage.KeySessionLogs, data); err != nil {
		return aerr.Wrapf(err, "persist session logs failed")
	}

	return nil
}
