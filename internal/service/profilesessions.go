package service

//
// profilesessions.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"gitea.com/go-chi/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/db"
	"gitlab.com/kabes/go-shopadmin/internal/model"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
)

// emptyProfileMaxAge is how long profile without any value survive GC.
const emptyProfileMaxAge = 2 * time.Hour

// profileStore is session.RawStore of one browser profile.
type profileStore struct {
	mu      sync.RWMutex
	profile *model.ProfileSession
	dirty   bool

	db   repository.Database
	repo repository.ProfileSessions
}

func (s *profileStore) Set(key, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.Data[key] = value
	s.dirty = true

	return nil
}

func (s *profileStore) Get(key any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.profile.Data[key]
}

func (s *profileStore) Delete(key any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profile.Data[key]; ok {
		delete(s.profile.Data, key)
		s.dirty = true
	}

	return nil
}

func (s *profileStore) ID() string {
	return s.profile.ID
}

// Release write profile into database. Unchanged profiles only refresh
// last seen time.
func (s *profileStore) Release() error {
	s.mu.RLock()
	sess := &model.ProfileSession{
		ID:        s.profile.ID,
		Data:      maps.Clone(s.profile.Data),
		CreatedAt: s.profile.CreatedAt,
		LastSeen:  s.profile.LastSeen,
	}
	dirty := s.dirty
	s.mu.RUnlock()

	ctx := log.Logger.WithContext(context.Background())

	err := db.InTransaction(ctx, s.db, func(ctx context.Context) error {
		return s.repo.SaveProfileSession(ctx, sess)
	})
	if err != nil {
		return aerr.Wrapf(err, "save profile session failed").WithMeta("id", sess.ID, "dirty", dirty)
	}

	s.mu.Lock()
	s.profile.LastSeen = sess.LastSeen
	s.dirty = false
	s.mu.Unlock()

	return nil
}

func (s *profileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.profile.Data) > 0 {
		clear(s.profile.Data)
		s.dirty = true
	}

	return nil
}

//-------------------------------------------------------------

// ProfileSessionProvider keep browser profiles (`profile` cookie) in database.
type ProfileSessionProvider struct {
	db      repository.Database
	repo    repository.ProfileSessions
	maxIdle time.Duration
	logger  zerolog.Logger
}

func NewProfileSessionProvider(
	database repository.Database,
	repo repository.ProfileSessions,
	maxIdle time.Duration,
) *ProfileSessionProvider {
	return &ProfileSessionProvider{
		db:      database,
		repo:    repo,
		maxIdle: maxIdle,
		logger:  log.Logger.With().Str("module", "profile_sessions").Logger(),
	}
}

func (p *ProfileSessionProvider) Init(_ int64, _ string) error {
	return nil
}

// Read load profile; unknown and idle profiles start empty.
func (p *ProfileSessionProvider) Read(sid string) (session.RawStore, error) {
	ctx := p.logger.WithContext(context.Background())

	sess, err := db.InConnectionR(ctx, p.db, func(ctx context.Context) (*model.ProfileSession, error) {
		return p.repo.GetProfileSession(ctx, sid)
	})

	switch {
	case errors.Is(err, common.ErrNoData):
		p.logger.Debug().Msgf("ProfileSessionProvider: new profile id=%q", sid)

		sess = model.NewProfileSession(sid)
	case err != nil:
		return nil, aerr.Wrapf(err, "read profile session failed").WithMeta("id", sid)
	case sess.Idle(time.Now().UTC(), p.maxIdle):
		p.logger.Debug().Object("profile", sess).Msg("ProfileSessionProvider: profile idle, reset")

		sess = model.NewProfileSession(sid)
	}

	return p.newStore(sess), nil
}

func (p *ProfileSessionProvider) Exist(sid string) (bool, error) {
	ctx := p.logger.WithContext(context.Background())

	_, err := db.InConnectionR(ctx, p.db, func(ctx context.Context) (*model.ProfileSession, error) {
		return p.repo.GetProfileSession(ctx, sid)
	})

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrNoData):
		return false, nil
	default:
		return false, aerr.Wrapf(err, "check profile session failed").WithMeta("id", sid)
	}
}

func (p *ProfileSessionProvider) Destroy(sid string) error {
	ctx := p.logger.WithContext(context.Background())

	err := db.InTransaction(ctx, p.db, func(ctx context.Context) error {
		return p.repo.DeleteProfileSession(ctx, sid)
	})
	if err != nil {
		return aerr.Wrapf(err, "delete profile session failed").WithMeta("id", sid)
	}

	return nil
}

// Regenerate move profile data from oldsid to sid.
func (p *ProfileSessionProvider) Regenerate(oldsid, sid string) (session.RawStore, error) {
	p.logger.Debug().Msgf("ProfileSessionProvider: regenerate old=%q new=%q", oldsid, sid)

	ctx := p.logger.WithContext(context.Background())

	sess, err := db.InTransactionR(ctx, p.db, func(ctx context.Context) (*model.ProfileSession, error) {
		renamed, err := p.repo.RenameProfileSession(ctx, oldsid, sid)
		if err != nil {
			return nil, err
		}

		if !renamed {
			return model.NewProfileSession(sid), nil
		}

		return p.repo.GetProfileSession(ctx, sid)
	})
	if err != nil {
		return nil, aerr.Wrapf(err, "regenerate profile session failed").WithMeta("old", oldsid, "new", sid)
	}

	return p.newStore(sess), nil
}

func (p *ProfileSessionProvider) Count() (int, error) {
	ctx := p.logger.WithContext(context.Background())

	cnt, err := db.InConnectionR(ctx, p.db, p.repo.CountProfileSessions)
	if err != nil {
		return 0, aerr.Wrapf(err, "count profile sessions failed")
	}

	return cnt, nil
}

// GC remove idle profiles and short-lived empty ones.
func (p *ProfileSessionProvider) GC() {
	ctx := p.logger.WithContext(context.Background())
	now := time.Now().UTC()

	purged, err := db.InTransactionR(ctx, p.db, func(ctx context.Context) (int64, error) {
		return p.repo.PurgeProfileSessions(ctx, now.Add(-p.maxIdle), now.Add(-emptyProfileMaxAge))
	})
	if err != nil {
		p.logger.Error().Err(err).Msg("ProfileSessionProvider: gc failed")

		return
	}

	p.logger.Debug().Msgf("ProfileSessionProvider: gc finished purged=%d", purged)
}

func (p *ProfileSessionProvider) newStore(sess *model.ProfileSession) *profileStore {
	return &profileStore{profile: sess, db: p.db, repo: p.repo}
}
