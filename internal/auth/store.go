// Package auth keep authentication state of one tab and mirror it in profile
// storage and token cookie.
package auth

//
// store.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/model"
	"gitlab.com/kabes/go-shopadmin/internal/sessionlog"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
)

const DefaultLoginPath = "/login"

// StoreDeps are collaborators of Store. Cookies and Navigator default to no-op.
type StoreDeps struct {
	Storage   storage.Storage
	Verifier  Verifier
	Minter    TokenMinter
	Logs      *sessionlog.Sink
	Cookies   CookieJar
	Navigator Navigator
}

type StoreOption func(*Store)

// WithTokenTTL set max age of token cookie.
func WithTokenTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.tokenTTL = ttl
	}
}

// WithLoginPath set path where Logout navigate.
func WithLoginPath(path string) StoreOption {
	return func(s *Store) {
		s.loginPath = path
	}
}

// WithQuietRestore disable logging of activity_detected on rehydration.
func WithQuietRestore() StoreOption {
	return func(s *Store) {
		s.quietRestore = true
	}
}

//------------------------------------------------------------------------------

// Store is authentication state of one tab.
type Store struct {
	mu   sync.Mutex
	deps StoreDeps

	identity   *model.Identity
	token      string
	loading    bool
	rehydrated bool

	tokenTTL     time.Duration
	loginPath    string
	quietRestore bool
}

func NewStore(deps StoreDeps, opts ...StoreOption) *Store {
	if deps.Cookies == nil {
		deps.Cookies = NopCookieJar{}
	}

	if deps.Navigator == nil {
		deps.Navigator = NopNavigator{}
	}

	store := &Store{
		deps:      deps,
		loading:   true,
		tokenTTL:  DefaultTokenTTL,
		loginPath: DefaultLoginPath,
	}

	for _, o := range opts {
		o(store)
	}

	return store
}

// Rehydrate restore state from storage. Only first call do anything.
func (s *Store) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rehydrated {
		return
	}

	s.rehydrated = true
	defer func() { s.loading = false }()

	logger := log.Ctx(ctx)
	st := s.deps.Storage

	token, tokenFound, err := st.Get(ctx, storage.KeyToken)
	if err != nil {
		logger.Warn().Err(err).Msg("AuthStore: read token failed")
	}

	user, userFound, err := st.Get(ctx, storage.KeyUser)
	if err != nil {
		logger.Warn().Err(err).Msg("AuthStore: read user failed")
	}

	if tokenFound && token != "" && userFound {
		ident, err := model.DecodeIdentity(user)
		if err == nil {
			s.identity = ident
			s.token = token
			s.deps.Cookies.SetToken(token, s.tokenTTL)

			logger.Debug().Object("identity", ident).Msg("AuthStore: session restored")

			if !s.quietRestore {
				s.log(ctx, model.ActionActivityDetected, ident.ID)
			}

			return
		}

		logger.Warn().Err(err).Msg("AuthStore: invalid persisted identity; clearing session")
	}

	// partial or corrupted state
	if tokenFound {
		s.remove(ctx, storage.KeyToken)
	}

	if userFound {
		s.remove(ctx, storage.KeyUser)
	}

	if s.deps.Cookies.HasToken() {
		s.deps.Cookies.ClearToken()
	}
}

// Login verify credentials and start session. Every error is reported as false.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	_, err := s.Authenticate(ctx, email, password)
	if err != nil {
		log.Ctx(ctx).WithLevel(aerr.LogLevelForError(err)).Err(err).
			Msgf("AuthStore: login failed email=%q", email)

		return false
	}

	return true
}

// Authenticate verify credentials and start session.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	logger := log.Ctx(ctx)

	ident, err := s.deps.Verifier.Verify(ctx, email, password)
	if err != nil {
		return nil, aerr.ApplyFor(ErrVerifierUnavailable, err)
	} else if ident == nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.deps.Minter.Mint(ctx, ident)
	if err != nil {
		return nil, aerr.ApplyFor(ErrVerifierUnavailable, err, "mint token failed")
	}

	encoded, err := model.EncodeIdentity(ident)
	if err != nil {
		return nil, aerr.Wrapf(err, "encode identity failed").WithTag(aerr.InternalError)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.deps.Storage

	if err := st.Set(ctx, storage.KeyToken, token); err != nil {
		return nil, aerr.ApplyFor(aerr.ErrStorage, err, "persist token failed")
	}

	if err := st.Set(ctx, storage.KeyUser, encoded); err != nil {
		s.remove(ctx, storage.KeyToken)

		return nil, aerr.ApplyFor(aerr.ErrStorage, err, "persist user failed")
	}

	s.deps.Cookies.SetToken(token, s.tokenTTL)
	s.identity = ident
	s.token = token
	s.loading = false
	s.rehydrated = true

	logger.Info().Object("identity", ident).Msg("AuthStore: user logged in")

	s.log(ctx, model.ActionLogin, ident.ID)

	res := *ident

	return &res, nil
}

// Logout end session and navigate to login page.
func (s *Store) Logout(ctx context.Context) {
	if s.teardown(ctx, model.ActionLogout) {
		log.Ctx(ctx).Info().Msg("AuthStore: user logged out")
	}

	s.deps.Navigator.Navigate(s.loginPath)
}

// ExpireSession end session because of inactivity and navigate to login page.
func (s *Store) ExpireSession(ctx context.Context) {
	if s.teardown(ctx, model.ActionSessionExpired) {
		log.Ctx(ctx).Info().Msg("AuthStore: session expired")
	}

	s.deps.Navigator.Navigate(s.loginPath)
}

func (s *Store) Identity() *model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return nil
	}

	ident := *s.identity

	return &ident
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.identity != nil
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

// teardown clear session state; log `action` when this store removed persisted
// token. Return true when entry was logged.
func (s *Store) teardown(ctx context.Context, action model.SessionAction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ident := s.identity
	st := s.deps.Storage

	persisted, tokenFound, err := st.Get(ctx, storage.KeyToken)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("AuthStore: read token failed")
	}

	if tokenFound && s.token != "" && persisted != s.token {
		// other tab started new session; leave it untouched
		log.Ctx(ctx).Debug().Msg("AuthStore: persisted token replaced by newer session")

		s.identity = nil
		s.token = ""

		return false
	}

	s.remove(ctx, storage.KeyToken)
	s.remove(ctx, storage.KeyUser)
	s.deps.Cookies.ClearToken()

	s.identity = nil
	s.token = ""

	if ident != nil && tokenFound {
		s.log(ctx, action, ident.ID)

		return true
	}

	return false
}

func (s *Store) remove(ctx context.Context, key string) {
	if err := s.deps.Storage.Remove(ctx, key); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msgf("AuthStore: remove key=%q failed", key)
	}
}

func (s *Store) log(ctx context.Context, action model.SessionAction, userID string) {
	if s.deps.Logs == nil {
		return
	}

	if _, err := s.deps.Logs.Log(ctx, action, userID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msgf("AuthStore: write session log action=%q failed", action)
	}
}

// IsInvalidCredentials check if error returned by Authenticate mean bad email/password.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
