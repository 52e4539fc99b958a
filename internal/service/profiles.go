package service

//
// profiles.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/activity"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/bus"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/model"
	"gitlab.com/kabes/go-shopadmin/internal/sessionlog"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
)

// Tab is authentication state of one request made in browser profile.
type Tab struct {
	ProfileID string
	Origin    string
	Store     *auth.Store
}

//------------------------------------------------------------------------------

// ProfilesSrv bind together per-profile storage, authentication state,
// session log and background activity monitor.
type ProfilesSrv struct {
	provider    storage.Provider
	bus         bus.Bus
	verifier    auth.Verifier
	minter      auth.TokenMinter
	activityCfg activity.Config
	tokenTTL    time.Duration
	loginPath   string

	// mu serialize creation of monitors.
	mu       sync.Mutex
	monitors *activity.Registry
	sinks    *DynamicCache[string, *sessionlog.Sink]
}

func NewProfilesSrv(i do.Injector) (*ProfilesSrv, error) {
	conf := do.MustInvoke[*config.SessionConf](i)

	srv := &ProfilesSrv{
		provider: do.MustInvoke[storage.Provider](i),
		bus:      do.MustInvoke[bus.Bus](i),
		verifier: do.MustInvoke[auth.Verifier](i),
		minter:   do.MustInvoke[auth.TokenMinter](i),
		activityCfg: activity.Config{
			MaxInactiveTime: conf.MaxInactiveTime,
			WarningTime:     conf.WarningTime,
			CheckInterval:   conf.CheckInterval,
		},
		tokenTTL:  conf.TokenTTL,
		loginPath: auth.DefaultLoginPath,
		monitors:  activity.NewRegistry(),
	}

	// pages may be mounted under webroot; not defined in cli commands and tests
	if webroot, err := do.InvokeNamed[string](i, "server.webroot"); err == nil && webroot != "" {
		srv.loginPath = webroot + auth.DefaultLoginPath
	}

	if err := srv.activityCfg.Validate(); err != nil {
		return nil, err
	}

	srv.sinks = NewDynamicCache(func(profileID string) *sessionlog.Sink {
		return sessionlog.NewSink(srv.provider.Open(profileID))
	})

	return srv, nil
}

// OpenTab restore authentication state of profile for current request.
// Background monitor is created when session is authenticated and no monitor
// is running for the profile.
func (p *ProfilesSrv) OpenTab(ctx context.Context, profileID string, jar auth.CookieJar, nav auth.Navigator,
) (*Tab, error) {
	if profileID == "" {
		return nil, common.ErrNoProfile
	}

	origin := xid.New().String()
	st := storage.Notifying(p.provider.Open(profileID), p.bus, profileID, origin)
	store := auth.NewStore(auth.StoreDeps{
		Storage:   st,
		Verifier:  p.verifier,
		Minter:    p.minter,
		Logs:      p.sinks.GetOrCreate(profileID),
		Cookies:   jar,
		Navigator: nav,
	}, auth.WithTokenTTL(p.tokenTTL), auth.WithLoginPath(p.loginPath), auth.WithQuietRestore())

	store.Rehydrate(ctx)
	common.TraceLazyPrintf(ctx, "ProfilesSrv: tab opened profile=%s origin=%s authenticated=%v",
		profileID, origin, store.IsAuthenticated())

	if store.IsAuthenticated() {
		if _, err := p.ensureMonitor(ctx, profileID); err != nil {
			return nil, err
		}
	}

	return &Tab{ProfileID: profileID, Origin: origin, Store: store}, nil
}

// Login authenticate user in tab and start monitoring from clean state.
func (p *ProfilesSrv) Login(ctx context.Context, tab *Tab, email, password string) (*model.Identity, error) {
	ident, err := tab.Store.Authenticate(ctx, email, password)
	if err != nil {
		common.TraceErrorLazyPrintf(ctx, "ProfilesSrv: login failed profile=%s", tab.ProfileID)

		return nil, err //nolint:wrapcheck
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	mon, err := p.newMonitor(ctx, tab.ProfileID, auth.WithQuietRestore())
	if err != nil {
		return nil, err
	}

	if err := mon.Rearm(detachedCtx(ctx)); err != nil {
		return nil, aerr.Wrapf(err, "start activity monitor failed")
	}

	p.monitors.Put(tab.ProfileID, mon)

	return ident, nil
}

// Logout end session in tab and stop profile monitor.
func (p *ProfilesSrv) Logout(ctx context.Context, tab *Tab) {
	tab.Store.Logout(ctx)
	p.monitors.Remove(tab.ProfileID)
}

// Monitor return running monitor for profile.
func (p *ProfilesSrv) Monitor(profileID string) (*activity.Monitor, bool) {
	mon, ok := p.monitors.Get(profileID)
	if !ok || !mon.Running() {
		return nil, false
	}

	return mon, true
}

// RecordActivity register user interaction in profile.
func (p *ProfilesSrv) RecordActivity(ctx context.Context, profileID, event string) error {
	mon, ok := p.Monitor(profileID)
	if !ok {
		return common.ErrNotLoggedIn
	}

	if !mon.RecordEvent(ctx, event) {
		return common.ErrUnknownEvent.WithMeta("event", event)
	}

	return nil
}

// VisibilityChanged pass change of page visibility to monitor.
func (p *ProfilesSrv) VisibilityChanged(ctx context.Context, profileID string, visible bool) error {
	mon, ok := p.Monitor(profileID)
	if !ok {
		return common.ErrNotLoggedIn
	}

	mon.VisibilityChanged(ctx, visible)

	return nil
}

// AcknowledgeWarning pass user answer for inactivity warning.
func (p *ProfilesSrv) AcknowledgeWarning(ctx context.Context, profileID string, accepted bool) error {
	mon, ok := p.Monitor(profileID)
	if !ok {
		return common.ErrNotLoggedIn
	}

	mon.AcknowledgeWarning(ctx, accepted)

	return nil
}

// Status return state of profile monitor.
func (p *ProfilesSrv) Status(profileID string) (activity.Status, bool) {
	mon, ok := p.Monitor(profileID)
	if !ok {
		return activity.Status{}, false
	}

	return mon.Status(), true
}

// Logs return session log of profile.
func (p *ProfilesSrv) Logs(profileID string) *sessionlog.Sink {
	return p.sinks.GetOrCreate(profileID)
}

// Sweep remove stopped monitors and flush logs of profiles without monitor.
func (p *ProfilesSrv) Sweep(ctx context.Context) int {
	removed := p.monitors.Sweep()

	active := make(map[string]struct{})
	for _, id := range p.monitors.Profiles() {
		active[id] = struct{}{}
	}

	for _, id := range p.sinks.Keys() {
		if _, ok := active[id]; ok {
			continue
		}

		if sink, ok := p.sinks.Pop(id); ok {
			if err := sink.Close(ctx); err != nil {
				log.Ctx(ctx).Warn().Err(err).Str(common.LogKeyProfileID, id).Msg("ProfilesSrv: flush session log failed")
				common.EventLogFromContext(ctx).Errorf("flush session log profile=%s error=%q", id, err)
			}
		}
	}

	if removed > 0 {
		log.Ctx(ctx).Debug().Msgf("ProfilesSrv: sweep removed=%d", removed)
		common.EventLogFromContext(ctx).Printf("removed monitors=%d", removed)
	}

	return removed
}

// Shutdown stop all monitors and flush session logs.
func (p *ProfilesSrv) Shutdown(ctx context.Context) error {
	p.monitors.Shutdown()

	var lastErr error

	for _, sink := range p.sinks.Drain() {
		if err := sink.Close(ctx); err != nil {
			lastErr = err
		}
	}

	log.Ctx(ctx).Debug().Msg("ProfilesSrv: stopped")

	return lastErr
}

// ensureMonitor return running monitor for profile; new monitor restore
// session from storage and log activity_detected.
func (p *ProfilesSrv) ensureMonitor(ctx context.Context, profileID string) (*activity.Monitor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if mon, ok := p.Monitor(profileID); ok {
		return mon, nil
	}

	mon, err := p.newMonitor(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := mon.Start(detachedCtx(ctx)); err != nil {
		return nil, aerr.Wrapf(err, "start activity monitor failed")
	}

	p.monitors.Put(profileID, mon)

	return mon, nil
}

func (p *ProfilesSrv) newMonitor(ctx context.Context, profileID string, opts ...auth.StoreOption,
) (*activity.Monitor, error) {
	origin := "monitor-" + xid.New().String()
	st := storage.Notifying(p.provider.Open(profileID), p.bus, profileID, origin)

	opts = append(opts, auth.WithTokenTTL(p.tokenTTL), auth.WithLoginPath(p.loginPath))
	store := auth.NewStore(auth.StoreDeps{
		Storage:  st,
		Verifier: p.verifier,
		Minter:   p.minter,
		Logs:     p.sinks.GetOrCreate(profileID),
	}, opts...)

	store.Rehydrate(ctx)

	if !store.IsAuthenticated() {
		return nil, common.ErrNotLoggedIn
	}

	logger := log.Ctx(ctx).With().Str(common.LogKeyProfileID, profileID).Logger()

	mon := activity.NewMonitor(p.activityCfg, store, st, p.bus, profileID, origin,
		activity.WithWarningHandler(func(_ context.Context, w activity.Warning) {
			logger.Info().Msgf("ProfilesSrv: inactivity warning minutes_left=%d", w.MinutesLeft)
		}))

	return mon, nil
}

// detachedCtx keep logger from request context but drop its deadline and values.
func detachedCtx(ctx context.Context) context.Context {
	return log.Ctx(ctx).WithContext(context.Background())
}
