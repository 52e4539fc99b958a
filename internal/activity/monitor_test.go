package activity

//
// monitor_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/bus"
	"gitlab.com/kabes/go-shopadmin/internal/model"
	"gitlab.com/kabes/go-shopadmin/internal/sessionlog"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

type fakeSession struct {
	mu            sync.Mutex
	authenticated bool
	logouts       int
	expires       int
	// ctxErrs collect errors of contexts passed to Logout/ExpireSession
	ctxErrs []error
}

func (f *fakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.authenticated
}

func (f *fakeSession) Logout(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.authenticated = false
	f.logouts++
}

func (f *fakeSession) ExpireSession(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.authenticated = false
	f.expires++
}

func (f *fakeSession) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.logouts, f.expires
}

type fixture struct {
	clock    *fakeClock
	session  *fakeSession
	st       *storage.Memory
	bus      *bus.Local
	monitor  *Monitor
	warnings []Warning
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	f := &fixture{
		clock:   newFakeClock(),
		session: &fakeSession{authenticated: true},
		st:      storage.NewMemory(),
		bus:     bus.NewLocal(),
	}

	f.monitor = NewMonitor(cfg, f.session, f.st, f.bus, "p1", "tab-a",
		WithClock(f.clock.now),
		WithWarningHandler(func(_ context.Context, w Warning) {
			f.warnings = append(f.warnings, w)
		}))

	t.Cleanup(f.monitor.Stop)

	return f
}

func testConfig() Config {
	cfg := DefaultConfig()
	// ticker must not interfere with simulated clock
	cfg.CheckInterval = time.Hour

	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		cfg   Config
		valid bool
	}{
		{DefaultConfig(), true},
		{Config{MaxInactiveTime: time.Minute, WarningTime: 0, CheckInterval: time.Second}, true},
		{Config{MaxInactiveTime: 0, WarningTime: 0, CheckInterval: time.Second}, false},
		{Config{MaxInactiveTime: time.Minute, WarningTime: time.Minute, CheckInterval: time.Second}, false},
		{Config{MaxInactiveTime: time.Minute, WarningTime: -time.Second, CheckInterval: time.Second}, false},
		{Config{MaxInactiveTime: time.Minute, WarningTime: 0, CheckInterval: 0}, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.valid {
				assert.NoErr(t, err)
			} else {
				assert.Err(t, err)
				assert.True(t, aerr.HasTag(err, aerr.ValidationError))
				assert.Contains(t, aerr.GetUserMessage(err), "invalid activity configuration")
			}
		})
	}
}

func TestMonitorStartNotAuthenticated(t *testing.T) {
	f := newFixture(t, testConfig())
	f.session.authenticated = false

	assert.NoErr(t, f.monitor.Start(context.Background()))
	assert.True(t, !f.monitor.Running())
	assert.Equal(t, f.bus.Subscribers("p1"), 0)
}

func TestMonitorStartRestoresActivity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	saved := f.clock.now().Add(-10 * time.Minute)
	assert.NoErr(t, f.st.Set(ctx, storage.KeyLastActivity, strconv.FormatInt(saved.UnixMilli(), 10)))

	assert.NoErr(t, f.monitor.Start(ctx))
	assert.True(t, f.monitor.Running())
	assert.Equal(t, f.bus.Subscribers("p1"), 1)
	assert.Equal(t, f.monitor.RemainingTime(), 20*time.Minute)

	// second start do nothing
	assert.NoErr(t, f.monitor.Start(ctx))
	assert.Equal(t, f.bus.Subscribers("p1"), 1)

	f.monitor.Stop()
	f.monitor.Stop()
	assert.True(t, !f.monitor.Running())
	assert.Equal(t, f.bus.Subscribers("p1"), 0)
}

func TestMonitorStartWithoutSavedActivity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	assert.NoErr(t, f.monitor.Start(ctx))

	value, found, err := f.st.Get(ctx, storage.KeyLastActivity)
	assert.NoErr(t, err)
	assert.True(t, found)
	assert.Equal(t, value, strconv.FormatInt(f.clock.now().UnixMilli(), 10))
	assert.Equal(t, f.monitor.RemainingMinutes(), 30.0)
}

func TestMonitorExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	assert.NoErr(t, f.monitor.Start(ctx))

	f.clock.advance(29*time.Minute + 54*time.Second)
	f.monitor.CheckSession(ctx)

	_, expires := f.session.counts()
	assert.Equal(t, expires, 0)
	assert.Equal(t, f.monitor.State(), WarningPending)

	f.clock.advance(6 * time.Second)
	f.monitor.CheckSession(ctx)
	f.monitor.CheckSession(ctx)
	f.monitor.VisibilityChanged(ctx, true)

	logouts, expires := f.session.counts()
	assert.Equal(t, expires, 1)
	assert.Equal(t, logouts, 0)
	assert.Equal(t, f.monitor.State(), Expired)
	assert.True(t, !f.monitor.Running())
	assert.Equal(t, f.monitor.RemainingTime(), 0)
	assert.Equal(t, f.bus.Subscribers("p1"), 0)

	// activity after expiry is ignored
	f.monitor.UpdateActivity(ctx)
	assert.Equal(t, f.monitor.State(), Expired)
}

func TestMonitorWarningOncePerWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	assert.NoErr(t, f.monitor.Start(ctx))

	f.clock.advance(24 * time.Minute)
	f.monitor.CheckSession(ctx)
	assert.Equal(t, len(f.warnings), 0)
	assert.Equal(t, f.monitor.State(), Active)

	f.clock.advance(time.Minute)
	f.monitor.CheckSession(ctx)
	assert.Equal(t, len(f.warnings), 1)
	assert.Equal(t, f.warnings[0].MinutesLeft, 5)

	for range 4 {
		f.clock.advance(time.Minute)
		f.monitor.CheckSession(ctx)
	}

	assert.Equal(t, len(f.warnings), 1)

	status := f.monitor.Status()
	assert.Equal(t, status.State, WarningPending)
	assert.True(t, status.ShowWarning)
	assert.True(t, status.Warning != nil)
	assert.Equal(t, status.RemainingMinutes, 1.0)

	// ignoring warning leave session to expire
	f.monitor.AcknowledgeWarning(ctx, false)
	assert.True(t, f.monitor.Status().Warning == nil)

	f.clock.advance(time.Minute)
	f.monitor.CheckSession(ctx)

	_, expires := f.session.counts()
	assert.Equal(t, expires, 1)
}

func TestMonitorWarningCeilMinutes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	assert.NoErr(t, f.monitor.Start(ctx))

	f.clock.advance(25*time.Minute + 30*time.Second)
	f.monitor.CheckSession(ctx)
	assert.Equal(t, len(f.warnings), 1)
	assert.Equal(t, f.warnings[0].MinutesLeft, 5)
}

func TestMonitorAcknowledgeWarning(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	assert.NoErr(t, f.monitor.Start(ctx))

	f.clock.advance(26 * time.Minute)
	f.monitor.CheckSession(ctx)
	assert.Equal(t, len(f.warnings), 1)

	f.monitor.AcknowledgeWarning(ctx, true)
	assert.Equal(t, f.monitor.State(), Active)
	assert.Equal(t, f.monitor.RemainingTime(), 30*time.Minute)

	// new inactivity window issue new warning
	f.clock.advance(26 * time.Minute)
	f.monitor.CheckSession(ctx)
	assert.Equal(t, len(f.warnings), 2)
}

func TestMonitorRecordEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	assert.NoErr(t, f.monitor.Start(ctx))
	f.clock.advance(10 * time.Minute)

	assert.True(t, !f.monitor.RecordEvent(ctx, "focus"))
	assert.Equal(t, f.monitor.RemainingTime(), 20*time.Minute)

	for _, kind := range []string{"mousedown", "mousemove", "keypress", "scroll", "touchstart", "click"} {
		assert.True(t, f.monitor.RecordEvent(ctx, kind))
	}

	assert.Equal(t, f.monitor.RemainingTime(), 30*time.Minute)

	value, _, err := f.st.Get(ctx, storage.KeyLastActivity)
	assert.NoErr(t, err)
	assert.Equal(t, value, strconv.FormatInt(f.clock.now().UnixMilli(), 10))
}

func TestMonitorActivityFromOtherTab(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	assert.NoErr(t, f.monitor.Start(ctx))

	f.clock.advance(26 * time.Minute)
	f.monitor.CheckSession(ctx)
	assert.Equal(t, f.monitor.State(), WarningPending)

	// other tab was active minute ago
	other := storage.Notifying(f.st, f.bus, "p1", "tab-b")
	recent := f.clock.now().Add(-time.Minute)
	assert.NoErr(t, other.Set(ctx, storage.KeyLastActivity, strconv.FormatInt(recent.UnixMilli(), 10)))

	assert.Equal(t, f.monitor.State(), Active)
	assert.Equal(t, f.monitor.RemainingTime(), 29*time.Minute)

	// older timestamp is not adopted
	old := f.clock.now().Add(-20 * time.Minute)
	assert.NoErr(t, other.Set(ctx, storage.KeyLastActivity, strconv.FormatInt(old.UnixMilli(), 10)))
	assert.Equal(t, f.monitor.RemainingTime(), 29*time.Minute)

	// own messages are ignored
	own := storage.Notifying(f.st, f.bus, "p1", "tab-a")
	assert.NoErr(t, own.Set(ctx, storage.KeyLastActivity, strconv.FormatInt(f.clock.now().UnixMilli(), 10)))
	assert.Equal(t, f.monitor.RemainingTime(), 29*time.Minute)
}

func TestMonitorRearm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	assert.NoErr(t, f.monitor.Start(ctx))
	f.clock.advance(31 * time.Minute)
	f.monitor.CheckSession(ctx)
	assert.Equal(t, f.monitor.State(), Expired)

	// log in again
	f.session.authenticated = true
	assert.NoErr(t, f.monitor.Rearm(ctx))
	assert.True(t, f.monitor.Running())
	assert.Equal(t, f.monitor.State(), Active)
	assert.Equal(t, f.monitor.RemainingTime(), 30*time.Minute)
}

func TestMonitorTickerExpire(t *testing.T) {
	ctx := context.Background()
	cfg := Config{MaxInactiveTime: 30 * time.Minute, WarningTime: 5 * time.Minute, CheckInterval: 5 * time.Millisecond}
	f := newFixture(t, cfg)

	assert.NoErr(t, f.monitor.Start(ctx))
	f.clock.advance(time.Hour)

	deadline := time.Now().Add(2 * time.Second)
	for f.monitor.Running() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	assert.True(t, !f.monitor.Running())

	_, expires := f.session.counts()
	assert.Equal(t, expires, 1)

	// session is expired with live context although loop is already stopped
	f.session.mu.Lock()
	defer f.session.mu.Unlock()

	assert.Equal(t, f.session.ctxErrs, []error{nil})
}

func TestMonitorStatusAfterExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	assert.NoErr(t, f.monitor.Start(ctx))

	f.clock.advance(27 * time.Minute)
	assert.True(t, f.monitor.Status().ShowWarning)

	f.clock.advance(3 * time.Minute)
	f.monitor.CheckSession(ctx)

	status := f.monitor.Status()
	assert.Equal(t, status.State, Expired)
	assert.Equal(t, status.Remaining, 0)
	assert.True(t, !status.ShowWarning)
}

//------------------------------------------------------------------------------

type tab struct {
	store   *auth.Store
	st      *storage.NotifyingStorage
	monitor *Monitor
}

func openTab(ctx context.Context, t *testing.T, mem storage.Storage, lbus bus.Bus, logs *sessionlog.Sink,
	clock *fakeClock, origin string,
) *tab {
	t.Helper()

	st := storage.Notifying(mem, lbus, "p1", origin)
	store := auth.NewStore(auth.StoreDeps{
		Storage:  st,
		Verifier: auth.NewStaticVerifier(auth.DefaultStaticEmail, auth.DefaultStaticPassword),
		Minter:   auth.NewJWTMinter("0123456789abcdef", time.Hour),
		Logs:     logs,
	}, auth.WithQuietRestore())
	store.Rehydrate(ctx)

	mon := NewMonitor(testConfig(), store, st, lbus, "p1", origin, WithClock(clock.now))
	t.Cleanup(mon.Stop)

	return &tab{store: store, st: st, monitor: mon}
}

func TestCrossTabLogout(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	lbus := bus.NewLocal()
	logs := sessionlog.NewSink(mem)
	clock := newFakeClock()

	tabA := openTab(ctx, t, mem, lbus, logs, clock, "tab-a")
	assert.True(t, tabA.store.Login(ctx, "admin@tienda.com", "admin123"))
	assert.NoErr(t, tabA.monitor.Start(ctx))

	tabB := openTab(ctx, t, mem, lbus, logs, clock, "tab-b")
	assert.True(t, tabB.store.IsAuthenticated())
	assert.NoErr(t, tabB.monitor.Start(ctx))

	tabA.store.Logout(ctx)

	// tab B follow without waiting for its timer
	assert.True(t, !tabB.store.IsAuthenticated())
	assert.True(t, !tabB.monitor.Running())

	actions := []model.SessionAction{}
	for _, l := range logs.GetLogs(ctx) {
		actions = append(actions, l.Action)
	}

	assert.Equal(t, actions, []model.SessionAction{model.ActionLogout, model.ActionLogin})
}

func TestInactivityExpiryLogsOnce(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	lbus := bus.NewLocal()
	logs := sessionlog.NewSink(mem)
	clock := newFakeClock()

	tabA := openTab(ctx, t, mem, lbus, logs, clock, "tab-a")
	assert.True(t, tabA.store.Login(ctx, "admin@tienda.com", "admin123"))
	assert.NoErr(t, tabA.monitor.Start(ctx))

	tabB := openTab(ctx, t, mem, lbus, logs, clock, "tab-b")
	assert.NoErr(t, tabB.monitor.Start(ctx))

	clock.advance(30 * time.Minute)
	tabA.monitor.CheckSession(ctx)
	tabB.monitor.CheckSession(ctx)

	assert.True(t, !tabA.store.IsAuthenticated())
	assert.True(t, !tabB.store.IsAuthenticated())

	logsList := logs.GetLogs(ctx)
	assert.Equal(t, len(logsList), 2)
	assert.Equal(t, logsList[0].Action, model.ActionSessionExpired)
	assert.Equal(t, logsList[0].UserID, "1")
}
