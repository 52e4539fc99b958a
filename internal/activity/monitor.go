// Package activity detect user inactivity and expire session after timeout,
// with warning issued before expiry.
package activity

//
// monitor.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/bus"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
)

type State int

const (
	Active State = iota
	WarningPending
	Expired
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case WarningPending:
		return "warning"
	case Expired:
		return "expired"
	}

	return "unknown"
}

// Session is authentication state watched by monitor.
type Session interface {
	IsAuthenticated() bool
	Logout(ctx context.Context)
	ExpireSession(ctx context.Context)
}

// Warning is issued once per inactivity window before session expire.
type Warning struct {
	MinutesLeft int       `json:"minutesLeft"`
	IssuedAt    time.Time `json:"issuedAt"`
}

// WarningHandler receive warnings; must not block.
type WarningHandler func(ctx context.Context, warning Warning)

// Status is snapshot of monitor state.
type Status struct {
	State            State
	Running          bool
	LastActivity     time.Time
	Remaining        time.Duration
	RemainingMinutes float64
	// ShowWarning is true when remaining time is within warning window.
	ShowWarning bool
	Warning     *Warning
}

//------------------------------------------------------------------------------

type Option func(*Monitor)

func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

func WithWarningHandler(handler WarningHandler) Option {
	return func(m *Monitor) {
		m.onWarning = handler
	}
}

//------------------------------------------------------------------------------

// Monitor watch activity of one authenticated session.
type Monitor struct {
	mu sync.Mutex

	cfg     Config
	session Session
	st      storage.Storage
	bus     bus.Bus
	channel string
	origin  string

	now       func() time.Time
	onWarning WarningHandler

	lastActivity time.Time
	warningShown bool
	warning      *Warning
	state        State

	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	sub     bus.Subscription
}

// NewMonitor create monitor; changes of storage are observed on `channel`
// of bus; messages from `origin` are ignored.
func NewMonitor(cfg Config, session Session, st storage.Storage, b bus.Bus, channel, origin string,
	opts ...Option,
) *Monitor {
	mon := &Monitor{
		cfg:     cfg,
		session: session,
		st:      st,
		bus:     b,
		channel: channel,
		origin:  origin,
		now:     time.Now,
		state:   Active,
	}

	for _, o := range opts {
		o(mon)
	}

	return mon
}

// Start monitoring. Do nothing when session is not authenticated or monitor
// is already running.
func (m *Monitor) Start(ctx context.Context) error {
	return m.start(ctx, false)
}

// Rearm restart monitor from clean state: activity recorded now, no warning.
func (m *Monitor) Rearm(ctx context.Context) error {
	m.Stop()

	return m.start(ctx, true)
}

func (m *Monitor) start(ctx context.Context, fresh bool) error {
	if !m.session.IsAuthenticated() {
		return nil
	}

	if m.Running() {
		return nil
	}

	logger := log.Ctx(ctx)

	var (
		saved   time.Time
		savedOk bool
	)

	if !fresh {
		saved, savedOk = m.loadLastActivity(ctx)
	}

	sub, err := m.bus.Subscribe(ctx, m.channel, m.HandleMessage)
	if err != nil {
		return aerr.Wrapf(err, "subscribe for storage changes failed").WithMeta("channel", m.channel)
	}

	m.mu.Lock()

	if m.running {
		m.mu.Unlock()
		sub.Unsubscribe()

		return nil
	}

	if savedOk {
		m.lastActivity = saved
	} else {
		m.lastActivity = m.now()
	}

	last := m.lastActivity
	m.warningShown = false
	m.warning = nil
	m.state = Active
	m.sub = sub
	m.running = true
	m.done = make(chan struct{})

	loopctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel
	done := m.done
	interval := m.cfg.CheckInterval

	m.mu.Unlock()

	if !savedOk {
		m.persist(ctx, last)
	}

	logger.Debug().Str(common.LogKeyOrigin, m.origin).Time("last_activity", last).
		Msgf("ActivityMonitor: started channel=%q", m.channel)

	go m.loop(loopctx, done, interval)

	return nil
}

// Stop monitoring and wait for background goroutine. Can be called many times.
// Must not be called from WarningHandler.
func (m *Monitor) Stop() {
	done := m.teardown()
	if done != nil {
		<-done
	}
}

// Running return true when monitor is started.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.running
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// UpdateActivity record user activity now.
func (m *Monitor) UpdateActivity(ctx context.Context) {
	m.mu.Lock()

	if m.state == Expired {
		m.mu.Unlock()

		return
	}

	if now := m.now(); now.After(m.lastActivity) {
		m.lastActivity = now
	}

	last := m.lastActivity
	m.warningShown = false
	m.warning = nil
	m.state = Active

	m.mu.Unlock()

	m.persist(ctx, last)
}

// RecordEvent handle user interaction event; return false when event kind is
// not counted as activity.
func (m *Monitor) RecordEvent(ctx context.Context, kind string) bool {
	if !IsActivityEvent(kind) {
		return false
	}

	m.UpdateActivity(ctx)

	return true
}

// CheckSession verify inactivity; expire session or issue warning.
func (m *Monitor) CheckSession(ctx context.Context) {
	if !m.session.IsAuthenticated() {
		m.teardown()

		return
	}

	m.mu.Lock()

	if m.state == Expired {
		m.mu.Unlock()

		return
	}

	now := m.now()
	elapsed := now.Sub(m.lastActivity)

	if elapsed >= m.cfg.MaxInactiveTime {
		m.state = Expired
		m.warning = nil
		m.mu.Unlock()

		log.Ctx(ctx).Info().Dur("inactive", elapsed).Msgf("ActivityMonitor: session expired channel=%q", m.channel)

		// teardown cancel loop context; session must still clear storage
		sctx := context.WithoutCancel(ctx)

		m.teardown()
		m.session.ExpireSession(sctx)

		return
	}

	remaining := m.cfg.MaxInactiveTime - elapsed
	if remaining > m.cfg.WarningTime || m.warningShown {
		m.mu.Unlock()

		return
	}

	warning := Warning{
		MinutesLeft: int(math.Ceil(remaining.Minutes())),
		IssuedAt:    now,
	}
	m.warningShown = true
	m.warning = &warning
	m.state = WarningPending
	handler := m.onWarning

	m.mu.Unlock()

	log.Ctx(ctx).Debug().Int("minutes_left", warning.MinutesLeft).
		Msgf("ActivityMonitor: warning issued channel=%q", m.channel)

	if handler != nil {
		handler(ctx, warning)
	}
}

// AcknowledgeWarning handle answer for warning; accepted warning extend session.
func (m *Monitor) AcknowledgeWarning(ctx context.Context, accepted bool) {
	if accepted {
		m.UpdateActivity(ctx)

		return
	}

	m.mu.Lock()
	m.warning = nil
	m.mu.Unlock()
}

// VisibilityChanged handle change of page visibility; visible page trigger check.
func (m *Monitor) VisibilityChanged(ctx context.Context, visible bool) {
	if visible {
		m.CheckSession(ctx)
	}
}

// HandleMessage process change of storage made by other tab.
func (m *Monitor) HandleMessage(ctx context.Context, msg bus.Message) {
	if msg.Origin == m.origin {
		return
	}

	switch msg.Key {
	case storage.KeyToken:
		if !msg.Removed && msg.Value != "" {
			return
		}

		if !m.Running() {
			return
		}

		log.Ctx(ctx).Info().Str(common.LogKeyOrigin, msg.Origin).
			Msgf("ActivityMonitor: session closed in other tab channel=%q", m.channel)

		sctx := context.WithoutCancel(ctx)

		m.teardown()
		m.session.Logout(sctx)

	case storage.KeyLastActivity:
		if msg.Removed {
			return
		}

		ts, ok := parseTimestamp(msg.Value)
		if !ok {
			return
		}

		m.mu.Lock()
		defer m.mu.Unlock()

		if ts.After(m.lastActivity) {
			m.lastActivity = ts
			m.warningShown = false
			m.warning = nil

			if m.state != Expired {
				m.state = Active
			}
		}
	}
}

// RemainingTime return time left to expiry, never negative.
func (m *Monitor) RemainingTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.remaining()
}

// RemainingMinutes return minutes left to expiry, never negative.
func (m *Monitor) RemainingMinutes() float64 {
	return m.RemainingTime().Minutes()
}

func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	remaining := m.remaining()
	status := Status{
		State:            m.state,
		Running:          m.running,
		LastActivity:     m.lastActivity,
		Remaining:        remaining,
		RemainingMinutes: remaining.Minutes(),
		ShowWarning:      m.state != Expired && remaining <= m.cfg.WarningTime,
	}

	if m.warning != nil {
		w := *m.warning
		status.Warning = &w
	}

	return status
}

func (m *Monitor) remaining() time.Duration {
	if m.state == Expired {
		return 0
	}

	return max(0, m.cfg.MaxInactiveTime-m.now().Sub(m.lastActivity))
}

func (m *Monitor) loop(ctx context.Context, done chan struct{}, interval time.Duration) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckSession(ctx)
		}
	}
}

// teardown stop ticker and unsubscribe; do not wait for loop goroutine.
// Return channel closed when goroutine finish or nil when monitor was not running.
func (m *Monitor) teardown() chan struct{} {
	m.mu.Lock()

	if !m.running {
		m.mu.Unlock()

		return nil
	}

	m.running = false
	m.cancel()

	sub, done := m.sub, m.done
	m.sub = nil

	m.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}

	return done
}

func (m *Monitor) loadLastActivity(ctx context.Context) (time.Time, bool) {
	value, found, err := m.st.Get(ctx, storage.KeyLastActivity)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("ActivityMonitor: read last activity failed")

		return time.Time{}, false
	} else if !found {
		return time.Time{}, false
	}

	return parseTimestamp(value)
}

func (m *Monitor) persist(ctx context.Context, ts time.Time) {
	value := strconv.FormatInt(ts.UnixMilli(), 10)
	if err := m.st.Set(ctx, storage.KeyLastActivity, value); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("ActivityMonitor: persist last activity failed")
	}
}

//------------------------------------------------------------------------------

//nolint:gochecknoglobals
var activityEvents = map[string]struct{}{
	"mousedown":  {},
	"mousemove":  {},
	"keypress":   {},
	"scroll":     {},
	"touchstart": {},
	"click":      {},
}

// IsActivityEvent return true for interaction events counted as user activity.
func IsActivityEvent(kind string) bool {
	_, ok := activityEvents[kind]

	return ok
}

func parseTimestamp(value string) (time.Time, bool) {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, false
	}

	return time.UnixMilli(ms), true
}
