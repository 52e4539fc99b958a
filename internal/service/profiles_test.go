package service

//
// profiles_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/activity"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/model"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
)

func openTab(ctx context.Context, t *testing.T, srv *ProfilesSrv, profileID string) (*Tab, *auth.RedirectRecorder) {
	t.Helper()

	nav := &auth.RedirectRecorder{}

	tab, err := srv.OpenTab(ctx, profileID, auth.NopCookieJar{}, nav)
	assert.NoErr(t, err)

	return tab, nav
}

func logActions(ctx context.Context, srv *ProfilesSrv, profileID string) []model.SessionAction {
	logs := srv.Logs(profileID).GetLogs(ctx)
	res := make([]model.SessionAction, len(logs))

	for i, l := range logs {
		res[i] = l.Action
	}

	return res
}

func TestProfilesLoginLogout(t *testing.T) {
	ctx, i := prepareTests(t)
	prepareTestUser(ctx, t, i, "admin")

	srv := do.MustInvoke[*ProfilesSrv](i)

	_, err := srv.OpenTab(ctx, "", nil, nil)
	assert.ErrSpec(t, err, common.ErrNoProfile)

	tab1, _ := openTab(ctx, t, srv, "p1")
	assert.True(t, !tab1.Store.IsAuthenticated())

	_, ok := srv.Monitor("p1")
	assert.True(t, !ok)

	_, err = srv.Login(ctx, tab1, "admin@example.com", "wrong")
	assert.True(t, auth.IsInvalidCredentials(err))

	ident, err := srv.Login(ctx, tab1, "admin@example.com", "admin123")
	assert.NoErr(t, err)
	assert.Equal(t, ident.Email, "admin@example.com")

	mon, ok := srv.Monitor("p1")
	assert.True(t, ok)
	assert.Equal(t, mon.State(), activity.Active)

	// second tab restore session quietly; monitor already running
	tab2, _ := openTab(ctx, t, srv, "p1")
	assert.True(t, tab2.Store.IsAuthenticated())
	assert.True(t, tab2.Origin != tab1.Origin)
	assert.Equal(t, tab2.Store.Identity().Email, "admin@example.com")
	assert.Equal(t, logActions(ctx, srv, "p1"), []model.SessionAction{model.ActionLogin})

	mon2, _ := srv.Monitor("p1")
	assert.True(t, mon2 == mon)

	status, ok := srv.Status("p1")
	assert.True(t, ok)
	assert.True(t, status.Running)
	assert.True(t, status.Remaining > 0)

	// other profile is independent
	tab3, _ := openTab(ctx, t, srv, "p2")
	assert.True(t, !tab3.Store.IsAuthenticated())

	tab4, nav := openTab(ctx, t, srv, "p1")
	srv.Logout(ctx, tab4)
	assert.Equal(t, nav.Pending(), "/login")

	_, ok = srv.Monitor("p1")
	assert.True(t, !ok)
	assert.True(t, !mon.Running())

	assert.Equal(t, logActions(ctx, srv, "p1"),
		[]model.SessionAction{model.ActionLogout, model.ActionLogin})

	// token removed from storage; new request is not authenticated
	tab5, _ := openTab(ctx, t, srv, "p1")
	assert.True(t, !tab5.Store.IsAuthenticated())
}

func TestProfilesActivity(t *testing.T) {
	ctx, i := prepareTests(t)
	prepareTestUser(ctx, t, i, "admin")

	srv := do.MustInvoke[*ProfilesSrv](i)

	err := srv.RecordActivity(ctx, "p1", "click")
	assert.ErrSpec(t, err, common.ErrNotLoggedIn)

	err = srv.VisibilityChanged(ctx, "p1", true)
	assert.ErrSpec(t, err, common.ErrNotLoggedIn)

	err = srv.AcknowledgeWarning(ctx, "p1", true)
	assert.ErrSpec(t, err, common.ErrNotLoggedIn)

	_, ok := srv.Status("p1")
	assert.True(t, !ok)

	tab, _ := openTab(ctx, t, srv, "p1")
	_, err = srv.Login(ctx, tab, "admin@example.com", "admin123")
	assert.NoErr(t, err)

	assert.NoErr(t, srv.RecordActivity(ctx, "p1", "click"))
	assert.NoErr(t, srv.VisibilityChanged(ctx, "p1", true))
	assert.NoErr(t, srv.AcknowledgeWarning(ctx, "p1", false))

	err = srv.RecordActivity(ctx, "p1", "resize")
	assert.True(t, aerr.HasTag(err, aerr.ValidationError))

	status, ok := srv.Status("p1")
	assert.True(t, ok)
	assert.Equal(t, status.State, activity.Active)
	assert.True(t, status.Warning == nil)
}

func TestProfilesRestoreAfterRestart(t *testing.T) {
	ctx, i := prepareTests(t)
	prepareTestUser(ctx, t, i, "admin")

	srv := do.MustInvoke[*ProfilesSrv](i)
	tab, _ := openTab(ctx, t, srv, "p1")
	_, err := srv.Login(ctx, tab, "admin@example.com", "admin123")
	assert.NoErr(t, err)
	assert.NoErr(t, srv.Shutdown(ctx))

	// new instance share storage with previous one
	srv2, err := NewProfilesSrv(i)
	assert.NoErr(t, err)

	t.Cleanup(func() { _ = srv2.Shutdown(ctx) })

	tab2, _ := openTab(ctx, t, srv2, "p1")
	assert.True(t, tab2.Store.IsAuthenticated())

	_, ok := srv2.Monitor("p1")
	assert.True(t, ok)

	// background restore is logged once
	_, _ = openTab(ctx, t, srv2, "p1")
	assert.Equal(t, logActions(ctx, srv2, "p1"),
		[]model.SessionAction{model.ActionActivityDetected, model.ActionLogin})
}

func TestProfilesSweep(t *testing.T) {
	ctx, i := prepareTests(t)
	prepareTestUser(ctx, t, i, "admin")

	srv := do.MustInvoke[*ProfilesSrv](i)
	tab, _ := openTab(ctx, t, srv, "p1")
	_, err := srv.Login(ctx, tab, "admin@example.com", "admin123")
	assert.NoErr(t, err)

	_, _ = openTab(ctx, t, srv, "p2")

	assert.Equal(t, srv.Sweep(ctx), 0)
	assert.Equal(t, srv.sinks.Keys(), []string{"p1"})

	mon, _ := srv.Monitor("p1")
	mon.Stop()

	assert.Equal(t, srv.Sweep(ctx), 1)
	assert.Equal(t, len(srv.sinks.Keys()), 0)

	// logs survive in storage
	assert.Equal(t, logActions(ctx, srv, "p1"), []model.SessionAction{model.ActionLogin})
}

func TestProfilesTickerExpiryClearsStoredSession(t *testing.T) {
	conf := testSessionConf()
	conf.MaxInactiveTime = 300 * time.Millisecond
	conf.WarningTime = 100 * time.Millisecond
	conf.CheckInterval = 20 * time.Millisecond

	ctx, i := prepareTestsWithConf(t, conf)
	prepareTestUser(ctx, t, i, "admin")

	srv := do.MustInvoke[*ProfilesSrv](i)
	tab, _ := openTab(ctx, t, srv, "p1")
	_, err := srv.Login(ctx, tab, "admin@example.com", "admin123")
	assert.NoErr(t, err)

	mon, ok := srv.Monitor("p1")
	assert.True(t, ok)

	st := do.MustInvoke[storage.Provider](i).Open("p1")
	tokenStored := func() bool {
		_, found, err := st.Get(ctx, storage.KeyToken)
		assert.NoErr(t, err)

		return found
	}

	// monitor goroutine expire session in background
	deadline := time.Now().Add(5 * time.Second)
	for (tokenStored() || len(logActions(ctx, srv, "p1")) < 2) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	assert.Equal(t, mon.State(), activity.Expired)
	assert.True(t, !mon.Running())
	assert.True(t, !tokenStored())
	assert.Equal(t, logActions(ctx, srv, "p1"),
		[]model.SessionAction{model.ActionSessionExpired, model.ActionLogin})

	tab2, _ := openTab(ctx, t, srv, "p1")
	assert.True(t, !tab2.Store.IsAuthenticated())
}
