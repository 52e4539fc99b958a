package web

//
// dashboard.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/service"
	nt "gitlab.com/kabes/go-shopadmin/internal/web/templates"
)

const maxDashboardLogs = 20

type dashboardPage struct {
	profilesSrv *service.ProfilesSrv
	tabs        tabOpener
	renderer    *nt.Renderer
}

func newDashboardPage(i do.Injector) (dashboardPage, error) {
	return dashboardPage{
		profilesSrv: do.MustInvoke[*service.ProfilesSrv](i),
		tabs:        do.MustInvoke[tabOpener](i),
		renderer:    do.MustInvoke[*nt.Renderer](i),
	}, nil
}

func (d dashboardPage) dashboard(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	logger *zerolog.Logger,
) {
	tab, ok := d.tabs.authenticated(ctx, w, r, logger)
	if !ok {
		return
	}

	status, _ := d.profilesSrv.Status(tab.ProfileID)

	logs := d.profilesSrv.Logs(tab.ProfileID).GetLogs(ctx)
	if len(logs) > maxDashboardLogs {
		logs = logs[:maxDashboardLogs]
	}

	user := tab.Store.Identity()
	d.renderer.WritePage(w, &nt.DashboardPage{User: user, Status: status, Logs: logs}, user)
}

//------------------------------------------------------------------------------

type sectionPages struct {
	tabs     tabOpener
	renderer *nt.Renderer
}

func newSectionPages(i do.Injector) (sectionPages, error) {
	return sectionPages{
		tabs:     do.MustInvoke[tabOpener](i),
		renderer: do.MustInvoke[*nt.Renderer](i),
	}, nil
}

func (s sectionPages) handler(section nt.Section,
) func(context.Context, http.ResponseWriter, *http.Request, *zerolog.Logger) {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request, logger *zerolog.Logger) {
		tab, ok := s.tabs.authenticated(ctx, w, r, logger)
		if !ok {
			return
		}

		s.renderer.WritePage(w, &nt.SectionPage{Section: section}, tab.Store.Identity())
	}
}
