// Package web serve html pages of admin panel.
package web

//
// web.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"embed"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/auth"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/server/srvsupport"
	"gitlab.com/kabes/go-shopadmin/internal/service"
	nt "gitlab.com/kabes/go-shopadmin/internal/web/templates"
)

//go:embed static/*
var staticFS embed.FS

type WEB struct {
	authPages     authPages
	dashboardPage dashboardPage
	sectionPages  sectionPages
	userPages     userPages
	webroot       string
}

func New(i do.Injector) (WEB, error) {
	return WEB{
		authPages:     do.MustInvoke[authPages](i),
		dashboardPage: do.MustInvoke[dashboardPage](i),
		sectionPages:  do.MustInvoke[sectionPages](i),
		userPages:     do.MustInvoke[userPages](i),
		webroot:       do.MustInvokeNamed[string](i, "server.webroot"),
	}, nil
}

func (w *WEB) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", srvsupport.WrapNamed(w.dashboardPage.dashboard, "web_dashboard"))
	router.Get("/login", srvsupport.WrapNamed(w.authPages.login, "web_login"))
	router.Post("/login", srvsupport.WrapNamed(w.authPages.login, "web_login_post"))
	router.Get("/logout", srvsupport.WrapNamed(w.authPages.logout, "web_logout"))
	router.Post("/logout", srvsupport.WrapNamed(w.authPages.logout, "web_logout_post"))
	router.Get("/recuperar-password", srvsupport.WrapNamed(w.authPages.recoverPassword, "web_recover_pass"))
	router.Get("/restablecer-password", srvsupport.WrapNamed(w.authPages.resetPassword, "web_reset_pass"))

	for _, s := range nt.Sections {
		router.Get(s.Path, srvsupport.WrapNamed(w.sectionPages.handler(s), "web_section"))
	}

	router.Get("/configuracion/password", srvsupport.WrapNamed(w.userPages.changePassword, "web_user_pass"))
	router.Post("/configuracion/password", srvsupport.WrapNamed(w.userPages.changePassword, "web_user_pass_post"))

	fs := http.FileServerFS(staticFS)
	router.Method("GET", "/static/*", http.StripPrefix(w.webroot+"/", fs))

	return router
}

//------------------------------------------------------------------------------

// tabOpener restore authentication state of browser profile for request.
type tabOpener struct {
	profilesSrv *service.ProfilesSrv
	secure      bool
	webroot     string
}

func newTabOpener(i do.Injector) (tabOpener, error) {
	cfg := do.MustInvoke[*config.ServerConf](i)

	return tabOpener{
		profilesSrv: do.MustInvoke[*service.ProfilesSrv](i),
		secure:      cfg.MainServer.UseSecureCookie(),
		webroot:     do.MustInvokeNamed[string](i, "server.webroot"),
	}, nil
}

func (t tabOpener) open(ctx context.Context, w http.ResponseWriter, r *http.Request,
) (*service.Tab, *auth.RedirectRecorder, error) {
	nav := &auth.RedirectRecorder{}
	jar := auth.NewHTTPCookieJar(w, r, t.secure)

	tab, err := t.profilesSrv.OpenTab(ctx, common.ContextProfile(ctx), jar, nav)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	return tab, nav, nil
}

// authenticated return tab of logged-in user; otherwise redirect to login page.
func (t tabOpener) authenticated(ctx context.Context, w http.ResponseWriter, r *http.Request,
	logger *zerolog.Logger,
) (*service.Tab, bool) {
	tab, _, err := t.open(ctx, w, r)
	if err != nil {
		logger.WithLevel(aerr.LogLevelForError(err)).Err(err).Msg("open profile failed")
		srvsupport.CheckAndWriteError(w, r, err)

		return nil, false
	}

	if !tab.Store.IsAuthenticated() {
		logger.Debug().Msg("profile not authenticated; redirect to login")
		http.Redirect(w, r, t.loginURL(r.URL.Path), http.StatusTemporaryRedirect)

		return nil, false
	}

	return tab, true
}

func (t tabOpener) loginURL(returnPath string) string {
	return t.webroot + "/login?redirect=" + url.QueryEscape(returnPath)
}
