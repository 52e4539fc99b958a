// Package server assemble web, api and management endpoints into http servers.
package server

//
// server.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	shopapi "gitlab.com/kabes/go-shopadmin/internal/api"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/guard"
	shopweb "gitlab.com/kabes/go-shopadmin/internal/web"
)

// Server serve dashboard pages and session api.
type Server struct {
	httpServer

	mgmtOnMain bool
}

func New(injector do.Injector) (*Server, error) {
	cfg := do.MustInvoke[*config.ServerConf](injector)
	webroot := cfg.MainServer.WebRoot

	router := chi.NewRouter()
	router.Use(middleware.Heartbeat(webroot+"/ping"), middleware.RealIP)

	router.Group(func(r chi.Router) {
		r.Use(hlog.RequestIDHandler(common.LogKeyReqID, "Request-Id"))

		if cfg.DebugFlags.HasFlag(config.DebugFlightRecorder) {
			r.Use(newFRMiddleware())
		}

		if cfg.DebugFlags.HasFlag(config.DebugTrace) {
			r.Use(newTracingMiddleware(cfg))
		}

		r.Use(
			newRequestLogMiddleware(cfg.DebugFlags.HasFlag(config.DebugMsgBody)),
			newRecoverMiddleware,
			middleware.CleanPath,
			newSecurityHeadersMiddleware(cfg),
			newClientMiddleware,
			do.MustInvoke[sessionMiddleware](injector),
			newProfileMiddleware,
			do.MustInvoke[*guard.Guard](injector).Middleware,
		)

		appAPI := do.MustInvoke[shopapi.API](injector)
		appWEB := do.MustInvoke[shopweb.WEB](injector)
		mountApp(r, webroot, appAPI.Routes(), appWEB.Routes())
	})

	mgmtOnMain := cfg.MgmtEnabledOnMainServer()
	if mgmtOnMain {
		mountMgmt(injector, router, cfg, webroot)
	}

	return &Server{
		httpServer: newHTTPServer("Server", router, cfg.MainServer, cfg.DebugFlags.HasFlag(config.DebugRouter)),
		mgmtOnMain: mgmtOnMain,
	}, nil
}

func mountApp(r chi.Router, webroot string, api, web http.Handler) {
	r.Get(webroot+"/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.With(newPromMiddleware("api"), middleware.NoCache).Mount(webroot+"/api", api)
	r.With(newPromMiddleware("web")).Mount(mountPath(webroot), web)
}

// Handler return root http handler; used in tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	if s.mgmtOnMain {
		log.Logger.Warn().Msg("Server: management endpoints served on main address")
	}

	return s.httpServer.Start(ctx)
}

//-------------------------------------------------------------

func newGuard(i do.Injector) (*guard.Guard, error) {
	webroot := do.MustInvokeNamed[string](i, "server.webroot")

	return guard.New(guard.DefaultConfig().WithPrefix(webroot)), nil
}
