package server

//
// mgmt.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	dochi "github.com/samber/do/http/chi/v2"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

// MgmtServer serve health, metrics and debug endpoints on separate address.
type MgmtServer struct {
	httpServer
}

func NewMgmt(injector do.Injector) (*MgmtServer, error) {
	cfg := do.MustInvoke[*config.ServerConf](injector)
	webroot := cfg.MgmtServer.WebRoot

	router := chi.NewRouter()
	router.Use(middleware.RealIP, middleware.Heartbeat(webroot+"/ping"))

	mountMgmt(injector, router, cfg, webroot)

	return &MgmtServer{
		httpServer: newHTTPServer("MgmtServer", router, cfg.MgmtServer, cfg.DebugFlags.HasFlag(config.DebugRouter)),
	}, nil
}

// mountMgmt register management endpoints under webroot.
func mountMgmt(injector do.Injector, router *chi.Mux, cfg *config.ServerConf, webroot string) {
	router.Get(webroot+"/health", newHealthHandler(injector, cfg))

	if cfg.EnableMetrics {
		router.Method(http.MethodGet, webroot+"/metrics", newMetricsHandler())
	}

	debug := cfg.DebugFlags
	if debug.HasFlag(config.DebugDo) {
		dochi.Use(router, webroot+"/debug/do", injector)
	}

	if !debug.HasAny(config.DebugGo | config.DebugTrace) {
		return
	}

	router.Group(func(r chi.Router) {
		r.Use(
			hlog.RequestIDHandler(common.LogKeyReqID, "Request-Id"),
			newMgmtLogMiddleware,
			newRecoverMiddleware,
			newAuthMgmtMiddleware(cfg),
		)

		if debug.HasFlag(config.DebugGo) {
			r.Mount(webroot+"/debug", middleware.Profiler())
		}

		if debug.HasFlag(config.DebugTrace) {
			mountXTrace(r, webroot)
		}
	})
}

// newHealthHandler run health checks of all services in container. Only clients
// allowed by mgmt access list see the result.
func newHealthHandler(injector do.Injector, cfg *config.ServerConf) http.HandlerFunc {
	root := injector.RootScope()

	return func(w http.ResponseWriter, r *http.Request) {
		if access, _ := cfg.AuthMgmtRequest(r); !access {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)

			return
		}

		status := "ok"

		for name, err := range root.HealthCheckWithContext(r.Context()) {
			if err != nil {
				log.Logger.Error().Err(err).Str("service", name).Msg("MgmtServer: health check failed")

				status = "error"
			}
		}

		if status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		render.PlainText(w, r, status)
	}
}
