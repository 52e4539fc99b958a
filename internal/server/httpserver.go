package server

//
// httpserver.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 2 * time.Minute
	maxHeaderBytes    = 1 << 20
)

// httpServer is common part of main and management servers.
type httpServer struct {
	name      string
	router    chi.Router
	conf      config.ListenConf
	srv       *http.Server
	logRoutes bool
}

func newHTTPServer(name string, router chi.Router, conf config.ListenConf, logRoutes bool) httpServer {
	return httpServer{
		name:      name,
		router:    router,
		conf:      conf,
		logRoutes: logRoutes,
		srv: &http.Server{
			Addr:              conf.Address,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			MaxHeaderBytes:    maxHeaderBytes,
		},
	}
}

// Start open listener and serve requests in background.
func (h *httpServer) Start(ctx context.Context) error {
	if h.logRoutes {
		dumpRoutes(ctx, h.name, h.router)
	}

	listener, err := listen(ctx, h.conf)
	if err != nil {
		return aerr.Wrapf(err, "%s: listen failed", h.name)
	}

	log.Logger.Log().Msgf("%s: listening address=%s tls=%v webroot=%q",
		h.name, listener.Addr(), h.conf.TLSEnabled(), h.conf.WebRoot)

	go func() {
		err := h.srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logger.Error().Err(err).Msgf("%s: serve failed", h.name)
		}
	}()

	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	logger := log.Ctx(ctx)
	logger.Debug().Msgf("%s: shutting down", h.name)

	if err := h.srv.Shutdown(ctx); err != nil {
		return aerr.Wrapf(err, "%s: shutdown failed", h.name)
	}

	logger.Debug().Msgf("%s: stopped", h.name)

	return nil
}

//-------------------------------------------------------------

func listen(ctx context.Context, conf config.ListenConf) (net.Listener, error) {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", conf.Address)
	if err != nil {
		return nil, aerr.Wrapf(err, "listen failed").WithMeta("address", conf.Address)
	}

	if !conf.TLSEnabled() {
		return listener, nil
	}

	cert, err := tls.LoadX509KeyPair(conf.TLSCert, conf.TLSKey)
	if err != nil {
		listener.Close()

		return nil, aerr.Wrapf(err, "load tls key pair failed").
			WithMeta("cert", conf.TLSCert, "key", conf.TLSKey)
	}

	return tls.NewListener(listener, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

func dumpRoutes(ctx context.Context, name string, routes chi.Routes) {
	logger := log.Ctx(ctx)

	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		logger.Debug().Msgf("%s: route %-6s %s", name, method, strings.ReplaceAll(route, "/*/", "/"))

		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msgf("%s: walk routes failed", name)
	}
}

func mountPath(webroot string) string {
	if webroot == "" {
		return "/"
	}

	return webroot
}
