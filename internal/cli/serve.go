package cli

//
// serve.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//
import (
	"context"
	"os/signal"
	"slices"
	"syscall"

	"github.com/Merovius/systemd"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	shopapi "gitlab.com/kabes/go-shopadmin/internal/api"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/db"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
	"gitlab.com/kabes/go-shopadmin/internal/server"
	shopweb "gitlab.com/kabes/go-shopadmin/internal/web"
)

func newStartServerCmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "start server",
		Flags:  slices.Concat(serverFlags(), storageFlags(), sessionFlags()),
		Action: wrap(startServerCmd),
	}
}

func startServerCmd(ctx context.Context, clicmd *cli.Command, rootInjector do.Injector) error {
	srvConf := serverConf(clicmd)
	if err := srvConf.Validate(); err != nil {
		return aerr.Wrapf(err, "server config validation failed")
	}

	sessConf := sessionConf(clicmd)
	if sessConf.TokenSecret == "" {
		log.Ctx(ctx).Warn().Msg("Server: token secret not configured; using random, tokens will not survive restart")

		sessConf.TokenSecret = uuid.NewString()
	}

	if err := sessConf.Validate(); err != nil {
		return aerr.Wrapf(err, "session config validation failed")
	}

	// profiles live in root scope and need webroot for cookies
	do.ProvideValue(rootInjector, sessConf)
	do.ProvideNamedValue(rootInjector, "server.webroot", srvConf.MainServer.WebRoot)

	injector := rootInjector.Scope("server", shopweb.Package, shopapi.Package, server.Package)
	do.ProvideValue(injector, srvConf)

	if srvConf.DebugFlags.HasFlag(config.DebugDo) {
		enableDoDebug(ctx, injector.RootScope())
	}

	return runServer(ctx, injector, srvConf, sessConf)
}

// runServer start listeners and background workers; block until SIGTERM/SIGINT.
func runServer(ctx context.Context, injector do.Injector, cfg *config.ServerConf,
	sessConf *config.SessionConf,
) error {
	logger := log.Ctx(ctx)
	logger.Log().Msgf("Starting go-shopadmin (%s)...", config.VersionString)
	logger.Debug().Stringer("debug_flags", cfg.DebugFlags).Object("session_conf", sessConf).
		Msg("Server: configuration")

	if ok, dur, err := systemd.AutoWatchdog(); ok {
		logger.Info().Msgf("Systemd: autowatchdog started interval=%s", dur)
	} else if err != nil {
		logger.Warn().Err(err).Msgf("Systemd: autowatchdog start error=%q", err)
	}

	setupDatabaseMetrics(injector, cfg)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := do.MustInvoke[*server.Server](injector).Start(ctx); err != nil {
		return aerr.Wrapf(err, "start server failed")
	}

	if cfg.SeparateMgmtEnabled() {
		if err := do.MustInvoke[*server.MgmtServer](injector).Start(ctx); err != nil {
			return aerr.Wrapf(err, "start mgmt server failed")
		}
	}

	startWorkers(ctx, injector, sessConf.Storage == config.StorageDB)

	systemd.NotifyReady()           //nolint:errcheck
	systemd.NotifyStatus("running") //nolint:errcheck

	<-ctx.Done()

	logger.Info().Msg("Server: stopping...")
	systemd.NotifyStatus("stopping") //nolint:errcheck

	return nil
}

func setupDatabaseMetrics(injector do.Injector, cfg *config.ServerConf) {
	if cfg.DebugFlags.HasFlag(config.DebugDBQueryMetrics) {
		db.EnableQueryMetrics()
	}

	if !cfg.EnableMetrics {
		return
	}

	if sdb, ok := do.MustInvoke[repository.Database](injector).(interface{ RegisterMetrics() }); ok {
		sdb.RegisterMetrics()
	}
}
