package cli

//
// do.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/bus"
	"gitlab.com/kabes/go-shopadmin/internal/infra"
	"gitlab.com/kabes/go-shopadmin/internal/infra/rdb"
	"gitlab.com/kabes/go-shopadmin/internal/service"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func createInjector(ctx context.Context) do.Injector {
	injector := do.New(
		infra.Package,
		rdb.Package,
		storage.Package,
		bus.Package,
		service.Package,
	)

	log.Ctx(ctx).Trace().Msgf("Injector: services=%v", injector.ListProvidedServices())

	return injector
}

// shutdownInjector shutdown all services (server, monitors, database) in reverse order.
func shutdownInjector(ctx context.Context, injector do.Injector) {
	logger := log.Ctx(ctx)
	logger.Debug().Msg("Injector: shutdown...")

	// parent context may be already cancelled by signal
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if report := injector.ShutdownWithContext(sctx); report != nil && !report.Succeed {
		logger.Error().Msgf("Injector: shutdown error=%q", report.Error())
	} else {
		logger.Debug().Msg("Injector: shutdown finished")
	}
}

// enableDoDebug log dependency graph of services.
func enableDoDebug(ctx context.Context, injector do.Injector) {
	logger := log.Ctx(ctx)

	explanation := do.ExplainInjector(injector)
	logger.Debug().Msgf("Injector: services:\n%s", explanation.String())
}
