package cli

//
// common.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
)

type commandFunc func(ctx context.Context, clicmd *cli.Command, i do.Injector) error

// wrap build cli action that run cmdfunc with configured logger and opened database.
func wrap(cmdfunc commandFunc) cli.ActionFunc {
	return func(ctx context.Context, clicmd *cli.Command) error {
		if err := initializeLogger(clicmd.String("log.level"), clicmd.String("log.format")); err != nil {
			return err
		}

		ctx = log.Logger.WithContext(ctx)

		injector, err := openInjector(ctx, clicmd)
		if err != nil {
			return err
		}

		defer shutdownInjector(ctx, injector)

		return cmdfunc(ctx, clicmd, injector)
	}
}

// openInjector create root injector with database configuration and connect to database.
func openInjector(ctx context.Context, clicmd *cli.Command) (do.Injector, error) { //nolint:ireturn
	dbconf := config.NewDBConfig(clicmd.String("db.driver"), clicmd.String("db.connstr"))
	if err := dbconf.Validate(); err != nil {
		return nil, aerr.Wrapf(err, "invalid database configuration")
	}

	injector := createInjector(ctx)
	do.ProvideValue(injector, dbconf)

	if err := do.MustInvoke[repository.Database](injector).Open(ctx); err != nil {
		shutdownInjector(ctx, injector)

		return nil, aerr.Wrapf(err, "connect to database failed").WithMeta("connstr", dbconf.Connstr)
	}

	return injector, nil
}
