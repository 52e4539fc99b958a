package sqlite

//
// migrate.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"embed"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

//go:embed "migrations/*.sql"
var embedMigrations embed.FS

// Migrate apply all pending migrations.
func (d *Database) Migrate(ctx context.Context) error {
	logger := log.Ctx(ctx)

	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "open embedded migrations failed")
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, d.db.DB, migrations)
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "create migrations provider failed")
	}

	before, err := provider.GetDBVersion(ctx)
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "", "can't check database version")
	}

	results, err := provider.Up(ctx)
	for _, res := range results {
		logger.Debug().Msgf("sqlite.Database: applied migration %s", res)
	}

	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "", "database migration failed").
			WithMeta("version", before)
	}

	after, err := provider.GetDBVersion(ctx)
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "", "can't check database version")
	}

	logger.Info().Msgf("sqlite.Database: schema version before=%d after=%d", before, after)

	return nil
}
