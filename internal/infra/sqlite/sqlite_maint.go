package sqlite

//
// sqlite_maint.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"

	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/db"
)

type maintStep struct {
	name string
	sql  string
}

//nolint:gochecknoglobals
var maintSteps = []maintStep{
	{
		"orphaned values",
		`DELETE FROM kv
		WHERE updated_at < datetime('now','-30 day')
			AND NOT EXISTS (SELECT NULL FROM profile_sessions AS ps WHERE ps.id = kv.profile)`,
	},
	{"vacuum", "VACUUM"},
	{"analyze", "ANALYZE"},
	{"optimize", "PRAGMA optimize"},
}

type dbStats struct {
	Stored  int `db:"stored"`
	Browser int `db:"browser"`
	Users   int `db:"users"`
}

// Maintenance drop orphaned profile values and compact database.
// Must not run in transaction (VACUUM).
func (Repository) Maintenance(ctx context.Context) error {
	logger := log.Ctx(ctx)
	dbi := db.MustCtx(ctx)

	for _, step := range maintSteps {
		res, err := dbi.ExecContext(ctx, step.sql)
		if err != nil {
			return aerr.ApplyFor(aerr.ErrDatabase, err, "maintenance step failed").WithMeta("step", step.name)
		}

		if affected, err := res.RowsAffected(); err == nil {
			logger.Debug().Msgf("sqlite.Repository: maintenance step=%q affected=%d", step.name, affected)
		}
	}

	var stats dbStats

	err := dbi.GetContext(ctx, &stats, `SELECT
			(SELECT count(DISTINCT profile) FROM kv) AS stored,
			(SELECT count(*) FROM profile_sessions) AS browser,
			(SELECT count(*) FROM users) AS users`)
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "collect database stats failed")
	}

	logger.Info().Msgf("sqlite.Repository: maintenance finished profiles_with_data=%d browser_profiles=%d users=%d",
		stats.Stored, stats.Browser, stats.Users)

	return nil
}
