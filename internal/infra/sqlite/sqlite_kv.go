package sqlite

//
// sqlite_kv.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/db"
)

func (Repository) GetValue(ctx context.Context, profile, key string) (string, error) {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: get value profile=%q key=%q", profile, key)

	var kv KeyValueDB

	dbctx := db.MustCtx(ctx)

	err := dbctx.GetContext(ctx, &kv,
		"SELECT profile, key, value, updated_at FROM kv WHERE profile=? AND key=?", profile, key)

	switch {
	case err == nil:
		return kv.Value, nil
	case errors.Is(err, sql.ErrNoRows):
		return "", ErrNoData
	default:
		return "", aerr.ApplyFor(aerr.ErrDatabase, err, "select value failed").
			WithMeta("profile", profile, "key", key)
	}
}

func (Repository) SetValue(ctx context.Context, profile, key, value string) error {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: set value profile=%q key=%q", profile, key)

	dbctx := db.MustCtx(ctx)

	_, err := dbctx.ExecContext(ctx,
		"INSERT INTO kv (profile, key, value, updated_at) VALUES (?, ?, ?, ?) "+
			"ON CONFLICT (profile, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
		profile, key, value, time.Now().UTC())
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "upsert value failed").
			WithMeta("profile", profile, "key", key)
	}

	return nil
}

func (Repository) DeleteValue(ctx context.Context, profile, key string) (bool, error) {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: delete value profile=%q key=%q", profile, key)

	dbctx := db.MustCtx(ctx)

	res, err := dbctx.ExecContext(ctx, "DELETE FROM kv WHERE profile=? AND key=?", profile, key)
	if err != nil {
		return false, aerr.ApplyFor(aerr.ErrDatabase, err, "delete value failed").
			WithMeta("profile", profile, "key", key)
	}

	cnt, err := res.RowsAffected()
	if err != nil {
		return false, aerr.ApplyFor(aerr.ErrDatabase, err, "delete value - get affected rows failed")
	}

	return cnt > 0, nil
}

func (Repository) ListProfiles(ctx context.Context) ([]string, error) {
	log.Ctx(ctx).Debug().Msg("sqlite.Repository: list profiles")

	var profiles []string

	dbctx := db.MustCtx(ctx)
	if err := dbctx.SelectContext(ctx, &profiles, "SELECT DISTINCT profile FROM kv ORDER BY profile"); err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "select profiles failed")
	}

	return profiles, nil
}

func (Repository) DeleteProfile(ctx context.Context, profile string) error {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: delete profile profile=%q", profile)

	dbctx := db.MustCtx(ctx)
	if _, err := dbctx.ExecContext(ctx, "DELETE FROM kv WHERE profile=?", profile); err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "delete profile failed").WithMeta("profile", profile)
	}

	return nil
}

func (Repository) CleanValues(ctx context.Context, olderThan time.Time) (int64, error) {
	logger := log.Ctx(ctx)
	logger.Debug().Msgf("sqlite.Repository: clean profiles older_than=%q", olderThan)

	dbctx := db.MustCtx(ctx)

	res, err := dbctx.ExecContext(ctx,
		"DELETE FROM kv WHERE profile IN (SELECT profile FROM kv GROUP BY profile HAVING max(updated_at) < ?)",
		olderThan.UTC())
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "clean profiles failed")
	}

	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "clean profiles - get affected rows failed")
	}

	logger.Debug().Msgf("sqlite.Repository: profile values removed count=%d", cnt)

	return cnt, nil
}
