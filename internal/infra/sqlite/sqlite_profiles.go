package sqlite

//
// sqlite_profiles.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gitea.com/go-chi/session"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/db"
	"gitlab.com/kabes/go-shopadmin/internal/model"
)

func (Repository) GetProfileSession(ctx context.Context, id string) (*model.ProfileSession, error) {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: get profile session id=%q", id)

	var row ProfileSessionDB

	err := db.MustCtx(ctx).GetContext(ctx, &row,
		"SELECT id, data, created_at, last_seen FROM profile_sessions WHERE id=?", id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNoData
	case err != nil:
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "select profile session failed").
			WithMeta("id", id)
	}

	sess := &model.ProfileSession{
		ID:        row.ID,
		Data:      make(map[any]any),
		CreatedAt: row.CreatedAt,
		LastSeen:  row.LastSeen,
	}

	if len(row.Data) > 0 {
		data, err := session.DecodeGob(row.Data)
		if err != nil {
			return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "decode profile session data failed").
				WithMeta("id", id)
		}

		sess.Data = data
	}

	return sess, nil
}

func (Repository) SaveProfileSession(ctx context.Context, sess *model.ProfileSession) error {
	logger := log.Ctx(ctx)
	logger.Debug().Object("profile", sess).Msg("sqlite.Repository: save profile session")

	var data []byte

	if len(sess.Data) > 0 {
		var err error

		data, err = session.EncodeGob(sess.Data)
		if err != nil {
			return aerr.ApplyFor(aerr.ErrDatabase, err, "encode profile session data failed").
				WithMeta("id", sess.ID)
		}
	}

	sess.LastSeen = time.Now().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = sess.LastSeen
	}

	_, err := db.MustCtx(ctx).ExecContext(ctx,
		"INSERT INTO profile_sessions (id, data, created_at, last_seen) VALUES (?, ?, ?, ?) "+
			"ON CONFLICT (id) DO UPDATE SET data=excluded.data, last_seen=excluded.last_seen",
		sess.ID, data, sess.CreatedAt, sess.LastSeen)
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "upsert profile session failed").
			WithMeta("id", sess.ID)
	}

	return nil
}

func (Repository) RenameProfileSession(ctx context.Context, oldID, newID string) (bool, error) {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: rename profile session old=%q new=%q", oldID, newID)

	res, err := db.MustCtx(ctx).ExecContext(ctx,
		"UPDATE profile_sessions SET id=?, last_seen=? WHERE id=?", newID, time.Now().UTC(), oldID)
	if err != nil {
		return false, aerr.ApplyFor(aerr.ErrDatabase, err, "rename profile session failed").
			WithMeta("old", oldID, "new", newID)
	}

	cnt, err := res.RowsAffected()
	if err != nil {
		return false, aerr.ApplyFor(aerr.ErrDatabase, err, "rename profile session - get affected rows failed")
	}

	return cnt > 0, nil
}

func (Repository) DeleteProfileSession(ctx context.Context, id string) error {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: delete profile session id=%q", id)

	_, err := db.MustCtx(ctx).ExecContext(ctx, "DELETE FROM profile_sessions WHERE id=?", id)
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "delete profile session failed").WithMeta("id", id)
	}

	return nil
}

func (Repository) CountProfileSessions(ctx context.Context) (int, error) {
	var cnt int

	if err := db.MustCtx(ctx).GetContext(ctx, &cnt, "SELECT count(*) FROM profile_sessions"); err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "count profile sessions failed")
	}

	return cnt, nil
}

// PurgeProfileSessions remove profiles not seen since idleBefore and profiles
// without any data not seen since emptyBefore.
func (Repository) PurgeProfileSessions(ctx context.Context, idleBefore, emptyBefore time.Time) (int64, error) {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: purge profile sessions idle_before=%s empty_before=%s",
		idleBefore, emptyBefore)

	res, err := db.MustCtx(ctx).ExecContext(ctx,
		"DELETE FROM profile_sessions WHERE last_seen < ? OR (data IS NULL AND last_seen < ?)",
		idleBefore.UTC(), emptyBefore.UTC())
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "purge profile sessions failed")
	}

	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "purge profile sessions - get affected rows failed")
	}

	return cnt, nil
}
