package sqlite

//
// sqlite_users.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/db"
	"gitlab.com/kabes/go-shopadmin/internal/model"
)

const userColumns = "id, email, password, name, role, created_at, updated_at"

func (Repository) GetUser(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(email)
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: get user email=%q", email)

	var user UserDB

	err := db.MustCtx(ctx).GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE email=?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoData
	} else if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "select user failed").WithMeta("email", email)
	}

	return user.ToModel(), nil
}

// SaveUser insert new (ID == 0) or update existing user; return user id.
func (Repository) SaveUser(ctx context.Context, user *model.User) (int64, error) {
	now := time.Now().UTC()
	row := UserDB{
		ID:        user.ID,
		Email:     strings.ToLower(user.Email),
		Password:  user.Password,
		Name:      user.Name,
		Role:      nvl(user.Role, model.RoleAdmin),
		CreatedAt: now,
		UpdatedAt: now,
	}

	log.Ctx(ctx).Debug().Object("user", &row).Msg("sqlite.Repository: save user")

	if row.ID == 0 {
		return insertUser(ctx, &row)
	}

	err := namedExec(ctx,
		"UPDATE users SET password=:password, name=:name, role=:role, updated_at=:updated_at WHERE id=:id", &row)
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "update user failed").WithMeta("user_id", row.ID)
	}

	return row.ID, nil
}

func (Repository) ListUsers(ctx context.Context, activeOnly bool) ([]model.User, error) {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: list users active_only=%v", activeOnly)

	var (
		rows  []UserDB
		query = "SELECT " + userColumns + " FROM users WHERE NOT ? OR password != ? ORDER BY email"
	)

	if err := db.MustCtx(ctx).SelectContext(ctx, &rows, query, activeOnly, model.UserLockedPassword); err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "select users failed")
	}

	return usersFromDb(rows), nil
}

func (Repository) DeleteUser(ctx context.Context, userid int64) error {
	log.Ctx(ctx).Debug().Msgf("sqlite.Repository: delete user user_id=%d", userid)

	if _, err := db.MustCtx(ctx).ExecContext(ctx, "DELETE FROM users WHERE id=?", userid); err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "delete user failed").WithMeta("user_id", userid)
	}

	return nil
}

//------------------------------------------------------------------------------

func insertUser(ctx context.Context, row *UserDB) (int64, error) {
	query, args, err := sqlx.Named(
		"INSERT INTO users (email, password, name, role, created_at, updated_at) "+
			"VALUES (:email, :password, :name, :role, :created_at, :updated_at)", row)
	if err != nil {
		return 0, aerr.Wrapf(err, "bind insert user failed")
	}

	res, err := db.MustCtx(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "insert user failed").WithMeta("email", row.Email)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "get insert id failed")
	}

	return id, nil
}

func namedExec(ctx context.Context, query string, arg any) error {
	query, args, err := sqlx.Named(query, arg)
	if err != nil {
		return aerr.Wrapf(err, "bind query failed")
	}

	_, err = db.MustCtx(ctx).ExecContext(ctx, query, args...)

	return err //nolint:wrapcheck
}

func nvl(value, def string) string {
	if value == "" {
		return def
	}

	return value
}
