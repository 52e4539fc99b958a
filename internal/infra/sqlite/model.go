package sqlite

// model.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

import (
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/model"
)

var ErrNoData = common.ErrNoData

// Repository implement all repository interfaces; state is kept in database
// handle passed by context (see db.MustCtx).
type Repository struct{}

//------------------------------------------------------------------------------

type UserDB struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u *UserDB) ToModel() *model.User {
	return &model.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      u.Role,
		Locked:    u.Password == model.UserLockedPassword,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (u *UserDB) MarshalZerologObject(event *zerolog.Event) {
	pass := ""
	if u.Password != "" {
		pass = "***"
	}

	event.Int64("id", u.ID).
		Str("email", u.Email).
		Str("password", pass).
		Str("name", u.Name).
		Str("role", u.Role).
		Time("created_at", u.CreatedAt).
		Time("updated_at", u.UpdatedAt)
}

func usersFromDb(users []UserDB) []model.User {
	res := make([]model.User, len(users))
	for i, r := range users {
		res[i] = *r.ToModel()
	}

	return res
}

//------------------------------------------------------------------------------

type KeyValueDB struct {
	Profile   string    `db:"profile"`
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

//------------------------------------------------------------------------------

type ProfileSessionDB struct {
	ID        string    `db:"id"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
	LastSeen  time.Time `db:"last_seen"`
}
