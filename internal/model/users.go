package model

//
// users.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const UserLockedPassword = "LOCKED"

// User is dashboard account kept in database.
type User struct {
	ID        int64
	Email     string
	Name      string
	Role      string
	Password  string
	Locked    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity build session identity for user.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:    strconv.FormatInt(u.ID, 10),
		Email: u.Email,
		Name:  u.Name,
		Role:  nvl(u.Role, RoleAdmin),
	}
}

func (u *User) MarshalZerologObject(event *zerolog.Event) {
	event.Int64("id", u.ID).
		Str("email", u.Email).
		Str("name", u.Name).
		Str("role", u.Role).
		Bool("locked", u.Locked)
}
