// Package repository define interfaces of persistence layer.
package repository

//
// repository.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"time"

	"gitlab.com/kabes/go-shopadmin/internal/db"
	"gitlab.com/kabes/go-shopadmin/internal/model"
)

// Database is opened database with migrations and health check.
type Database interface {
	db.Database

	Open(ctx context.Context) error
	Migrate(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ------------------------------------------------------

type Users interface {
	// GetUser by email; return common.ErrNoData when not found.
	GetUser(ctx context.Context, email string) (*model.User, error)
	SaveUser(ctx context.Context, user *model.User) (int64, error)
	ListUsers(ctx context.Context, activeOnly bool) ([]model.User, error)
	DeleteUser(ctx context.Context, userid int64) error
}

// ProfileSessions persist browser profiles; backend of gitea.com/go-chi/session
// provider.
type ProfileSessions interface {
	// GetProfileSession return common.ErrNoData when profile not exists.
	GetProfileSession(ctx context.Context, id string) (*model.ProfileSession, error)
	// SaveProfileSession insert or update profile and mark it as seen now.
	SaveProfileSession(ctx context.Context, sess *model.ProfileSession) error
	// RenameProfileSession change id of profile; return false when profile not exists.
	RenameProfileSession(ctx context.Context, oldID, newID string) (bool, error)
	DeleteProfileSession(ctx context.Context, id string) error
	CountProfileSessions(ctx context.Context) (int, error)
	// PurgeProfileSessions remove profiles not seen since `idleBefore` and
	// profiles without data not seen since `emptyBefore`.
	PurgeProfileSessions(ctx context.Context, idleBefore, emptyBefore time.Time) (int64, error)
}

// KeyValues is per-profile string storage.
type KeyValues interface {
	// GetValue return common.ErrNoData when key not exists.
	GetValue(ctx context.Context, profile, key string) (string, error)
	SetValue(ctx context.Context, profile, key, value string) error
	// DeleteValue return true when key existed.
	DeleteValue(ctx context.Context, profile, key string) (bool, error)
	ListProfiles(ctx context.Context) ([]string, error)
	DeleteProfile(ctx context.Context, profile string) error
	// CleanValues remove profiles not updated since `olderThan`.
	CleanValues(ctx context.Context, olderThan time.Time) (int64, error)
}

type Maintenance interface {
	Maintenance(ctx context.Context) error
}
