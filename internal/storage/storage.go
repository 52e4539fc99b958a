// Package storage implement per-profile key-value storage shared by all tabs
// of one profile.
package storage

//
// storage.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
)

// Well-known keys.
const (
	KeyToken        = "adminToken"
	KeyUser         = "adminUser"
	KeyLastActivity = "lastActivity"
	KeySessionLogs  = "sessionLogs"
)

// Storage is string key-value storage of one profile.
type Storage interface {
	// Get value for key; found is false when key not exists.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove key. Removing not existing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Provider open storage for profile.
type Provider interface {
	Open(profileID string) Storage
}
