package common

//
// appctx.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
)

//nolint:gochecknoglobals
var ctxProfileKey = any("ctxProfileKey")

// ContextProfile return profile id from context.
func ContextProfile(ctx context.Context) string {
	value, ok := ctx.Value(ctxProfileKey).(string)
	if ok {
		return value
	}

	return ""
}

// ContextWithProfile create new context with profile id.
func ContextWithProfile(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, ctxProfileKey, profileID)
}

// ------------------------------------------------------

// Client describe remote side of request.
type Client struct {
	UserAgent string
	IP        string
}

//nolint:gochecknoglobals
var ctxClientKey = any("ctxClientKey")

// ContextClient return client info from context; ok is false for background work.
func ContextClient(ctx context.Context) (Client, bool) {
	value, ok := ctx.Value(ctxClientKey).(Client)

	return value, ok
}

// ContextWithClient create context with client info.
func ContextWithClient(ctx context.Context, client Client) context.Context {
	return context.WithValue(ctx, ctxClientKey, client)
}
