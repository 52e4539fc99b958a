package db

//
// dbcontext.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Interface is implemented by *sqlx.Conn and *sqlx.Tx.
type Interface interface {
	sqlx.QueryerContext
	sqlx.PreparerContext
	sqlx.ExecerContext

	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type ctxKey struct{}

func fromCtx(ctx context.Context) Interface { //nolint:ireturn
	if value, ok := ctx.Value(ctxKey{}).(Interface); ok {
		return value
	}

	return nil
}

// WithCtx attach dbctx to context. Outer connection or transaction wins.
func WithCtx(ctx context.Context, dbctx Interface) context.Context {
	if fromCtx(ctx) != nil {
		return ctx
	}

	return context.WithValue(ctx, ctxKey{}, dbctx)
}

func Ctx(ctx context.Context) (Interface, bool) { //nolint:ireturn
	dbctx := fromCtx(ctx)

	return dbctx, dbctx != nil
}

// MustCtx is Ctx for repositories; missing connection is programmer error.
func MustCtx(ctx context.Context) Interface { //nolint:ireturn
	dbctx := fromCtx(ctx)
	if dbctx == nil {
		panic("db: no connection in context")
	}

	return dbctx
}
