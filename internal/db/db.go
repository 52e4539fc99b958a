// Package db provide helpers to run functions in database connection or transaction.
package db

//
// db.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
)

// Database is source of connections.
type Database interface {
	GetConnection(ctx context.Context) (*sqlx.Conn, error)
	CloseConnection(ctx context.Context, conn *sqlx.Conn) error
}

//nolint:gochecknoglobals
var queryDuration *prometheus.HistogramVec

// EnableQueryMetrics register histogram of duration of InConnection/InTransaction calls.
func EnableQueryMetrics() {
	if queryDuration != nil {
		return
	}

	queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Tracks the latencies for database query.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2},
		},
		[]string{"kind"},
	)

	prometheus.DefaultRegisterer.MustRegister(queryDuration)
}

func observeQueryDuration(kind string, start time.Time) {
	if queryDuration != nil {
		queryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}

//------------------------------------------------------------------------------

// InConnectionR run `fun` in database context. Open/close connection when context
// do not contain one. Return `fun` result and error.
func InConnectionR[T any](ctx context.Context, r Database, fun func(context.Context) (T, error)) (T, error) {
	if _, ok := Ctx(ctx); ok {
		return fun(ctx)
	}

	defer observeQueryDuration("conn", time.Now())

	conn, err := r.GetConnection(ctx)
	if err != nil {
		return *new(T), err
	}

	defer closeConnection(ctx, r, conn)

	return fun(WithCtx(ctx, conn))
}

// InConnection run `fun` in database context.
func InConnection(ctx context.Context, r Database, fun func(context.Context) error) error {
	_, err := InConnectionR(ctx, r, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fun(ctx)
	})

	return err
}

// InTransaction run `fun` in db transaction. Transaction is rolled back when fun return error.
func InTransaction(ctx context.Context, r Database, fun func(context.Context) error) error {
	_, err := InTransactionR(ctx, r, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fun(ctx)
	})

	return err
}

// InTransactionR run `fun` in db transactions; return `fun` result and error.
func InTransactionR[T any](ctx context.Context, r Database, fun func(context.Context) (T, error)) (T, error) {
	if _, ok := Ctx(ctx); ok {
		return fun(ctx)
	}

	defer observeQueryDuration("tx", time.Now())

	conn, err := r.GetConnection(ctx)
	if err != nil {
		return *new(T), err
	}

	defer closeConnection(ctx, r, conn)

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return *new(T), aerr.ApplyFor(aerr.ErrDatabase, err, "begin tx failed")
	}

	res, err := fun(WithCtx(ctx, tx))
	if err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			merr := errors.Join(err, fmt.Errorf("rollback error: %w", rerr))

			return res, aerr.ApplyFor(aerr.ErrDatabase, merr, "execute func in trans and rollback error")
		}

		return res, err
	}

	if err := tx.Commit(); err != nil {
		return res, aerr.ApplyFor(aerr.ErrDatabase, err, "commit tx failed")
	}

	return res, nil
}

func closeConnection(ctx context.Context, r Database, conn *sqlx.Conn) {
	if err := r.CloseConnection(ctx, conn); err != nil {
		log.Ctx(ctx).Error().Err(err).Msgf("DB: close connection error=%q", err)
	}
}
