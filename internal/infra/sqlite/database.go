// Package sqlite implement repositories on sqlite database.
package sqlite

//
// database.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

type poolLimits struct {
	maxOpen     int
	maxIdle     int
	idleTime    time.Duration
	maxLifetime time.Duration
}

var (
	filePool   = poolLimits{maxOpen: 10, maxIdle: 2, idleTime: 30 * time.Second, maxLifetime: time.Minute} //nolint:mnd
	memoryPool = poolLimits{maxOpen: 1, maxIdle: 1}
)

// Database own sqlx pool; connections are handed out to db.InConnection/InTransaction.
type Database struct {
	db      *sqlx.DB
	connstr string
	pool    poolLimits

	statsCollector prometheus.Collector
}

func NewDatabaseI(i do.Injector) (*Database, error) {
	dbconf := do.MustInvoke[config.DBConfig](i)

	connstr, err := prepareSqliteConnstr(dbconf.Connstr)
	if err != nil {
		return nil, aerr.Wrapf(err, "invalid db.connstr")
	}

	return newDatabase(connstr), nil
}

func newDatabase(connstr string) *Database {
	pool := filePool
	if connstr == memoryConnstr {
		// every connection to :memory: open separate, empty database
		pool = memoryPool
	}

	return &Database{connstr: connstr, pool: pool}
}

// Open connect to database; no-op when already opened.
func (d *Database) Open(ctx context.Context) error {
	if d.db != nil {
		return nil
	}

	log.Ctx(ctx).Debug().Msgf("sqlite.Database: open connstr=%q", d.connstr)

	sdb, err := sqlx.ConnectContext(ctx, "sqlite3", d.connstr)
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "open database failed").WithMeta("connstr", d.connstr)
	}

	sdb.SetMaxOpenConns(d.pool.maxOpen)
	sdb.SetMaxIdleConns(d.pool.maxIdle)
	sdb.SetConnMaxIdleTime(d.pool.idleTime)
	sdb.SetConnMaxLifetime(d.pool.maxLifetime)

	if err := execPragmas(ctx, sdb, onConnectPragmas); err != nil {
		sdb.Close()

		return aerr.ApplyFor(aerr.ErrDatabase, err, "configure connection failed")
	}

	d.db = sdb

	return nil
}

// RegisterMetrics publish connection pool statistics.
func (d *Database) RegisterMetrics() {
	if d.db == nil || d.statsCollector != nil {
		return
	}

	d.statsCollector = collectors.NewDBStatsCollector(d.db.DB, "shopadmin")
	prometheus.DefaultRegisterer.MustRegister(d.statsCollector)
}

func (d *Database) Shutdown(ctx context.Context) error {
	if d.db == nil {
		return nil
	}

	log.Ctx(ctx).Debug().Msg("sqlite.Database: closing")

	if d.statsCollector != nil {
		prometheus.DefaultRegisterer.Unregister(d.statsCollector)
		d.statsCollector = nil
	}

	sdb := d.db
	d.db = nil

	if err := sdb.Close(); err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "close database failed")
	}

	return nil
}

func (d *Database) GetConnection(ctx context.Context) (*sqlx.Conn, error) {
	if d.db == nil {
		return nil, aerr.ErrDatabase.WithMsg("database not opened")
	}

	conn, err := d.db.Connx(ctx)
	if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "get connection failed")
	}

	if err := execPragmas(ctx, conn, onConnectPragmas); err != nil {
		conn.Close()

		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "configure connection failed")
	}

	return conn, nil
}

func (d *Database) CloseConnection(ctx context.Context, conn *sqlx.Conn) error {
	pragmaErr := execPragmas(ctx, conn, onReleasePragmas)

	if err := conn.Close(); err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "close connection failed")
	}

	if pragmaErr != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, pragmaErr, "optimize on release failed")
	}

	return nil
}

func (d *Database) HealthCheck(ctx context.Context) error {
	if d.db == nil {
		return aerr.ErrDatabase.WithMsg("database not opened")
	}

	if err := d.db.PingContext(ctx); err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "ping database failed")
	}

	return nil
}

//------------------------------------------------------------------------------

var (
	onConnectPragmas = []string{"PRAGMA temp_store = MEMORY"}
	onReleasePragmas = []string{"PRAGMA optimize"}
)

func execPragmas(ctx context.Context, execer sqlx.ExecerContext, pragmas []string) error {
	for _, p := range pragmas {
		if _, err := execer.ExecContext(ctx, p); err != nil {
			return aerr.Wrapf(err, "exec %q failed", p)
		}
	}

	return nil
}
