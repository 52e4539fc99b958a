package cli

//
// flags.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-shopadmin/internal/activity"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

const (
	defaultTokenTTL   = 24 * time.Hour
	defaultLoginRate  = 0.2
	defaultLoginBurst = 5
)

// storageFlags define where profiles values are kept.
func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "storage",
			Value:   config.StorageDB,
			Usage:   "where keep profiles data (memory, db, redis)",
			Sources: cli.EnvVars(envPrefix + "STORAGE"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "redis-address",
			Usage:   "redis server address (host:port) for redis storage or bus",
			Sources: cli.EnvVars(envPrefix + "REDIS_ADDRESS"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "redis-password",
			Usage:   "redis password",
			Sources: cli.EnvVars(envPrefix + "REDIS_PASSWORD"),
		},
		&cli.IntFlag{
			Name:    "redis-db",
			Usage:   "redis database number",
			Sources: cli.EnvVars(envPrefix + "REDIS_DB"),
		},
	}
}

// sessionFlags define authentication and inactivity settings.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "bus",
			Value:   config.BusLocal,
			Usage:   "how propagate profile changes between replicas (local, redis)",
			Sources: cli.EnvVars(envPrefix + "BUS"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "verifier",
			Value:   config.VerifierStatic,
			Usage:   "credentials verifier (static, db)",
			Sources: cli.EnvVars(envPrefix + "VERIFIER"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "static-email",
			Value:   "admin@tienda.com",
			Usage:   "administrator email for static verifier",
			Sources: cli.EnvVars(envPrefix + "STATIC_EMAIL"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "static-password",
			Value:   "admin123",
			Usage:   "administrator password for static verifier",
			Sources: cli.EnvVars(envPrefix + "STATIC_PASSWORD"),
		},
		&cli.StringFlag{
			Name:    "token-secret",
			Usage:   "secret used to sign session tokens (min 16 chars); random when empty",
			Sources: cli.EnvVars(envPrefix + "TOKEN_SECRET"),
		},
		&cli.DurationFlag{
			Name:    "token-ttl",
			Value:   defaultTokenTTL,
			Usage:   "session token validity",
			Sources: cli.EnvVars(envPrefix + "TOKEN_TTL"),
		},
		&cli.DurationFlag{
			Name:    "max-inactive",
			Value:   activity.DefaultMaxInactiveTime,
			Usage:   "logout user after this time of inactivity",
			Sources: cli.EnvVars(envPrefix + "MAX_INACTIVE"),
		},
		&cli.DurationFlag{
			Name:    "warning-time",
			Value:   activity.DefaultWarningTime,
			Usage:   "warn user this time before inactivity logout",
			Sources: cli.EnvVars(envPrefix + "WARNING_TIME"),
		},
		&cli.DurationFlag{
			Name:    "check-interval",
			Value:   activity.DefaultCheckInterval,
			Usage:   "interval of inactivity checks",
			Sources: cli.EnvVars(envPrefix + "CHECK_INTERVAL"),
		},
		&cli.FloatFlag{
			Name:    "login-rate",
			Value:   defaultLoginRate,
			Usage:   "allowed login attempts per second for one client",
			Sources: cli.EnvVars(envPrefix + "LOGIN_RATE"),
		},
		&cli.IntFlag{
			Name:    "login-burst",
			Value:   defaultLoginBurst,
			Usage:   "allowed burst of login attempts for one client",
			Sources: cli.EnvVars(envPrefix + "LOGIN_BURST"),
		},
	}
}

// storageConf build session configuration limited to storage settings.
func storageConf(clicmd *cli.Command) *config.SessionConf {
	return &config.SessionConf{ //nolint:exhaustruct
		Storage:       clicmd.String("storage"),
		Bus:           config.BusLocal,
		RedisAddr:     clicmd.String("redis-address"),
		RedisPassword: clicmd.String("redis-password"),
		RedisDB:       clicmd.Int("redis-db"),
	}
}

func sessionConf(clicmd *cli.Command) *config.SessionConf {
	conf := storageConf(clicmd)
	conf.Bus = clicmd.String("bus")
	conf.Verifier = clicmd.String("verifier")
	conf.StaticEmail = clicmd.String("static-email")
	conf.StaticPassword = clicmd.String("static-password")
	conf.TokenSecret = clicmd.String("token-secret")
	conf.TokenTTL = clicmd.Duration("token-ttl")
	conf.MaxInactiveTime = clicmd.Duration("max-inactive")
	conf.WarningTime = clicmd.Duration("warning-time")
	conf.CheckInterval = clicmd.Duration("check-interval")
	conf.LoginRate = clicmd.Float("login-rate")
	conf.LoginBurst = clicmd.Int("login-burst")

	return conf
}

//---------------------------------------------------------------------

// serverFlags define listeners and http related options of `serve` command.
func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "address",
			Value:   ":8080",
			Usage:   "listen address",
			Aliases: []string{"a"},
			Sources: cli.EnvVars(envPrefix + "SERVER_ADDRESS"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "web-root",
			Value:   "/",
			Usage:   "path prefix of all endpoints",
			Aliases: []string{"w"},
			Sources: cli.EnvVars(envPrefix + "SERVER_WEBROOT"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:      "cert",
			Usage:     "tls certificate file",
			Sources:   cli.EnvVars(envPrefix + "SERVER_CERT"),
			Config:    cli.StringConfig{TrimSpace: true},
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "key",
			Usage:     "tls key file",
			Sources:   cli.EnvVars(envPrefix + "SERVER_KEY"),
			Config:    cli.StringConfig{TrimSpace: true},
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:    "secure-cookie",
			Usage:   "send cookies over https only",
			Sources: cli.EnvVars(envPrefix + "SERVER_SECURE_COOKIE"),
		},
		&cli.BoolFlag{
			Name:    "enable-metrics",
			Usage:   "expose prometheus metrics on /metrics",
			Sources: cli.EnvVars(envPrefix + "SERVER_METRICS"),
		},
		&cli.StringFlag{
			Name:    "mgmt-address",
			Usage:   "listen address of management endpoints; empty disable them; may be equal to 'address'",
			Aliases: []string{"m"},
			Sources: cli.EnvVars(envPrefix + "MGMT_SERVER_ADDRESS"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "mgmt-access-list",
			Usage:   "comma separated addresses or networks allowed to use management endpoints",
			Sources: cli.EnvVars(envPrefix + "MGMT_SERVER_ACCESS_LIST"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "profile-store",
			Value:   config.ProfileStoreDB,
			Usage:   "where keep profile cookie sessions (db, memory)",
			Sources: cli.EnvVars(envPrefix + "PROFILE_STORE"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.BoolFlag{
			Name:    "set-security-headers",
			Usage:   "add http security headers to responses",
			Sources: cli.EnvVars(envPrefix + "SET_SECURITY_HEADERS"),
		},
	}
}

func serverConf(clicmd *cli.Command) *config.ServerConf {
	return &config.ServerConf{
		MainServer: config.ListenConf{
			Address:      clicmd.String("address"),
			WebRoot:      strings.TrimSuffix(clicmd.String("web-root"), "/"),
			TLSKey:       clicmd.String("key"),
			TLSCert:      clicmd.String("cert"),
			CookieSecure: clicmd.Bool("secure-cookie"),
		},
		MgmtServer:         config.ListenConf{Address: clicmd.String("mgmt-address")}, //nolint:exhaustruct
		DebugFlags:         config.ParseDebugFlags(clicmd.String("debug")),
		EnableMetrics:      clicmd.Bool("enable-metrics"),
		MgmtAccessList:     clicmd.String("mgmt-access-list"),
		ProfileStore:       clicmd.String("profile-store"),
		SetSecurityHeaders: clicmd.Bool("set-security-headers"),
	}
}
