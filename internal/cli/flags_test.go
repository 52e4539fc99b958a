package cli

//
// flags_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
	"gitlab.com/kabes/go-shopadmin/internal/config"
)

func parseSessionConf(t *testing.T, args ...string) *config.SessionConf {
	t.Helper()

	var conf *config.SessionConf

	cmd := &cli.Command{
		Name:  "test",
		Flags: slices.Concat(storageFlags(), sessionFlags()),
		Action: func(_ context.Context, clicmd *cli.Command) error {
			conf = sessionConf(clicmd)

			return nil
		},
	}

	assert.NoErr(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))

	return conf
}

func TestSessionConfDefaults(t *testing.T) {
	conf := parseSessionConf(t, "--token-secret", "0123456789abcdef")

	assert.Equal(t, conf.Storage, config.StorageDB)
	assert.Equal(t, conf.Bus, config.BusLocal)
	assert.Equal(t, conf.Verifier, config.VerifierStatic)
	assert.Equal(t, conf.StaticEmail, "admin@tienda.com")
	assert.Equal(t, conf.MaxInactiveTime, 30*time.Minute)
	assert.Equal(t, conf.WarningTime, 5*time.Minute)
	assert.Equal(t, conf.CheckInterval, time.Minute)
	assert.Equal(t, conf.TokenTTL, 24*time.Hour)
	assert.NoErr(t, conf.Validate())
}

func TestSessionConfRedis(t *testing.T) {
	conf := parseSessionConf(t,
		"--token-secret", "0123456789abcdef",
		"--storage", "redis",
		"--bus", "redis",
		"--redis-address", "localhost:6379",
		"--redis-db", "2",
		"--max-inactive", "10m",
		"--warning-time", "1m",
	)

	assert.Equal(t, conf.Storage, config.StorageRedis)
	assert.Equal(t, conf.Bus, config.BusRedis)
	assert.Equal(t, conf.RedisAddr, "localhost:6379")
	assert.Equal(t, conf.RedisDB, 2)
	assert.Equal(t, conf.MaxInactiveTime, 10*time.Minute)
	assert.NoErr(t, conf.Validate())
}

func TestSessionConfInvalid(t *testing.T) {
	// warning must be shorter than inactivity timeout
	conf := parseSessionConf(t, "--token-secret", "0123456789abcdef",
		"--max-inactive", "5m", "--warning-time", "5m")
	assert.Err(t, conf.Validate())

	conf = parseSessionConf(t, "--storage", "redis", "--token-secret", "0123456789abcdef")
	assert.Err(t, conf.Validate())

	conf = parseSessionConf(t)
	assert.Err(t, conf.Validate())
}

func TestResolveLogFormat(t *testing.T) {
	for _, f := range logFormats {
		assert.Equal(t, resolveLogFormat(f), f)
	}

	// tests are not run on terminal
	got := resolveLogFormat("xml")
	assert.True(t, got == "logfmt" || got == "console")
}
