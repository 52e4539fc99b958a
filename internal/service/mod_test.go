package service

//
// mod_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//
import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/bus"
	"gitlab.com/kabes/go-shopadmin/internal/command"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/infra"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
	"gitlab.com/kabes/go-shopadmin/internal/storage"
)

func testSessionConf() *config.SessionConf {
	return &config.SessionConf{
		Storage:         config.StorageDB,
		Bus:             config.BusLocal,
		Verifier:        config.VerifierDB,
		TokenSecret:     "0123456789abcdef0123456789abcdef",
		TokenTTL:        time.Hour,
		MaxInactiveTime: 30 * time.Minute,
		WarningTime:     5 * time.Minute,
		// ticker must not fire during tests
		CheckInterval: time.Hour,
		LoginRate:     1,
		LoginBurst:    5,
	}
}

func prepareTests(t *testing.T) (context.Context, *do.RootScope) {
	t.Helper()

	return prepareTestsWithConf(t, testSessionConf())
}

func prepareTestsWithConf(t *testing.T, conf *config.SessionConf) (context.Context, *do.RootScope) {
	t.Helper()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := log.Logger.WithContext(context.Background())
	i := do.New(Package, infra.Package, storage.Package, bus.Package)

	do.ProvideValue(i, config.NewDBConfig("sqlite3", ":memory:"))
	do.ProvideValue(i, conf)

	database := do.MustInvoke[repository.Database](i)
	if err := database.Open(ctx); err != nil {
		t.Fatalf("connect to db error: %#+v", err)
	}

	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("prepare db error: %#+v", err)
	}

	t.Cleanup(func() {
		_ = i.Shutdown()
	})

	return ctx, i
}

func prepareTestUser(ctx context.Context, t *testing.T, i do.Injector, name string) int64 {
	t.Helper()

	newuser := command.NewUserCmd{
		Email:    name + "@example.com",
		Password: name + "123",
		Name:     "test user " + name,
	}
	usersSrv := do.MustInvoke[*UsersSrv](i)

	res, err := usersSrv.AddUser(ctx, &newuser)
	if err != nil {
		t.Fatalf("create test user failed: %#+v", err)
	}

	return res.UserID
}
