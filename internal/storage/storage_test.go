package storage

//
// storage_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
	"gitlab.com/kabes/go-shopadmin/internal/bus"
	"gitlab.com/kabes/go-shopadmin/internal/config"
	"gitlab.com/kabes/go-shopadmin/internal/infra"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
)

func newDBProvider(t *testing.T) *DBProvider {
	t.Helper()

	ctx := context.Background()
	injector := do.New(infra.Package)
	do.ProvideValue(injector, config.NewDBConfig("sqlite3", ":memory:"))

	database := do.MustInvoke[repository.Database](injector)
	assert.NoErr(t, database.Open(ctx))
	assert.NoErr(t, database.Migrate(ctx))

	t.Cleanup(func() {
		_ = injector.Shutdown()
	})

	provider, err := NewDBProviderI(injector)
	assert.NoErr(t, err)

	return provider
}

func newRedisProvider(t *testing.T) *RedisProvider {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return NewRedisProvider(client)
}

func TestProviders(t *testing.T) {
	providers := map[string]func(t *testing.T) Provider{
		"memory": func(_ *testing.T) Provider { return NewMemoryProvider() },
		"db":     func(t *testing.T) Provider { return newDBProvider(t) },
		"redis":  func(t *testing.T) Provider { return newRedisProvider(t) },
	}

	for name, factory := range providers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			provider := factory(t)

			st1 := provider.Open("p1")
			st2 := provider.Open("p2")

			_, found, err := st1.Get(ctx, KeyToken)
			assert.NoErr(t, err)
			assert.True(t, !found)

			assert.NoErr(t, st1.Set(ctx, KeyToken, "tok"))
			assert.NoErr(t, st1.Set(ctx, KeyToken, "tok2"))

			value, found, err := st1.Get(ctx, KeyToken)
			assert.NoErr(t, err)
			assert.True(t, found)
			assert.Equal(t, value, "tok2")

			// profiles are separated
			_, found, err = st2.Get(ctx, KeyToken)
			assert.NoErr(t, err)
			assert.True(t, !found)

			// the same profile opened again share data
			value, found, err = provider.Open("p1").Get(ctx, KeyToken)
			assert.NoErr(t, err)
			assert.True(t, found)
			assert.Equal(t, value, "tok2")

			assert.NoErr(t, st1.Remove(ctx, KeyToken))
			assert.NoErr(t, st1.Remove(ctx, KeyToken))

			_, found, err = st1.Get(ctx, KeyToken)
			assert.NoErr(t, err)
			assert.True(t, !found)
		})
	}
}

func TestNotifying(t *testing.T) {
	ctx := context.Background()
	lbus := bus.NewLocal()

	var msgs []bus.Message

	_, err := lbus.Subscribe(ctx, "p1", func(_ context.Context, msg bus.Message) {
		msgs = append(msgs, msg)
	})
	assert.NoErr(t, err)

	st := Notifying(NewMemory(), lbus, "p1", "tab1")
	assert.Equal(t, st.Origin(), "tab1")

	assert.NoErr(t, st.Set(ctx, KeyLastActivity, "1000"))
	assert.NoErr(t, st.Remove(ctx, KeyLastActivity))
	// removing absent key publish nothing
	assert.NoErr(t, st.Remove(ctx, KeyToken))

	assert.Equal(t, msgs, []bus.Message{
		{Key: KeyLastActivity, Value: "1000", Origin: "tab1"},
		{Key: KeyLastActivity, Removed: true, Origin: "tab1"},
	})
}

func TestProviderI(t *testing.T) {
	tests := []struct {
		storage string
		exptype string
	}{
		{config.StorageMemory, "*storage.MemoryProvider"},
		{config.StorageDB, "*storage.DBProvider"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			injector := do.New(infra.Package, Package)
			do.ProvideValue(injector, config.NewDBConfig("sqlite3", ":memory:"))
			do.ProvideValue(injector, &config.SessionConf{Storage: tt.storage})

			provider := do.MustInvoke[Provider](injector)
			assert.Equal(t, fmt.Sprintf("%T", provider), tt.exptype)
		})
	}
}
