package sqlite

//
// sqlite_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gitlab.com/kabes/go-shopadmin/internal/assert"
	"gitlab.com/kabes/go-shopadmin/internal/db"
	"gitlab.com/kabes/go-shopadmin/internal/model"
)

func TestPrepareSqliteConnstr(t *testing.T) {
	tests := []struct {
		connstr  string
		expected string
		experr   bool
	}{
		{"", "", true},
		{"?abc?_fk=1", "", true},
		{":memory:", memoryConnstr, false},
		{
			"/var/lib/shop.db",
			"/var/lib/shop.db?_busy_timeout=1000&_fk=ON&_journal_mode=WAL&_synchronous=NORMAL",
			false,
		},
		{
			"/var/lib/shop.db?_foreign_keys=0&_journal=DELETE&_sync=FULL&_timeout=50",
			"/var/lib/shop.db?_foreign_keys=0&_journal=DELETE&_sync=FULL&_timeout=50",
			false,
		},
		{
			"/var/lib/shop.db?cache=shared&_fk=1",
			"/var/lib/shop.db?_busy_timeout=1000&_fk=1&_journal_mode=WAL&_synchronous=NORMAL&cache=shared",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			res, err := prepareSqliteConnstr(tt.connstr)
			if tt.experr {
				assert.Err(t, err)
			} else {
				assert.NoErr(t, err)
				assert.Equal(t, res, tt.expected)
			}
		})
	}
}

func prepareDB(t *testing.T) (context.Context, *Database) {
	t.Helper()

	ctx := context.Background()
	database := newDatabase(memoryConnstr)

	assert.NoErr(t, database.Open(ctx))
	assert.NoErr(t, database.Migrate(ctx))

	t.Cleanup(func() {
		_ = database.Shutdown(ctx)
	})

	return ctx, database
}

func TestUsers(t *testing.T) {
	ctx, database := prepareDB(t)
	repo := Repository{}

	err := db.InTransaction(ctx, database, func(ctx context.Context) error {
		id, err := repo.SaveUser(ctx, &model.User{Email: "Admin@Tienda.com", Password: "hash", Name: "Admin"})
		assert.NoErr(t, err)
		assert.True(t, id > 0)

		user, err := repo.GetUser(ctx, "admin@tienda.com")
		assert.NoErr(t, err)
		assert.Equal(t, user.ID, id)
		assert.Equal(t, user.Email, "admin@tienda.com")
		assert.Equal(t, user.Role, model.RoleAdmin)
		assert.True(t, !user.Locked)

		user.Password = model.UserLockedPassword
		_, err = repo.SaveUser(ctx, user)
		assert.NoErr(t, err)

		users, err := repo.ListUsers(ctx, true)
		assert.NoErr(t, err)
		assert.Equal(t, len(users), 0)

		users, err = repo.ListUsers(ctx, false)
		assert.NoErr(t, err)
		assert.Equal(t, len(users), 1)
		assert.True(t, users[0].Locked)

		assert.NoErr(t, repo.DeleteUser(ctx, id))

		_, err = repo.GetUser(ctx, "admin@tienda.com")
		assert.ErrSpec(t, err, ErrNoData)

		return nil
	})
	assert.NoErr(t, err)
}

func TestKeyValues(t *testing.T) {
	ctx, database := prepareDB(t)
	repo := Repository{}

	err := db.InConnection(ctx, database, func(ctx context.Context) error {
		_, err := repo.GetValue(ctx, "p1", "adminToken")
		assert.ErrSpec(t, err, ErrNoData)

		assert.NoErr(t, repo.SetValue(ctx, "p1", "adminToken", "tok1"))
		assert.NoErr(t, repo.SetValue(ctx, "p1", "adminToken", "tok2"))
		assert.NoErr(t, repo.SetValue(ctx, "p2", "lastActivity", "1000"))

		value, err := repo.GetValue(ctx, "p1", "adminToken")
		assert.NoErr(t, err)
		assert.Equal(t, value, "tok2")

		profiles, err := repo.ListProfiles(ctx)
		assert.NoErr(t, err)
		assert.Equal(t, profiles, []string{"p1", "p2"})

		deleted, err := repo.DeleteValue(ctx, "p1", "adminToken")
		assert.NoErr(t, err)
		assert.True(t, deleted)

		deleted, err = repo.DeleteValue(ctx, "p1", "adminToken")
		assert.NoErr(t, err)
		assert.True(t, !deleted)

		cnt, err := repo.CleanValues(ctx, time.Now().Add(time.Hour))
		assert.NoErr(t, err)
		assert.Equal(t, cnt, 1)

		assert.NoErr(t, repo.DeleteProfile(ctx, "p2"))

		profiles, err = repo.ListProfiles(ctx)
		assert.NoErr(t, err)
		assert.Equal(t, len(profiles), 0)

		return nil
	})
	assert.NoErr(t, err)
}

func TestProfileSessions(t *testing.T) {
	ctx, database := prepareDB(t)
	repo := Repository{}

	err := db.InConnection(ctx, database, func(ctx context.Context) error {
		_, err := repo.GetProfileSession(ctx, "prof1")
		assert.ErrSpec(t, err, ErrNoData)

		sess := model.NewProfileSession("prof1")
		sess.Data["tab"] = "t1"
		assert.NoErr(t, repo.SaveProfileSession(ctx, sess))
		assert.NoErr(t, repo.SaveProfileSession(ctx, model.NewProfileSession("empty")))

		loaded, err := repo.GetProfileSession(ctx, "prof1")
		assert.NoErr(t, err)
		assert.Equal(t, loaded.Data["tab"], any("t1"))

		loaded, err = repo.GetProfileSession(ctx, "empty")
		assert.NoErr(t, err)
		assert.Equal(t, len(loaded.Data), 0)

		renamed, err := repo.RenameProfileSession(ctx, "prof1", "prof2")
		assert.NoErr(t, err)
		assert.True(t, renamed)

		renamed, err = repo.RenameProfileSession(ctx, "missing", "prof3")
		assert.NoErr(t, err)
		assert.True(t, !renamed)

		_, err = repo.GetProfileSession(ctx, "prof1")
		assert.ErrSpec(t, err, ErrNoData)

		cnt, err := repo.CountProfileSessions(ctx)
		assert.NoErr(t, err)
		assert.Equal(t, cnt, 2)

		// only profile without data is old enough
		now := time.Now()
		purged, err := repo.PurgeProfileSessions(ctx, now.Add(-time.Hour), now.Add(time.Minute))
		assert.NoErr(t, err)
		assert.Equal(t, purged, 1)

		assert.NoErr(t, repo.DeleteProfileSession(ctx, "prof2"))

		cnt, err = repo.CountProfileSessions(ctx)
		assert.NoErr(t, err)
		assert.Equal(t, cnt, 0)

		return nil
	})
	assert.NoErr(t, err)
}
