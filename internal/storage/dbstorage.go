package storage

//
// dbstorage.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"

	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-shopadmin/internal/aerr"
	"gitlab.com/kabes/go-shopadmin/internal/common"
	"gitlab.com/kabes/go-shopadmin/internal/db"
	"gitlab.com/kabes/go-shopadmin/internal/repository"
)

// DBProvider keep profiles values in database `kv` table.
type DBProvider struct {
	db   repository.Database
	repo repository.KeyValues
}

func NewDBProviderI(i do.Injector) (*DBProvider, error) {
	return &DBProvider{
		db:   do.MustInvoke[repository.Database](i),
		repo: do.MustInvoke[repository.KeyValues](i),
	}, nil
}

func (d *DBProvider) Open(profileID string) Storage { //nolint:ireturn
	return &DBStorage{provider: d, profile: profileID}
}

//------------------------------------------------------------------------------

type DBStorage struct {
	provider *DBProvider
	profile  string
}

func (s *DBStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := db.InConnectionR(ctx, s.provider.db, func(ctx context.Context) (string, error) {
		return s.provider.repo.GetValue(ctx, s.profile, key)
	})

	switch {
	case err == nil:
		return value, true, nil
	case errors.Is(err, common.ErrNoData):
		return "", false, nil
	default:
		return "", false, aerr.ApplyFor(aerr.ErrStorage, err, "get value failed").WithMeta("key", key)
	}
}

func (s *DBStorage) Set(ctx context.Context, key, value string) error {
	err := db.InConnection(ctx, s.provider.db, func(ctx context.Context) error {
		return s.provider.repo.SetValue(ctx, s.profile, key, value)
	})
	if err != nil {
		return aerr.ApplyFor(aerr.ErrStorage, err, "set value failed").WithMeta("key", key)
	}

	return nil
}

func (s *DBStorage) Remove(ctx context.Context, key string) error {
	err := db.InConnection(ctx, s.provider.db, func(ctx context.Context) error {
		_, err := s.provider.repo.DeleteValue(ctx, s.profile, key)

		return err
	})
	if err != nil {
		return aerr.ApplyFor(aerr.ErrStorage, err, "remove value failed").WithMeta("key", key)
	}

	return nil
}
